package summary

import (
	"fmt"
	"strings"
)

// maxCommits caps the number of commits rendered for a push summary.
const maxCommits = 5

func summarizePing(payload map[string]any) string {
	repoName := firstNonEmpty(extractRepo(payload), "?")
	zen := digString(payload, "zen")
	hook := asMapping(payload["hook"])
	hookID := firstNonEmpty(
		strings.TrimSpace(stringify(payload["hook_id"])),
		strings.TrimSpace(stringify(hook["id"])),
		"?",
	)
	cfg := asMapping(hook["config"])
	events := asList(hook["events"])
	lastResp := firstNonEmpty(stringify(dig(hook, "last_response", "status")), "unknown")
	createdAt := digString(hook, "created_at")
	updatedAt := digString(hook, "updated_at")
	payloadURL := cfg["url"]
	testURL := hook["test_url"]
	pingURL := hook["ping_url"]

	lines := []string{
		"<b>GitHub webhook ping received</b>",
		"repository: <code>" + escapeHTML(repoName) + "</code>",
		"hook_id: <code>" + escapeHTML(hookID) + "</code>",
	}
	if len(events) > 0 {
		rendered := make([]string, 0, len(events))
		for _, evt := range events {
			rendered = append(rendered, "<code>"+escapeHTML(evt)+"</code>")
		}
		lines = append(lines, "events: "+strings.Join(rendered, ", "))
	} else {
		lines = append(lines, "events: <code>*</code>")
	}
	if link := renderLink(payloadURL, ""); link != "" {
		lines = append(lines, "payload_url: "+link)
	} else {
		lines = append(lines, "payload_url: <code>-</code>")
	}
	lines = append(lines, "last_response: <code>"+escapeHTML(lastResp)+"</code>")
	if createdAt != "" {
		lines = append(lines, "created_at: <code>"+escapeHTML(createdAt)+"</code>")
	}
	if updatedAt != "" {
		lines = append(lines, "updated_at: <code>"+escapeHTML(updatedAt)+"</code>")
	}
	if link := renderLink(testURL, ""); link != "" {
		lines = append(lines, "test_url: "+link)
	}
	if link := renderLink(pingURL, ""); link != "" {
		lines = append(lines, "ping_url: "+link)
	}
	if zen != "" {
		lines = append(lines, "zen: "+escapeHTML(zen))
	}
	return strings.Join(lines, "\n")
}

func summarizeCreate(payload map[string]any) string {
	refType := firstNonEmpty(digString(payload, "ref_type"), "ref")
	ref := firstNonEmpty(digString(payload, "ref"), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	line := "<b>Create</b> " + escapeHTML(refType) + " <code>" + escapeHTML(ref) + "</code>"
	if repoName := extractRepo(payload); repoName != "" {
		line += " in <code>" + escapeHTML(repoName) + "</code>"
	}
	return line + " by <b>" + escapeHTML(actor) + "</b>"
}

func summarizeDelete(payload map[string]any) string {
	refType := firstNonEmpty(digString(payload, "ref_type"), "ref")
	ref := firstNonEmpty(digString(payload, "ref"), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	line := "<b>Delete</b> " + escapeHTML(refType) + " <code>" + escapeHTML(ref) + "</code>"
	if repoName := extractRepo(payload); repoName != "" {
		line += " from <code>" + escapeHTML(repoName) + "</code>"
	}
	return line + " by <b>" + escapeHTML(actor) + "</b>"
}

func summarizePush(payload map[string]any) string {
	repoName := firstNonEmpty(extractRepo(payload), "?")
	repoURL := digString(payload, "repository", "html_url")
	ref := digString(payload, "ref")
	isTag := strings.HasPrefix(ref, "refs/tags/")
	branch := "unknown"
	if ref != "" {
		parts := strings.Split(ref, "/")
		branch = parts[len(parts)-1]
	}
	deleted, _ := payload["deleted"].(bool)
	forced, _ := payload["forced"].(bool)
	actor := firstNonEmpty(digString(payload, "pusher", "name"), extractActor(payload), unknownActor)
	commits := asList(payload["commits"])
	compareURL := digString(payload, "compare")

	target := "branch"
	if isTag {
		target = "tag"
	}

	var lines []string
	if deleted {
		lines = append(lines,
			"<b>Deleted</b> "+target+" <code>"+escapeHTML(branch)+"</code>"+
				" from <code>"+escapeHTML(repoName)+"</code> by <b>"+escapeHTML(actor)+"</b>")
	} else {
		plural := "commits"
		if len(commits) == 1 {
			plural = "commit"
		}
		head := fmt.Sprintf(
			"<b>Push</b> to %s <code>%s</code> in <code>%s</code> by <b>%s</b> (%d %s)",
			target, escapeHTML(branch), escapeHTML(repoName), escapeHTML(actor), len(commits), plural)
		if forced {
			head += " <i>(forced)</i>"
		}
		lines = append(lines, head)
	}
	if !deleted && compareURL != "" {
		lines = append(lines, renderLink(compareURL, "Compare"))
	}
	if !deleted && len(commits) > 0 {
		lines = append(lines, "")
		shown := min(len(commits), maxCommits)
		for i := range shown {
			commit := asMapping(commits[i])
			sha := digString(commit, "id")
			if len(sha) > 7 {
				sha = sha[:7]
			}
			message := firstLine(commit["message"], 120)
			lines = append(lines, "<code>"+escapeHTML(sha)+"</code> "+escapeHTML(message))
			if url := digString(commit, "url"); url != "" {
				lines = append(lines, renderLink(url, "View commit"))
			}
			if i < shown-1 {
				lines = append(lines, "")
			}
		}
		if overflow := len(commits) - maxCommits; overflow > 0 {
			lines = append(lines, fmt.Sprintf("<i>+%d more commits</i>", overflow))
		}
	}
	if deleted && repoURL != "" {
		lines = append(lines, renderLink(repoURL, "Repository"))
	}
	return strings.Join(lines, "\n")
}

func summarizePullRequest(payload map[string]any) string {
	action := stringify(payload["action"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	pr := asMapping(payload["pull_request"])
	number := firstNonEmpty(
		strings.TrimSpace(stringify(pr["number"])),
		strings.TrimSpace(stringify(payload["number"])),
		"?",
	)
	title := digString(pr, "title")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	headRef := firstNonEmpty(digString(pr, "head", "ref"), "?")
	baseRef := firstNonEmpty(digString(pr, "base", "ref"), "?")
	merged, _ := pr["merged"].(bool)
	url := pr["html_url"]

	// GitHub reports a merge as action "closed" with merged set.
	if action == "closed" && merged {
		action = "merged"
	}

	lines := []string{
		"<b>Pull request</b> <code>" + escapeHTML(repoName) + "</code> #" + escapeHTML(number) +
			" <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>",
	}
	if title != "" {
		lines = append(lines, "<b>"+escapeHTML(title)+"</b>")
	}
	lines = append(lines, escapeHTML(headRef)+" → "+escapeHTML(baseRef))
	if link := renderLink(url, "View pull request"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeIssues(payload map[string]any) string {
	action := stringify(payload["action"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	issue := asMapping(payload["issue"])
	number := firstNonEmpty(
		strings.TrimSpace(stringify(issue["number"])),
		strings.TrimSpace(stringify(payload["number"])),
		"?",
	)
	title := digString(issue, "title")
	actor := firstNonEmpty(extractActor(payload), unknownActor)

	lines := []string{
		"<b>Issue</b> <code>" + escapeHTML(repoName) + "</code> #" + escapeHTML(number) +
			" <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>",
	}
	if title != "" {
		lines = append(lines, "<b>"+escapeHTML(title)+"</b>")
	}
	if link := renderLink(issue["html_url"], "View issue"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeIssueComment(payload map[string]any) string {
	action := stringify(payload["action"])
	issue := asMapping(payload["issue"])
	comment := asMapping(payload["comment"])
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	repoName := firstNonEmpty(extractRepo(payload), "?")
	number := firstNonEmpty(strings.TrimSpace(stringify(issue["number"])), "?")
	excerpt := firstLine(comment["body"], 200)
	url := firstNonEmpty(digString(comment, "html_url"), digString(issue, "html_url"))

	lines := []string{
		"<b>Issue comment</b> on <code>" + escapeHTML(repoName) + "</code> #" + escapeHTML(number) +
			" <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>",
	}
	if excerpt != "" {
		lines = append(lines, escapeHTML(excerpt))
	}
	if link := renderLink(url, "View comment"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizePullRequestReview(payload map[string]any) string {
	action := stringify(payload["action"])
	review := asMapping(payload["review"])
	pr := asMapping(payload["pull_request"])
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	repoName := firstNonEmpty(extractRepo(payload), "?")
	number := firstNonEmpty(
		strings.TrimSpace(stringify(pr["number"])),
		strings.TrimSpace(stringify(payload["number"])),
		"?",
	)
	state := digString(review, "state")
	body := firstLine(review["body"], 200)
	url := firstNonEmpty(digString(review, "html_url"), digString(pr, "html_url"))

	lines := []string{
		"<b>Pull request review</b> on <code>" + escapeHTML(repoName) + "</code> #" + escapeHTML(number) +
			" <b>" + escapeHTML(firstNonEmpty(action, state)) + "</b> by <b>" + escapeHTML(actor) + "</b>",
	}
	if state != "" && !strings.EqualFold(state, action) {
		lines = append(lines, "state: <code>"+escapeHTML(state)+"</code>")
	}
	if body != "" {
		lines = append(lines, escapeHTML(body))
	}
	if link := renderLink(url, "View review"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizePullRequestReviewComment(payload map[string]any) string {
	action := stringify(payload["action"])
	comment := asMapping(payload["comment"])
	pr := asMapping(payload["pull_request"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	number := firstNonEmpty(
		strings.TrimSpace(stringify(pr["number"])),
		strings.TrimSpace(stringify(payload["number"])),
		"?",
	)
	path := digString(comment, "path")
	position := comment["position"]
	body := firstLine(comment["body"], 200)
	url := firstNonEmpty(digString(comment, "html_url"), digString(pr, "html_url"))

	lines := []string{
		"<b>PR review comment</b> on <code>" + escapeHTML(repoName) + "</code> #" + escapeHTML(number) +
			" <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>",
	}
	if path != "" {
		line := "file: <code>" + escapeHTML(path) + "</code>"
		if position != nil {
			line += " (line " + stringify(position) + ")"
		}
		lines = append(lines, line)
	}
	if body != "" {
		lines = append(lines, escapeHTML(body))
	}
	if link := renderLink(url, "View comment"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizePullRequestReviewThread(payload map[string]any) string {
	action := stringify(payload["action"])
	thread := asMapping(payload["thread"])
	pr := asMapping(payload["pull_request"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	number := firstNonEmpty(strings.TrimSpace(stringify(pr["number"])), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	url := firstNonEmpty(digString(thread, "html_url"), digString(pr, "html_url"))
	path := digString(thread, "path")

	lines := []string{
		"<b>PR review thread</b> on <code>" + escapeHTML(repoName) + "</code> #" + escapeHTML(number) +
			" <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>",
	}
	if path != "" {
		lines = append(lines, "file: <code>"+escapeHTML(path)+"</code>")
	}
	if link := renderLink(url, "View thread"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeRelease(payload map[string]any) string {
	action := stringify(payload["action"])
	release := asMapping(payload["release"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	tag := digString(release, "tag_name")
	name := firstNonEmpty(digString(release, "name"), tag, "release")
	actor := firstNonEmpty(extractActor(payload), unknownActor)

	lines := []string{
		"<b>Release</b> <code>" + escapeHTML(repoName) + "</code>" +
			" <b>" + escapeHTML(action) + "</b>" +
			" → <b>" + escapeHTML(name) + "</b>" +
			" by <b>" + escapeHTML(actor) + "</b>",
	}
	if tag != "" && tag != name {
		lines = append(lines, "tag: <code>"+escapeHTML(tag)+"</code>")
	}
	if link := renderLink(release["html_url"], "View release"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeCommitComment(payload map[string]any) string {
	action := stringify(payload["action"])
	comment := asMapping(payload["comment"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	body := firstLine(comment["body"], 200)
	sha := digString(comment, "commit_id")
	if len(sha) > 7 {
		sha = sha[:7]
	}

	lines := []string{
		"<b>Commit comment</b> <code>" + escapeHTML(repoName) + "</code>" +
			" <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>" +
			" on <code>" + escapeHTML(sha) + "</code>",
	}
	if body != "" {
		lines = append(lines, escapeHTML(body))
	}
	if link := renderLink(comment["html_url"], "View comment"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeFork(payload map[string]any) string {
	repoName := firstNonEmpty(extractRepo(payload), "?")
	forkee := asMapping(payload["forkee"])
	forkFull := firstNonEmpty(digString(forkee, "full_name"), digString(forkee, "name"), "?")
	forkURL := firstNonEmpty(digString(forkee, "html_url"), digString(forkee, "svn_url"))
	actor := firstNonEmpty(extractActor(payload), unknownActor)

	lines := []string{
		"<b>Fork</b> of <code>" + escapeHTML(repoName) + "</code> created by <b>" + escapeHTML(actor) + "</b>",
		"new repo: <code>" + escapeHTML(forkFull) + "</code>",
	}
	if link := renderLink(forkURL, "View fork"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeGollum(payload map[string]any) string {
	pages := asList(payload["pages"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)

	lines := []string{
		"<b>Wiki update</b> in <code>" + escapeHTML(repoName) + "</code> by <b>" + escapeHTML(actor) + "</b>",
	}
	for _, p := range pages {
		page := asMapping(p)
		title := firstNonEmpty(digString(page, "title"), "page")
		action := digString(page, "action")
		url := firstNonEmpty(digString(page, "html_url"), digString(page, "page_name"))
		lines = append(lines, "• <b>"+escapeHTML(action)+"</b> "+escapeHTML(title))
		if link := renderLink(url, "View page"); link != "" {
			lines = append(lines, link)
		}
	}
	return strings.Join(lines, "\n")
}

func summarizeStar(payload map[string]any) string {
	action := stringify(payload["action"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	return "<b>Star</b> <code>" + escapeHTML(repoName) + "</code>" +
		" <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>"
}

func summarizeWatch(payload map[string]any) string {
	action := firstNonEmpty(digString(payload, "action"), digString(payload, "event"), "started")
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	return "<b>Watch</b> <code>" + escapeHTML(repoName) + "</code>" +
		" <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>"
}

func summarizePublic(payload map[string]any) string {
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	return "<b>Repository public</b> <code>" + escapeHTML(repoName) + "</code>" +
		" by <b>" + escapeHTML(actor) + "</b>"
}

func summarizeDiscussion(payload map[string]any) string {
	discussion := asMapping(payload["discussion"])
	action := stringify(payload["action"])
	title := digString(discussion, "title")
	repoName := extractRepo(payload)
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	category := digString(discussion, "category", "name")

	head := "<b>Discussion</b> <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>"
	if repoName != "" {
		head += " in <code>" + escapeHTML(repoName) + "</code>"
	}
	lines := []string{head}
	if title != "" {
		lines = append(lines, "<b>"+escapeHTML(title)+"</b>")
	}
	if category != "" {
		lines = append(lines, "category: <code>"+escapeHTML(category)+"</code>")
	}
	if link := renderLink(discussion["html_url"], "View discussion"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeDiscussionComment(payload map[string]any) string {
	discussion := asMapping(payload["discussion"])
	comment := asMapping(payload["comment"])
	action := stringify(payload["action"])
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	url := firstNonEmpty(digString(comment, "html_url"), digString(discussion, "html_url"))
	body := firstLine(comment["body"], 200)
	title := digString(discussion, "title")

	head := "<b>Discussion comment</b> <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>"
	if title != "" {
		head += " on <b>" + escapeHTML(title) + "</b>"
	}
	lines := []string{head}
	if body != "" {
		lines = append(lines, escapeHTML(body))
	}
	if link := renderLink(url, "View comment"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}
