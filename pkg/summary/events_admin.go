package summary

import (
	"fmt"
	"strings"
)

// maxListedRepos caps repository name lists in installation summaries.
const maxListedRepos = 5

// repoNameList joins up to maxListedRepos repository names, appending a
// "(+N)" marker for the rest.
func repoNameList(repos []any) string {
	shown := min(len(repos), maxListedRepos)
	names := make([]string, 0, shown)
	for i := range shown {
		repo := asMapping(repos[i])
		names = append(names, escapeHTML(firstNonEmpty(
			digString(repo, "full_name"),
			digString(repo, "name"),
			"?",
		)))
	}
	out := strings.Join(names, ", ")
	if more := len(repos) - maxListedRepos; more > 0 {
		out += fmt.Sprintf(" … (+%d)", more)
	}
	return out
}

func summarizeInstallation(payload map[string]any) string {
	installation := asMapping(payload["installation"])
	action := stringify(payload["action"])
	account := asMapping(installation["account"])
	accountLogin := firstNonEmpty(digString(account, "login"), digString(account, "name"), "?")
	repos := asList(installation["repositories"])

	lines := []string{
		"<b>Installation</b> <b>" + escapeHTML(action) + "</b> for <b>" + escapeHTML(accountLogin) + "</b>",
	}
	if len(repos) > 0 {
		lines = append(lines, "repositories: "+repoNameList(repos))
	}
	return strings.Join(lines, "\n")
}

func summarizeInstallationRepositories(payload map[string]any) string {
	action := stringify(payload["action"])
	installation := asMapping(payload["installation"])
	account := asMapping(installation["account"])
	accountLogin := firstNonEmpty(digString(account, "login"), digString(account, "name"), "?")
	added := asList(payload["repositories_added"])
	removed := asList(payload["repositories_removed"])

	lines := []string{
		"<b>Installation repositories</b> <b>" + escapeHTML(action) + "</b> for <b>" + escapeHTML(accountLogin) + "</b>",
	}
	if len(added) > 0 {
		lines = append(lines, "added: "+repoNameList(added))
	}
	if len(removed) > 0 {
		lines = append(lines, "removed: "+repoNameList(removed))
	}
	return strings.Join(lines, "\n")
}

func summarizeInstallationTarget(payload map[string]any) string {
	action := stringify(payload["action"])
	installation := asMapping(payload["installation"])
	account := asMapping(installation["account"])
	accountLogin := firstNonEmpty(digString(account, "login"), digString(account, "name"), "?")
	targetType := firstNonEmpty(
		digString(payload, "target_type"),
		digString(installation, "target_type"),
		"target",
	)
	return "<b>Installation target</b> <b>" + escapeHTML(action) + "</b>" +
		" on <b>" + escapeHTML(accountLogin) + "</b> (" + escapeHTML(targetType) + ")"
}

func summarizeMarketplacePurchase(payload map[string]any) string {
	action := stringify(payload["action"])
	purchase := asMapping(payload["marketplace_purchase"])
	account := asMapping(purchase["account"])
	plan := asMapping(purchase["plan"])
	accountLogin := firstNonEmpty(digString(account, "login"), digString(account, "name"), "?")
	planName := firstNonEmpty(digString(plan, "name"), "plan")

	lines := []string{
		"<b>Marketplace purchase</b> <b>" + escapeHTML(action) + "</b>" +
			" by <b>" + escapeHTML(accountLogin) + "</b>",
		"plan: <b>" + escapeHTML(planName) + "</b>",
	}
	if quantity := purchase["unit_count"]; quantity != nil {
		lines = append(lines, "seats: <code>"+escapeHTML(quantity)+"</code>")
	}
	unitPrice, okPrice := plan["unit_price"].(float64)
	unitCount, okCount := purchase["unit_count"].(float64)
	if okPrice && okCount {
		lines = append(lines, "total: <code>"+stringify(unitPrice*unitCount)+"</code>")
	}
	return strings.Join(lines, "\n")
}

func summarizeMember(payload map[string]any) string {
	member := asMapping(payload["member"])
	action := stringify(payload["action"])
	repoName := extractRepo(payload)
	memberLogin := firstNonEmpty(digString(member, "login"), digString(member, "name"), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)

	head := "<b>Repository member</b> <b>" + escapeHTML(action) + "</b> " + escapeHTML(memberLogin)
	if repoName != "" {
		head += " in <code>" + escapeHTML(repoName) + "</code>"
	}
	return head + " by <b>" + escapeHTML(actor) + "</b>"
}

func summarizeMembership(payload map[string]any) string {
	action := stringify(payload["action"])
	member := asMapping(payload["member"])
	team := asMapping(payload["team"])
	memberLogin := firstNonEmpty(digString(member, "login"), digString(member, "name"), "?")
	teamName := firstNonEmpty(digString(team, "name"), digString(team, "slug"), "team")
	org := firstNonEmpty(digString(payload, "organization", "login"), "?")

	return "<b>Team membership</b> <b>" + escapeHTML(action) + "</b>" +
		" — <b>" + escapeHTML(memberLogin) + "</b> in <b>" + escapeHTML(teamName) + "</b>" +
		" (@" + escapeHTML(org) + ")"
}

func summarizeMeta(payload map[string]any) string {
	action := stringify(payload["action"])
	hookID := firstNonEmpty(strings.TrimSpace(stringify(payload["hook_id"])), "?")
	hook := asMapping(payload["hook"])
	repoName := extractRepo(payload)

	head := "<b>Webhook meta</b> <b>" + escapeHTML(action) + "</b> (hook <code>" + escapeHTML(hookID) + "</code>)"
	if repoName != "" {
		head += " for <code>" + escapeHTML(repoName) + "</code>"
	}
	lines := []string{head}
	if link := renderLink(dig(hook, "config", "url"), "Payload URL"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeMilestone(payload map[string]any) string {
	milestone := asMapping(payload["milestone"])
	action := stringify(payload["action"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	title := firstNonEmpty(digString(milestone, "title"), "milestone")
	due := digString(milestone, "due_on")

	lines := []string{
		"<b>Milestone</b> <code>" + escapeHTML(repoName) + "</code>" +
			" <b>" + escapeHTML(action) + "</b> → <b>" + escapeHTML(title) + "</b>",
	}
	if due != "" {
		lines = append(lines, "due: <code>"+escapeHTML(due)+"</code>")
	}
	if link := renderLink(milestone["html_url"], "View milestone"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeOrgBlock(payload map[string]any) string {
	action := stringify(payload["action"])
	blockedUser := firstNonEmpty(digString(payload, "blocked_user", "login"), "?")
	org := firstNonEmpty(digString(payload, "organization", "login"), "?")
	return "<b>Org block</b> <b>" + escapeHTML(action) + "</b>" +
		" — <b>" + escapeHTML(blockedUser) + "</b> @" + escapeHTML(org)
}

func summarizeOrganization(payload map[string]any) string {
	action := stringify(payload["action"])
	membership := asMapping(payload["membership"])
	invitation := asMapping(payload["invitation"])
	org := firstNonEmpty(digString(payload, "organization", "login"), "?")

	lines := []string{"<b>Organization</b> <b>" + escapeHTML(action) + "</b> @" + escapeHTML(org)}
	if len(membership) > 0 {
		user := asMapping(membership["user"])
		login := firstNonEmpty(digString(user, "login"), digString(user, "name"), "?")
		role := digString(membership, "role")
		lines = append(lines, "member: <b>"+escapeHTML(login)+"</b> role <code>"+escapeHTML(role)+"</code>")
	}
	if len(invitation) > 0 {
		invitee := firstNonEmpty(digString(invitation, "login"), digString(invitation, "email"), "?")
		lines = append(lines, "invitation: <code>"+escapeHTML(invitee)+"</code>")
	}
	return strings.Join(lines, "\n")
}

func summarizePersonalAccessTokenRequest(payload map[string]any) string {
	action := stringify(payload["action"])
	request := asMapping(payload["personal_access_token_request"])
	requestID := firstNonEmpty(strings.TrimSpace(stringify(request["id"])), "?")
	state := digString(request, "state")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	org := firstNonEmpty(digString(payload, "organization", "login"), "?")

	lines := []string{
		"<b>Personal access token request</b> <b>" + escapeHTML(action) + "</b>" +
			" — request <code>" + escapeHTML(requestID) + "</code>" +
			" for @" + escapeHTML(org),
	}
	if state != "" {
		lines = append(lines, "state: <code>"+escapeHTML(state)+"</code>")
	}
	lines = append(lines, "by <b>"+escapeHTML(actor)+"</b>")
	return strings.Join(lines, "\n")
}

func summarizeSponsorship(payload map[string]any) string {
	sponsorship := asMapping(payload["sponsorship"])
	action := stringify(payload["action"])
	sponsor := asMapping(sponsorship["sponsor"])
	maintainer := asMapping(sponsorship["maintainer"])
	tier := asMapping(sponsorship["tier"])
	sponsorLogin := firstNonEmpty(digString(sponsor, "login"), digString(sponsor, "name"), "?")
	maintainerLogin := firstNonEmpty(digString(maintainer, "login"), digString(maintainer, "name"), "?")
	tierName := firstNonEmpty(digString(tier, "name"), "tier")

	return "<b>Sponsorship</b> <b>" + escapeHTML(action) + "</b>" +
		" — <b>" + escapeHTML(sponsorLogin) + "</b> → <b>" + escapeHTML(maintainerLogin) + "</b>" +
		"\ntier: <b>" + escapeHTML(tierName) + "</b>"
}

func summarizeTeamAdd(payload map[string]any) string {
	team := asMapping(payload["team"])
	repo := asMapping(payload["repository"])
	teamName := firstNonEmpty(digString(team, "name"), digString(team, "slug"), "team")
	repoName := firstNonEmpty(digString(repo, "full_name"), digString(repo, "name"), "repository")

	return "<b>Team access</b> — <b>" + escapeHTML(teamName) + "</b> now has access to" +
		" <code>" + escapeHTML(repoName) + "</code>"
}

func summarizeGitHubAppAuthorization(payload map[string]any) string {
	action := stringify(payload["action"])
	sender := asMapping(payload["sender"])
	login := firstNonEmpty(digString(sender, "login"), digString(sender, "name"), "user")
	return "<b>GitHub App authorization</b> <b>" + escapeHTML(action) + "</b>" +
		" by <b>" + escapeHTML(login) + "</b>"
}

func summarizeCustomPropertyValues(payload map[string]any) string {
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	newValues := asList(payload["new_property_values"])
	oldValues := asList(payload["old_property_values"])

	lines := []string{
		"<b>Custom property values</b> updated in <code>" + escapeHTML(repoName) + "</code>" +
			" by <b>" + escapeHTML(actor) + "</b>",
	}
	if len(newValues) > 0 {
		lines = append(lines, fmt.Sprintf("%d new values", len(newValues)))
	}
	if len(oldValues) > 0 {
		lines = append(lines, fmt.Sprintf("%d previous values", len(oldValues)))
	}
	return strings.Join(lines, "\n")
}
