package summary

import (
	"fmt"
	"strings"
)

// maxSteps caps the step list rendered for workflow job and check run
// summaries.
const maxSteps = 5

// stepLines renders up to maxSteps entries from a steps array, each with its
// name and conclusion (falling back to status while still running).
func stepLines(steps []any) []string {
	if len(steps) == 0 {
		return nil
	}
	shown := min(len(steps), maxSteps)
	lines := make([]string, 0, shown+1)
	for i := range shown {
		step := asMapping(steps[i])
		name := firstNonEmpty(strings.TrimSpace(stringify(step["name"])), "step")
		state := firstNonEmpty(digString(step, "conclusion"), digString(step, "status"))
		line := "• <code>" + escapeHTML(name) + "</code>"
		if state != "" {
			line += " — " + escapeHTML(state)
		}
		lines = append(lines, line)
	}
	if overflow := len(steps) - maxSteps; overflow > 0 {
		lines = append(lines, fmt.Sprintf("<i>+%d more steps</i>", overflow))
	}
	return lines
}

func summarizeWorkflowRun(payload map[string]any) string {
	run := asMapping(payload["workflow_run"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	name := firstNonEmpty(digString(run, "name"), "workflow")
	status := digString(run, "status")
	conclusion := digString(run, "conclusion")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	runNumber := run["run_number"]
	headBranch := digString(run, "head_branch")

	head := "<b>Workflow run</b> <code>" + escapeHTML(repoName) + "</code>: <b>" + escapeHTML(name) + "</b>"
	if truthy(runNumber) {
		head += " #" + escapeHTML(runNumber)
	}
	head += " — <b>" + escapeHTML(status) + "</b>"
	if conclusion != "" {
		head += " " + escapeHTML(conclusion)
	}
	head += " by <b>" + escapeHTML(actor) + "</b>"

	lines := []string{head}
	if headBranch != "" {
		lines = append(lines, "branch: <code>"+escapeHTML(headBranch)+"</code>")
	}
	if link := renderLink(run["html_url"], "View run"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeWorkflowJob(payload map[string]any) string {
	job := asMapping(payload["workflow_job"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	name := firstNonEmpty(digString(job, "name"), "job")
	status := digString(job, "status")
	conclusion := digString(job, "conclusion")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	runID := job["run_id"]

	head := "<b>Workflow job</b> <code>" + escapeHTML(repoName) + "</code>: <b>" + escapeHTML(name) + "</b>" +
		" — <b>" + escapeHTML(status) + "</b>"
	if conclusion != "" {
		head += " " + escapeHTML(conclusion)
	}
	head += " by <b>" + escapeHTML(actor) + "</b>"
	if truthy(runID) {
		head += " (run " + escapeHTML(runID) + ")"
	}
	lines := []string{head}
	lines = append(lines, stepLines(asList(job["steps"]))...)
	if link := renderLink(job["html_url"], "View job"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeWorkflowDispatch(payload map[string]any) string {
	workflow := asMapping(payload["workflow"])
	name := firstNonEmpty(digString(workflow, "name"), digString(workflow, "path"), "workflow")
	repoName := firstNonEmpty(extractRepo(payload), "?")
	ref := firstNonEmpty(digString(payload, "ref"), digString(payload, "workflow_ref"))
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	inputs := asMapping(payload["inputs"])

	lines := []string{
		"<b>Workflow dispatch</b> <code>" + escapeHTML(repoName) + "</code>: <b>" + escapeHTML(name) + "</b>" +
			" triggered by <b>" + escapeHTML(actor) + "</b>",
	}
	if ref != "" {
		lines = append(lines, "ref: <code>"+escapeHTML(ref)+"</code>")
	}
	if len(inputs) > 0 {
		pairs := make([]string, 0, len(inputs))
		for _, key := range sortedKeys(inputs) {
			pairs = append(pairs, escapeHTML(key)+"="+escapeHTML(inputs[key]))
		}
		lines = append(lines, "inputs: "+strings.Join(pairs, ", "))
	}
	return strings.Join(lines, "\n")
}

func summarizeCheckRun(payload map[string]any) string {
	checkRun := asMapping(payload["check_run"])
	name := firstNonEmpty(digString(checkRun, "name"), "check run")
	status := digString(checkRun, "status")
	conclusion := digString(checkRun, "conclusion")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	repoName := firstNonEmpty(extractRepo(payload), "?")

	head := "<b>Check run</b> <code>" + escapeHTML(repoName) + "</code>: <b>" + escapeHTML(name) + "</b>" +
		" — <b>" + escapeHTML(status) + "</b>"
	if conclusion != "" {
		head += " " + escapeHTML(conclusion)
	}
	head += " by <b>" + escapeHTML(actor) + "</b>"
	lines := []string{head}
	lines = append(lines, stepLines(asList(checkRun["steps"]))...)
	if link := renderLink(checkRun["html_url"], "View check run"); link != "" {
		lines = append(lines, link)
	} else if link := renderLink(checkRun["details_url"], "Details"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeCheckSuite(payload map[string]any) string {
	checkSuite := asMapping(payload["check_suite"])
	action := stringify(payload["action"])
	status := digString(checkSuite, "status")
	conclusion := digString(checkSuite, "conclusion")
	headBranch := digString(checkSuite, "head_branch")
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)

	lines := []string{
		"<b>Check suite</b> <code>" + escapeHTML(repoName) + "</code>" +
			" <b>" + escapeHTML(firstNonEmpty(action, status)) + "</b> by <b>" + escapeHTML(actor) + "</b>",
	}
	if headBranch != "" {
		lines = append(lines, "branch: <code>"+escapeHTML(headBranch)+"</code>")
	}
	if conclusion != "" {
		lines = append(lines, "conclusion: <code>"+escapeHTML(conclusion)+"</code>")
	}
	return strings.Join(lines, "\n")
}

func summarizeStatus(payload map[string]any) string {
	state := stringify(payload["state"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	sha := digString(payload, "sha")
	if len(sha) > 7 {
		sha = sha[:7]
	}
	context := stringify(payload["context"])
	description := digString(payload, "description")
	targetURL := digString(payload, "target_url")

	lines := []string{
		"<b>Status</b> <code>" + escapeHTML(repoName) + "</code> <code>" + escapeHTML(context) + "</code>" +
			" → <b>" + escapeHTML(state) + "</b>" +
			" for <code>" + escapeHTML(sha) + "</code>",
	}
	if description != "" {
		lines = append(lines, escapeHTML(description))
	}
	if link := renderLink(targetURL, "View status"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeDeployment(payload map[string]any) string {
	deployment := asMapping(payload["deployment"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	environment := firstNonEmpty(digString(deployment, "environment"), "?")
	ref := digString(deployment, "ref")
	description := digString(deployment, "description")
	url := firstNonEmpty(digString(deployment, "statuses_url"), digString(deployment, "url"))

	lines := []string{
		"<b>Deployment</b> <code>" + escapeHTML(repoName) + "</code>" +
			" → <b>" + escapeHTML(environment) + "</b>" +
			" by <b>" + escapeHTML(actor) + "</b>",
	}
	if ref != "" {
		lines = append(lines, "ref: <code>"+escapeHTML(ref)+"</code>")
	}
	if description != "" {
		lines = append(lines, escapeHTML(description))
	}
	if link := renderLink(url, "Deployment API"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeDeploymentStatus(payload map[string]any) string {
	deployment := asMapping(payload["deployment"])
	status := asMapping(payload["deployment_status"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	environment := firstNonEmpty(
		digString(deployment, "environment"),
		digString(status, "environment"),
		"?",
	)
	state := digString(status, "state")
	description := digString(status, "description")

	lines := []string{
		"<b>Deployment status</b> <code>" + escapeHTML(repoName) + "</code>" +
			" → <b>" + escapeHTML(environment) + "</b>" +
			" is <b>" + escapeHTML(state) + "</b>" +
			" by <b>" + escapeHTML(actor) + "</b>",
	}
	if description != "" {
		lines = append(lines, escapeHTML(description))
	}
	if link := renderLink(status["target_url"], "Target"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeDeploymentReview(payload map[string]any) string {
	deployment := asMapping(payload["deployment"])
	review := asMapping(payload["review"])
	environment := firstNonEmpty(
		digString(deployment, "environment"),
		digString(review, "environment"),
		"?",
	)
	state := digString(review, "state")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	repoName := firstNonEmpty(extractRepo(payload), "?")

	lines := []string{
		"<b>Deployment review</b> <code>" + escapeHTML(repoName) + "</code>" +
			" → <b>" + escapeHTML(environment) + "</b>" +
			" <b>" + escapeHTML(state) + "</b> by <b>" + escapeHTML(actor) + "</b>",
	}
	if link := renderLink(review["html_url"], "View review"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeDeploymentProtectionRule(payload map[string]any) string {
	environment := firstNonEmpty(
		digString(payload, "environment"),
		digString(payload, "deployment_protection_rule", "environment"),
		"?",
	)
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	action := stringify(payload["action"])
	repoName := firstNonEmpty(extractRepo(payload), "?")

	return "<b>Deployment protection rule</b> <code>" + escapeHTML(repoName) + "</code>" +
		" → <b>" + escapeHTML(environment) + "</b>" +
		" <b>" + escapeHTML(action) + "</b> by <b>" + escapeHTML(actor) + "</b>"
}

func summarizePageBuild(payload map[string]any) string {
	build := asMapping(payload["build"])
	status := digString(build, "status")
	message := digString(build, "error", "message")
	repoName := firstNonEmpty(extractRepo(payload), "?")

	lines := []string{
		"<b>Page build</b> <code>" + escapeHTML(repoName) + "</code>" +
			" → <b>" + escapeHTML(status) + "</b>",
	}
	if message != "" {
		lines = append(lines, escapeHTML(message))
	}
	if link := renderLink(build["url"], "View build"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeRepositoryImport(payload map[string]any) string {
	status := stringify(payload["status"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	human := digString(payload, "human_name")
	progress := payload["progress"]

	lines := []string{
		"<b>Repository import</b> <code>" + escapeHTML(repoName) + "</code>" +
			" → <b>" + escapeHTML(status) + "</b>",
	}
	if human != "" {
		lines = append(lines, escapeHTML(human))
	}
	if progress != nil {
		lines = append(lines, "progress: <code>"+escapeHTML(progress)+"</code>")
	}
	return strings.Join(lines, "\n")
}

func summarizeMergeGroup(payload map[string]any) string {
	action := stringify(payload["action"])
	mergeGroup := asMapping(payload["merge_group"])
	headRef := digString(mergeGroup, "head_ref")
	baseRef := digString(mergeGroup, "base_ref")
	repoName := firstNonEmpty(extractRepo(payload), "?")

	lines := []string{
		"<b>Merge group</b> <b>" + escapeHTML(action) + "</b> in <code>" + escapeHTML(repoName) + "</code>",
	}
	if headRef != "" || baseRef != "" {
		lines = append(lines, escapeHTML(headRef)+" → "+escapeHTML(baseRef))
	}
	return strings.Join(lines, "\n")
}

func summarizeRepositoryDispatch(payload map[string]any) string {
	eventType := firstNonEmpty(
		digString(payload, "action"),
		digString(payload, "event_type"),
		"dispatch",
	)
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)

	lines := []string{
		"<b>Repository dispatch</b> <code>" + escapeHTML(repoName) + "</code>" +
			" event <code>" + escapeHTML(eventType) + "</code> by <b>" + escapeHTML(actor) + "</b>",
	}
	if client, ok := payload["client_payload"].(map[string]any); ok && len(client) > 0 {
		keys := sortedKeys(client)
		if len(keys) > 6 {
			keys = keys[:6]
		}
		pairs := make([]string, 0, len(keys))
		for _, key := range keys {
			pairs = append(pairs, escapeHTML(key)+"="+escapeHTML(client[key]))
		}
		lines = append(lines, "payload: "+strings.Join(pairs, ", "))
	}
	return strings.Join(lines, "\n")
}
