package summary

import "strings"

func summarizeRepositoryVulnerabilityAlert(payload map[string]any) string {
	alert := asMapping(payload["alert"])
	action := stringify(payload["action"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	packageName := firstNonEmpty(
		digString(alert, "affected_package", "name"),
		digString(alert, "security_advisory", "summary"),
		"dependency",
	)
	severity := digString(alert, "security_advisory", "severity")

	lines := []string{
		"<b>Repository vulnerability alert</b> <code>" + escapeHTML(repoName) + "</code>" +
			" <b>" + escapeHTML(action) + "</b>" +
			" — <b>" + escapeHTML(packageName) + "</b>" +
			" by <b>" + escapeHTML(actor) + "</b>",
	}
	if severity != "" {
		lines = append(lines, "severity: <code>"+escapeHTML(severity)+"</code>")
	}
	if link := renderLink(dig(alert, "security_advisory", "html_url"), "View advisory"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeSecretScanningAlert(payload map[string]any) string {
	alert := asMapping(payload["alert"])
	action := stringify(payload["action"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	secretType := firstNonEmpty(
		digString(alert, "secret_type_display_name"),
		digString(alert, "secret_type"),
		"secret",
	)
	state := digString(alert, "state")

	lines := []string{
		"<b>Secret scanning alert</b> <code>" + escapeHTML(repoName) + "</code>" +
			" <b>" + escapeHTML(action) + "</b>" +
			" — <b>" + escapeHTML(secretType) + "</b>",
	}
	if state != "" {
		lines = append(lines, "state: <code>"+escapeHTML(state)+"</code>")
	}
	if link := renderLink(alert["html_url"], "View alert"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeSecretScanningAlertLocation(payload map[string]any) string {
	location := asMapping(payload["location"])
	alert := asMapping(payload["alert"])
	repoName := firstNonEmpty(extractRepo(payload), "?")
	typeName := firstNonEmpty(digString(location, "type"), "location")
	path := digString(location, "details", "path")

	lines := []string{
		"<b>Secret scanning location</b> <code>" + escapeHTML(repoName) + "</code>" +
			" → <b>" + escapeHTML(typeName) + "</b>",
	}
	if path != "" {
		lines = append(lines, "path: <code>"+escapeHTML(path)+"</code>")
	}
	if link := renderLink(alert["html_url"], "View alert"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func summarizeSecurityAdvisory(payload map[string]any) string {
	advisory := asMapping(payload["security_advisory"])
	action := stringify(payload["action"])
	ghsa := digString(advisory, "ghsa_id")
	summary := firstNonEmpty(digString(advisory, "summary"), "security advisory")

	lines := []string{
		"<b>Security advisory</b> <b>" + escapeHTML(action) + "</b>" +
			" — <b>" + escapeHTML(summary) + "</b>",
	}
	if ghsa != "" {
		lines = append(lines, "GHSA: <code>"+escapeHTML(ghsa)+"</code>")
	}
	if link := renderLink(advisory["html_url"], "View advisory"); link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}
