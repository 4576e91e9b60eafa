package summary

// The events below all fit the "label: subject action in repo by actor"
// template; only the subject location and field priorities vary.

func summarizeProject(payload map[string]any) string {
	return genericAction("Project", payload, genericOpts{
		subject:       [][]string{{"project"}},
		subjectFields: [][]string{{"name"}, {"body"}, {"number"}},
	})
}

func summarizeProjectCard(payload map[string]any) string {
	return genericAction("Project card", payload, genericOpts{
		subject:       [][]string{{"project_card"}},
		subjectFields: [][]string{{"note"}, {"column_name"}, {"id"}},
	})
}

func summarizeProjectColumn(payload map[string]any) string {
	return genericAction("Project column", payload, genericOpts{
		subject:       [][]string{{"project_column"}},
		subjectFields: [][]string{{"name"}, {"id"}},
	})
}

func summarizeProjectsV2(payload map[string]any) string {
	return genericAction("Project", payload, genericOpts{
		subject:       [][]string{{"projects_v2"}},
		subjectFields: [][]string{{"title"}, {"number"}, {"id"}},
	})
}

func summarizeProjectsV2Item(payload map[string]any) string {
	return genericAction("Project item", payload, genericOpts{
		subject:       [][]string{{"projects_v2_item"}},
		subjectFields: [][]string{{"title"}, {"content_type"}, {"id"}},
	})
}

func summarizeProjectsV2StatusUpdate(payload map[string]any) string {
	return genericAction("Project status update", payload, genericOpts{
		subject:       [][]string{{"projects_v2_status_update"}},
		subjectFields: [][]string{{"status"}, {"title"}, {"id"}},
	})
}

func summarizeRegistryPackage(payload map[string]any) string {
	return genericAction("Registry package", payload, genericOpts{
		subject:       [][]string{{"registry_package"}},
		subjectFields: [][]string{{"name"}, {"package_type"}, {"id"}},
	})
}

func summarizeRepository(payload map[string]any) string {
	return genericAction("Repository", payload, genericOpts{
		subject:       [][]string{{"repository"}},
		subjectFields: [][]string{{"full_name"}, {"name"}, {"id"}},
	})
}

func summarizeRepositoryRuleset(payload map[string]any) string {
	return genericAction("Repository ruleset", payload, genericOpts{
		subject:       [][]string{{"ruleset"}},
		subjectFields: [][]string{{"name"}, {"target"}, {"id"}},
		extra: extraFunc(func(payload map[string]any) ([]string, error) {
			enforcement := digString(payload, "ruleset", "enforcement")
			if enforcement == "" {
				return nil, nil
			}
			return []string{"enforcement: <code>" + escapeHTML(enforcement) + "</code>"}, nil
		}),
	})
}

func summarizeSecretScanningScan(payload map[string]any) string {
	return genericAction("Secret scanning scan", payload, genericOpts{
		subject:       [][]string{{"scan"}},
		subjectFields: [][]string{{"type"}, {"id"}},
	})
}

func summarizeSecurityAndAnalysis(payload map[string]any) string {
	return genericAction("Security and analysis", payload, genericOpts{
		subject: [][]string{{"security_and_analysis"}},
		subjectFields: [][]string{
			{"status"},
			{"advanced_security", "status"},
			{"secret_scanning", "status"},
		},
	})
}

func summarizeSubIssues(payload map[string]any) string {
	return genericAction("Sub-issues", payload, genericOpts{
		subject:       [][]string{{"sub_issue"}},
		subjectFields: [][]string{{"title"}, {"number"}, {"id"}},
	})
}

func summarizeTeam(payload map[string]any) string {
	return genericAction("Team", payload, genericOpts{
		subject:       [][]string{{"team"}},
		subjectFields: [][]string{{"name"}, {"slug"}, {"id"}},
	})
}

func summarizeDependabotAlert(payload map[string]any) string {
	return genericAction("Dependabot alert", payload, genericOpts{
		subject: [][]string{{"alert"}},
		subjectFields: [][]string{
			{"number"},
			{"security_advisory", "summary"},
			{"dependency", "package", "name"},
		},
		extra: extraFunc(func(payload map[string]any) ([]string, error) {
			severity := digString(payload, "alert", "security_advisory", "severity")
			if severity == "" {
				return nil, nil
			}
			return []string{"severity: <code>" + escapeHTML(severity) + "</code>"}, nil
		}),
	})
}

func summarizeCodeScanningAlert(payload map[string]any) string {
	return genericAction("Code scanning alert", payload, genericOpts{
		subject: [][]string{{"alert"}},
		subjectFields: [][]string{
			{"rule", "id"},
			{"rule", "name"},
			{"number"},
			{"html_url"},
		},
	})
}

func summarizeBranchProtectionConfiguration(payload map[string]any) string {
	return genericAction("Branch protection configuration", payload, genericOpts{})
}

func summarizeBranchProtectionRule(payload map[string]any) string {
	return genericAction("Branch protection rule", payload, genericOpts{
		subject:       [][]string{{"rule"}},
		subjectFields: [][]string{{"name"}, {"pattern"}, {"id"}},
	})
}

func summarizeCustomProperty(payload map[string]any) string {
	return genericAction("Custom property", payload, genericOpts{
		subject:       [][]string{{"custom_property"}},
		subjectFields: [][]string{{"name"}, {"full_name"}, {"id"}},
	})
}

func summarizeDeployKey(payload map[string]any) string {
	return genericAction("Deploy key", payload, genericOpts{
		subject:       [][]string{{"key"}},
		subjectFields: [][]string{{"title"}, {"id"}, {"fingerprint"}},
	})
}

func summarizeIssueDependencies(payload map[string]any) string {
	return genericAction("Issue dependencies", payload, genericOpts{
		subject:       [][]string{{"dependent", "issue"}},
		subjectFields: [][]string{{"title"}, {"number"}},
	})
}

func summarizeLabel(payload map[string]any) string {
	return genericAction("Label", payload, genericOpts{
		subject:       [][]string{{"label"}},
		subjectFields: [][]string{{"name"}, {"color"}, {"id"}},
	})
}

func summarizePackage(payload map[string]any) string {
	return genericAction("Package", payload, genericOpts{
		subject:       [][]string{{"package"}},
		subjectFields: [][]string{{"name"}, {"package_type"}, {"id"}},
	})
}

func summarizeRepositoryAdvisory(payload map[string]any) string {
	return genericAction("Repository advisory", payload, genericOpts{
		subject:       [][]string{{"repository_advisory"}},
		subjectFields: [][]string{{"summary"}, {"ghsa_id"}, {"cve_id"}},
	})
}
