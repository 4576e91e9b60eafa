// Package summary converts raw GitHub webhook payloads into concise HTML
// notification text for Telegram's HTML parse mode. It is a pure library:
// no I/O, no state, safe for concurrent use. Every payload-derived fragment
// in the output is escaped; the only unescaped markup is the fixed set of
// tags the summarizers themselves emit.
package summary

import (
	"maps"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// handlerFunc renders one event payload into Telegram-ready HTML.
type handlerFunc func(payload map[string]any) string

// eventsMetadata declares every recognized webhook event. A nil handler means
// the event has no dedicated summarizer and gets the generic action form
// under its prettified name.
var eventsMetadata = map[string]handlerFunc{
	"branch_protection_configuration": summarizeBranchProtectionConfiguration,
	"branch_protection_rule":          summarizeBranchProtectionRule,
	"check_run":                       summarizeCheckRun,
	"check_suite":                     summarizeCheckSuite,
	"code_scanning_alert":             summarizeCodeScanningAlert,
	"commit_comment":                  summarizeCommitComment,
	"create":                          summarizeCreate,
	"custom_property":                 summarizeCustomProperty,
	"custom_property_values":          summarizeCustomPropertyValues,
	"delete":                          summarizeDelete,
	"dependabot_alert":                summarizeDependabotAlert,
	"deploy_key":                      summarizeDeployKey,
	"deployment":                      summarizeDeployment,
	"deployment_protection_rule":      summarizeDeploymentProtectionRule,
	"deployment_review":               summarizeDeploymentReview,
	"deployment_status":               summarizeDeploymentStatus,
	"discussion":                      summarizeDiscussion,
	"discussion_comment":              summarizeDiscussionComment,
	"fork":                            summarizeFork,
	"github_app_authorization":        summarizeGitHubAppAuthorization,
	"gollum":                          summarizeGollum,
	"installation":                    summarizeInstallation,
	"installation_repositories":       summarizeInstallationRepositories,
	"installation_target":             summarizeInstallationTarget,
	"issue_comment":                   summarizeIssueComment,
	"issue_dependencies":              summarizeIssueDependencies,
	"issues":                          summarizeIssues,
	"label":                           summarizeLabel,
	"marketplace_purchase":            summarizeMarketplacePurchase,
	"member":                          summarizeMember,
	"membership":                      summarizeMembership,
	"merge_group":                     summarizeMergeGroup,
	"merge_queue_entry":               nil,
	"meta":                            summarizeMeta,
	"milestone":                       summarizeMilestone,
	"org_block":                       summarizeOrgBlock,
	"organization":                    summarizeOrganization,
	"package":                         summarizePackage,
	"page_build":                      summarizePageBuild,
	"personal_access_token_request":   summarizePersonalAccessTokenRequest,
	"ping":                            summarizePing,
	"project":                         summarizeProject,
	"project_card":                    summarizeProjectCard,
	"project_column":                  summarizeProjectColumn,
	"projects_v2":                     summarizeProjectsV2,
	"projects_v2_item":                summarizeProjectsV2Item,
	"projects_v2_status_update":       summarizeProjectsV2StatusUpdate,
	"public":                          summarizePublic,
	"pull_request":                    summarizePullRequest,
	"pull_request_review":             summarizePullRequestReview,
	"pull_request_review_comment":     summarizePullRequestReviewComment,
	"pull_request_review_thread":      summarizePullRequestReviewThread,
	"push":                            summarizePush,
	"registry_package":                summarizeRegistryPackage,
	"release":                         summarizeRelease,
	"repository":                      summarizeRepository,
	"repository_advisory":             summarizeRepositoryAdvisory,
	"repository_dispatch":             summarizeRepositoryDispatch,
	"repository_import":               summarizeRepositoryImport,
	"repository_ruleset":              summarizeRepositoryRuleset,
	"repository_vulnerability_alert":  summarizeRepositoryVulnerabilityAlert,
	"secret_scanning_alert":           summarizeSecretScanningAlert,
	"secret_scanning_alert_location":  summarizeSecretScanningAlertLocation,
	"secret_scanning_scan":            summarizeSecretScanningScan,
	"security_advisory":               summarizeSecurityAdvisory,
	"security_and_analysis":           summarizeSecurityAndAnalysis,
	"sponsorship":                     summarizeSponsorship,
	"star":                            summarizeStar,
	"status":                          summarizeStatus,
	"sub_issues":                      summarizeSubIssues,
	"team":                            summarizeTeam,
	"team_add":                        summarizeTeamAdd,
	"watch":                           summarizeWatch,
	"workflow_dispatch":               summarizeWorkflowDispatch,
	"workflow_job":                    summarizeWorkflowJob,
	"workflow_run":                    summarizeWorkflowRun,
}

var handlers = buildHandlers()

func buildHandlers() map[string]handlerFunc {
	built := make(map[string]handlerFunc, len(eventsMetadata))
	for name, handler := range eventsMetadata {
		if handler == nil {
			label := prettyLabel(name)
			handler = func(payload map[string]any) string {
				return genericAction(label, payload, genericOpts{})
			}
		}
		built[name] = handler
	}
	return built
}

// EventNames returns every recognized event type, sorted. Subscription
// event filters are validated against this list.
func EventNames() []string {
	return slices.Sorted(maps.Keys(handlers))
}

// Summarize converts one GitHub webhook delivery into Telegram HTML. The
// event type is case-insensitive and any JSON-decoded payload is accepted;
// non-object payloads are treated as empty. It always returns a non-empty
// string: unknown event types and failing summarizers degrade to a generic
// fallback line instead of an error.
func Summarize(eventType string, payload any) string {
	key := strings.ToLower(eventType)
	data := asMapping(payload)
	if handler, ok := handlers[key]; ok {
		if text, err := invoke(handler, data); err == nil {
			return text
		}
	}
	return fallbackSummary(key, data)
}

// invoke shields the dispatcher from a misbehaving summarizer. GitHub payload
// shapes drift over time; a panic in one handler must not fail the delivery.
func invoke(handler handlerFunc, payload map[string]any) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerr.New("summarizer failed", goerr.V("recover", r))
		}
	}()
	return handler(payload), nil
}

// fallbackSummary is the unconditional last resort: pure concatenation over
// helpers that cannot fail.
func fallbackSummary(event string, payload map[string]any) string {
	line := "<b>" + escapeHTML(prettyLabel(event)) + "</b> event"
	if repoName := extractRepo(payload); repoName != "" {
		line += " for <code>" + escapeHTML(repoName) + "</code>"
	}
	if actor := extractActor(payload); actor != "" {
		line += " by <b>" + escapeHTML(actor) + "</b>"
	}
	return line
}
