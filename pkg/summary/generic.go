package summary

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// extraSpec is the optional trailer for generic summaries: either fixed lines
// or a function computed from the payload.
type extraSpec struct {
	lines []string
	fn    func(payload map[string]any) ([]string, error)
}

func extraLines(lines ...string) *extraSpec {
	return &extraSpec{lines: lines}
}

func extraFunc(fn func(payload map[string]any) ([]string, error)) *extraSpec {
	return &extraSpec{fn: fn}
}

// render evaluates the extra. A failing function is reported inline as an
// italic annotation instead of aborting the whole summary.
func (e *extraSpec) render(payload map[string]any) []string {
	if e == nil {
		return nil
	}
	if e.fn == nil {
		return e.lines
	}
	lines, err := callExtra(e.fn, payload)
	if err != nil {
		return []string{"<i>extra error: " + escapeHTML(err.Error()) + "</i>"}
	}
	return lines
}

func callExtra(fn func(map[string]any) ([]string, error), payload map[string]any) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerr.New("extra callback panicked", goerr.V("recover", r))
		}
	}()
	return fn(payload)
}

// genericOpts steers genericAction for a specific event type. subject lists
// candidate payload paths for the subject sub-object; subjectFields and
// urlFields override the default extraction order.
type genericOpts struct {
	subject       [][]string
	subjectFields [][]string
	urlFields     [][]string
	extra         *extraSpec
}

// formatMainLine composes the standard headline with fixed ordering:
// label, subject, action, repo, actor. Empty parts are left out, as is the
// substituted "unknown" actor label.
func formatMainLine(label, action, subjectName, repoName, actorName string) string {
	var b strings.Builder
	b.WriteString("<b>" + escapeHTML(label) + "</b>")
	if subjectName != "" {
		b.WriteString(": " + escapeHTML(subjectName))
	}
	if action != "" {
		b.WriteString(" <b>" + escapeHTML(action) + "</b>")
	}
	if repoName != "" {
		b.WriteString(" in <code>" + escapeHTML(repoName) + "</code>")
	}
	if actorName != "" && actorName != unknownActor {
		b.WriteString(" by <b>" + escapeHTML(actorName) + "</b>")
	}
	return b.String()
}

// genericAction covers every event shaped like "label: subject action in
// repo by actor". Roughly twenty minor event types reduce to this template.
func genericAction(label string, payload map[string]any, opts genericOpts) string {
	action := strings.TrimSpace(stringify(payload["action"]))
	actor := firstNonEmpty(extractActor(payload), unknownActor)
	repoName := extractRepo(payload)

	var subjectName, subjectURL string
	if subjectData := resolveSubject(payload, opts.subject); subjectData != nil {
		subjectName, subjectURL = extractSubject(subjectData, opts.subjectFields)
		if subjectURL == "" && len(opts.urlFields) > 0 {
			if m, ok := subjectData.(map[string]any); ok {
				for _, candidate := range opts.urlFields {
					if s := digString(m, candidate...); s != "" {
						subjectURL = s
						break
					}
				}
			}
		}
	}

	lines := []string{formatMainLine(label, action, subjectName, repoName, actor)}
	if subjectURL != "" {
		lines = append(lines, renderLink(subjectURL, "View details"))
	}
	for _, line := range opts.extra.render(payload) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
