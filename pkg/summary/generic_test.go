package summary

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestGenericAction(t *testing.T) {
	payload := map[string]any{
		"action":     "created",
		"label":      map[string]any{"name": "bug", "url": "https://example.com/l"},
		"repository": map[string]any{"full_name": "a/b"},
		"sender":     map[string]any{"login": "alice"},
	}

	t.Run("full template", func(t *testing.T) {
		got := genericAction("Label", payload, genericOpts{
			subject:       [][]string{{"label"}},
			subjectFields: [][]string{{"name"}},
		})
		gt.Value(t, got).Equal(
			"<b>Label</b>: bug <b>created</b> in <code>a/b</code> by <b>alice</b>\n" +
				`<a href="https://example.com/l">View details</a>`)
	})

	t.Run("unknown actor omitted from headline", func(t *testing.T) {
		got := genericAction("Label", map[string]any{"action": "deleted"}, genericOpts{})
		gt.Value(t, got).Equal("<b>Label</b> <b>deleted</b>")
	})

	t.Run("literal extra lines appended", func(t *testing.T) {
		got := genericAction("Team", payload, genericOpts{
			extra: extraLines("note: <code>x</code>", ""),
		})
		gt.Value(t, strings.HasSuffix(got, "\nnote: <code>x</code>")).Equal(true)
	})

	t.Run("computed extra", func(t *testing.T) {
		got := genericAction("Team", payload, genericOpts{
			extra: extraFunc(func(p map[string]any) ([]string, error) {
				return []string{"actor: " + escapeHTML(extractActor(p))}, nil
			}),
		})
		gt.Value(t, strings.HasSuffix(got, "\nactor: alice")).Equal(true)
	})

	t.Run("panicking extra rendered inline", func(t *testing.T) {
		got := genericAction("Team", payload, genericOpts{
			extra: extraFunc(func(p map[string]any) ([]string, error) {
				panic("boom")
			}),
		})
		gt.Value(t, strings.Contains(got, "<i>extra error: ")).Equal(true)
		// The headline must survive the failed extra.
		gt.Value(t, strings.HasPrefix(got, "<b>Team</b>")).Equal(true)
	})
}

func TestFormatMainLine(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		action  string
		subject string
		repo    string
		actor   string
		want    string
	}{
		{
			name:  "label only",
			label: "Event", want: "<b>Event</b>",
		},
		{
			name:  "all parts",
			label: "Label", action: "created", subject: "bug", repo: "a/b", actor: "alice",
			want: "<b>Label</b>: bug <b>created</b> in <code>a/b</code> by <b>alice</b>",
		},
		{
			name:  "unknown actor suppressed",
			label: "Label", action: "created", actor: unknownActor,
			want: "<b>Label</b> <b>created</b>",
		},
		{
			name:  "subject escaped",
			label: "Label", subject: "<x>",
			want: "<b>Label</b>: &lt;x&gt;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMainLine(tt.label, tt.action, tt.subject, tt.repo, tt.actor)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}
