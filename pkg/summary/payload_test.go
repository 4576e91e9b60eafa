package summary

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestAsMapping(t *testing.T) {
	obj := map[string]any{"a": float64(1)}
	gt.Value(t, asMapping(obj)).Equal(obj)
	gt.Value(t, len(asMapping([]any{"a"}))).Equal(0)
	gt.Value(t, len(asMapping("scalar"))).Equal(0)
	gt.Value(t, len(asMapping(nil))).Equal(0)
}

func TestDig(t *testing.T) {
	payload := map[string]any{
		"repository": map[string]any{
			"owner": map[string]any{"login": "alice"},
			"name":  "demo",
		},
		"count": float64(3),
	}

	tests := []struct {
		name string
		path []string
		want any
	}{
		{name: "nested hit", path: []string{"repository", "owner", "login"}, want: "alice"},
		{name: "single hit", path: []string{"count"}, want: float64(3)},
		{name: "missing key", path: []string{"repository", "missing"}, want: nil},
		{name: "through scalar", path: []string{"count", "deeper"}, want: nil},
		{name: "missing root", path: []string{"nope", "deeper"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, dig(payload, tt.path...)).Equal(tt.want)
		})
	}
}

func TestExtractActor(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{
			name:    "sender login wins",
			payload: map[string]any{"sender": map[string]any{"login": "alice"}, "pusher": map[string]any{"name": "bob"}},
			want:    "alice",
		},
		{
			name:    "pusher name fallback",
			payload: map[string]any{"pusher": map[string]any{"name": "bob"}},
			want:    "bob",
		},
		{
			name:    "installation account",
			payload: map[string]any{"installation": map[string]any{"account": map[string]any{"login": "org"}}},
			want:    "org",
		},
		{
			name:    "non-string login skipped",
			payload: map[string]any{"sender": map[string]any{"login": float64(1)}, "user": map[string]any{"login": "carol"}},
			want:    "carol",
		},
		{name: "nothing resolvable", payload: map[string]any{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, extractActor(tt.payload)).Equal(tt.want)
		})
	}
}

func TestExtractRepo(t *testing.T) {
	gt.Value(t, extractRepo(map[string]any{
		"repository": map[string]any{"full_name": "a/b", "name": "b"},
	})).Equal("a/b")
	gt.Value(t, extractRepo(map[string]any{
		"repository": map[string]any{"name": "b"},
	})).Equal("b")
	gt.Value(t, extractRepo(map[string]any{})).Equal("")
}

func TestExtractSubject(t *testing.T) {
	t.Run("field priority", func(t *testing.T) {
		name, url := extractSubject(map[string]any{
			"name":     "by-name",
			"title":    "by-title",
			"html_url": "https://example.com/x",
		}, nil)
		gt.Value(t, name).Equal("by-title")
		gt.Value(t, url).Equal("https://example.com/x")
	})

	t.Run("number gets hash prefix", func(t *testing.T) {
		name, _ := extractSubject(map[string]any{"number": float64(12)}, nil)
		gt.Value(t, name).Equal("#12")
	})

	t.Run("long names truncated with ellipsis", func(t *testing.T) {
		name, _ := extractSubject(map[string]any{"title": strings.Repeat("x", 200)}, nil)
		gt.Value(t, len(name)).Equal(160)
		gt.Value(t, strings.HasSuffix(name, "...")).Equal(true)
	})

	t.Run("scalar subject stringified", func(t *testing.T) {
		name, url := extractSubject("plain", nil)
		gt.Value(t, name).Equal("plain")
		gt.Value(t, url).Equal("")
	})

	t.Run("nested object values skipped", func(t *testing.T) {
		name, _ := extractSubject(map[string]any{
			"title": map[string]any{"nested": true},
			"name":  "fallback",
		}, nil)
		gt.Value(t, name).Equal("fallback")
	})

	t.Run("nested link fields", func(t *testing.T) {
		_, url := extractSubject(map[string]any{
			"name":  "x",
			"links": map[string]any{"html": "https://example.com/h"},
		}, nil)
		gt.Value(t, url).Equal("https://example.com/h")
	})
}

func TestResolveSubject(t *testing.T) {
	payload := map[string]any{
		"empty":   map[string]any{},
		"blank":   "",
		"project": map[string]any{"name": "demo"},
	}
	got := resolveSubject(payload, [][]string{{"empty"}, {"blank"}, {"project"}})
	gt.Value(t, asMapping(got)["name"]).Equal("demo")

	gt.Value(t, resolveSubject(payload, [][]string{{"missing"}})).Equal(nil)
	gt.Value(t, resolveSubject(payload, nil)).Equal(nil)
}
