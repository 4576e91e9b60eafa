package summary

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil becomes empty", input: nil, want: ""},
		{name: "plain string", input: "hello", want: "hello"},
		{name: "metacharacters", input: `<a href="x">&`, want: "&lt;a href=&quot;x&quot;&gt;&amp;"},
		{name: "ampersand not double escaped", input: "&lt;", want: "&amp;lt;"},
		{name: "integer number", input: float64(42), want: "42"},
		{name: "fractional number", input: 1.5, want: "1.5"},
		{name: "bool", input: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeHTML(tt.input); got != tt.want {
				t.Errorf("escapeHTML(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderLink(t *testing.T) {
	tests := []struct {
		name  string
		url   any
		label string
		want  string
	}{
		{
			name:  "label defaults to URL",
			url:   "https://example.com",
			label: "",
			want:  `<a href="https://example.com">https://example.com</a>`,
		},
		{
			name:  "explicit label",
			url:   "https://example.com",
			label: "View",
			want:  `<a href="https://example.com">View</a>`,
		},
		{
			name:  "URL with metacharacters",
			url:   `https://example.com/?a=1&b="2"`,
			label: "View",
			want:  `<a href="https://example.com/?a=1&amp;b=&quot;2&quot;">View</a>`,
		},
		{name: "empty URL", url: "", label: "View", want: ""},
		{name: "nil URL", url: nil, label: "View", want: ""},
		{name: "non-string URL", url: float64(5), label: "View", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderLink(tt.url, tt.label); got != tt.want {
				t.Errorf("renderLink(%v, %q) = %q, want %q", tt.url, tt.label, got, tt.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name  string
		input any
		limit int
		want  string
	}{
		{name: "single line", input: "hello", limit: 120, want: "hello"},
		{name: "LF", input: "first\nsecond", limit: 120, want: "first"},
		{name: "CRLF", input: "first\r\nsecond", limit: 120, want: "first"},
		{name: "truncated without ellipsis", input: "abcdefgh", limit: 4, want: "abcd"},
		{name: "non-string", input: float64(12), limit: 120, want: ""},
		{name: "nil", input: nil, limit: 120, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstLine(tt.input, tt.limit); got != tt.want {
				t.Errorf("firstLine(%v, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}

func TestPrettyLabel(t *testing.T) {
	tests := []struct {
		event string
		want  string
	}{
		{event: "pull_request", want: "Pull Request"},
		{event: "push", want: "Push"},
		{event: "totally_unknown_event", want: "Totally Unknown Event"},
		{event: "SHOUTING_EVENT", want: "Shouting Event"},
		{event: "  spaced  ", want: "Spaced"},
		{event: "", want: "Event"},
		{event: "___", want: "Event"},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			if got := prettyLabel(tt.event); got != tt.want {
				t.Errorf("prettyLabel(%q) = %q, want %q", tt.event, got, tt.want)
			}
		})
	}
}
