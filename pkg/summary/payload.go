package summary

import (
	"maps"
	"slices"
	"strings"
)

// The label substituted when no actor field resolves.
const unknownActor = "unknown"

const subjectNameLimit = 160

// asMapping returns v when it is a JSON object, and an empty map otherwise.
// GitHub occasionally delivers arrays or scalars where objects are expected.
func asMapping(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// dig walks nested object keys in order, returning nil as soon as a key is
// missing or a non-object shows up. It never panics.
func dig(v any, path ...string) any {
	current := v
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
		if current == nil {
			return nil
		}
	}
	return current
}

// digString is dig restricted to non-empty strings.
func digString(v any, path ...string) string {
	s, _ := dig(v, path...).(string)
	return s
}

// asList returns v when it is a JSON array, and nil otherwise.
func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

// truthy mirrors the presence check used throughout subject resolution:
// nil, "", false, 0, and empty collections all count as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

// sortedKeys gives deterministic iteration over a JSON object.
func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

// firstNonEmpty returns the first non-empty string among values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var actorPaths = [][]string{
	{"sender", "login"},
	{"sender", "name"},
	{"user", "login"},
	{"user", "name"},
	{"actor", "login"},
	{"actor", "name"},
	{"pusher", "name"},
	{"pusher", "email"},
	{"installation", "account", "login"},
	{"installation", "account", "name"},
}

// extractActor finds the user behind an event. Payloads name the actor under
// different keys depending on the event family, so the lookup order is fixed
// and the first non-empty hit wins.
func extractActor(payload map[string]any) string {
	for _, path := range actorPaths {
		if s := digString(payload, path...); s != "" {
			return s
		}
	}
	return ""
}

var repoPaths = [][]string{
	{"repository", "full_name"},
	{"repository", "name"},
}

func extractRepo(payload map[string]any) string {
	for _, path := range repoPaths {
		if s := digString(payload, path...); s != "" {
			return s
		}
	}
	return ""
}

// subjectNameFields is the default candidate order for naming an event
// subject: the most descriptive fields first, identifiers last.
var subjectNameFields = [][]string{
	{"title"}, {"name"}, {"login"}, {"slug"}, {"ref"}, {"branch"}, {"tag"},
	{"tag_name"}, {"environment"}, {"key"}, {"pattern"}, {"sha"}, {"node_id"},
	{"id"}, {"number"},
}

var subjectURLFields = [][]string{
	{"html_url"}, {"url"}, {"target_url"}, {"links", "html"}, {"links", "self"},
}

// extractSubject picks a display name and URL out of an event sub-object.
// The first candidate field resolving to a non-empty scalar wins; a matched
// "number" field gets a # prefix. Scalar subjects are stringified directly.
func extractSubject(data any, fields [][]string) (name, url string) {
	m, ok := data.(map[string]any)
	if !ok {
		if data == nil || data == "" {
			return "", ""
		}
		return truncateSubject(stringify(data)), ""
	}
	if len(fields) == 0 {
		fields = subjectNameFields
	}
	for _, candidate := range fields {
		value := dig(m, candidate...)
		if value == nil {
			continue
		}
		switch value.(type) {
		case map[string]any, []any:
			continue
		}
		text := strings.TrimSpace(stringify(value))
		if text == "" {
			continue
		}
		if candidate[len(candidate)-1] == "number" && !strings.HasPrefix(text, "#") {
			text = "#" + text
		}
		name = truncateSubject(text)
		break
	}
	for _, candidate := range subjectURLFields {
		if s := digString(m, candidate...); s != "" {
			url = s
			break
		}
	}
	return name, url
}

func truncateSubject(text string) string {
	if r := []rune(text); len(r) > subjectNameLimit {
		return string(r[:subjectNameLimit-3]) + "..."
	}
	return text
}

// resolveSubject returns the first payload sub-tree among paths holding a
// usable value.
func resolveSubject(payload map[string]any, paths [][]string) any {
	for _, path := range paths {
		if v := dig(payload, path...); truthy(v) {
			return v
		}
	}
	return nil
}
