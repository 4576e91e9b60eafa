package summary

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// htmlEscaper covers the four characters that matter for Telegram's HTML
// parse mode: &, <, >, and double quote.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// escapeHTML renders any JSON-decoded value as escaped display text. nil
// becomes the empty string.
func escapeHTML(v any) string {
	return htmlEscaper.Replace(stringify(v))
}

// stringify converts a JSON-decoded scalar to its display form. JSON numbers
// decode as float64; integral values must not render with a fraction.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// renderLink builds an anchor tag with both href and visible text escaped.
// A missing or non-string URL yields "". The label defaults to the URL.
func renderLink(url any, label string) string {
	u, ok := url.(string)
	if !ok || u == "" {
		return ""
	}
	if label == "" {
		label = u
	}
	return `<a href="` + escapeHTML(u) + `">` + escapeHTML(label) + `</a>`
}

// firstLine returns the first line of text capped at limit runes. Non-string
// input yields "". No ellipsis is added.
func firstLine(v any, limit int) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	if r := []rune(s); len(r) > limit {
		s = string(r[:limit])
	}
	return s
}

// prettyLabel turns an event name like "pull_request" into "Pull Request".
// Empty input yields "Event".
func prettyLabel(event string) string {
	words := strings.Fields(strings.ReplaceAll(event, "_", " "))
	if len(words) == 0 {
		return "Event"
	}
	for i, word := range words {
		r := []rune(strings.ToLower(word))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
