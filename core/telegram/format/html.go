package format

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes user-derived text for Telegram HTML parse mode.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// Bold wraps text in bold tags for HTML parse mode. The caller is
// responsible for escaping user-derived input first.
func Bold(text string) string {
	return "<b>" + text + "</b>"
}
