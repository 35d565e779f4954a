package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Markdown descriptions are rendered by the public site, which allows
// inline HTML. Only user-generated-content markup is kept.
var markdownPolicy = bluemonday.UGCPolicy()

// SanitizeMarkdown strips script, style and event-handler markup from a
// markdown field. Text without markup is returned as is.
func SanitizeMarkdown(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	return markdownPolicy.Sanitize(s)
}
