package report

import (
	"regexp"
	"strings"
)

var (
	boldItalicRe = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	underscoreRe = regexp.MustCompile(`_{1,2}([^_]+)_{1,2}`)
	headerRe     = regexp.MustCompile(`(?m)^#{1,6}\s*`)
)

// StripMarkdown removes the formatting the narrative model tends to
// emit (emphasis markers, header prefixes) so that plain-text surfaces
// can render it directly.
func StripMarkdown(text string) string {
	text = boldItalicRe.ReplaceAllString(text, "$1")
	text = underscoreRe.ReplaceAllString(text, "$1")
	text = headerRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
