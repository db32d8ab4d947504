package verification

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeText returns the canonical form of a string used for all text
// comparisons: lower-cased, whitespace runs collapsed to single spaces,
// leading/trailing whitespace removed.
func NormalizeText(text string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

// collapseWhitespace collapses whitespace runs without changing case,
// so capitalization checks can run across OCR line breaks.
func collapseWhitespace(text string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
}
