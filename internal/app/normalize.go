package app

import (
	"regexp"
	"sort"
	"strings"
)

var (
	lineBreakMarkup = regexp.MustCompile(`(?i)<br\s*/?>`)
	nonWord         = regexp.MustCompile(`[^\w\s]`)
)

// NormalizeAnswer canonicalizes free-text answers so that wording order,
// punctuation and markup differences do not affect equality: lowercase,
// <br>-style markup to spaces, strip non-word characters, then sort the
// remaining tokens. Two answers are equivalent iff their normalized forms
// match. Whitespace- or punctuation-only input yields the empty string.
func NormalizeAnswer(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = lineBreakMarkup.ReplaceAllString(s, " ")
	s = nonWord.ReplaceAllString(s, "")
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
