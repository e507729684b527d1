// Package textnorm holds the text-cleaning step shared between serving and
// the training side. The classification artifact was fitted on text cleaned
// with exactly these rules, so any drift here silently degrades prediction
// quality rather than failing loudly. Keep this the only implementation.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	reURL        = regexp.MustCompile(`http\S+`)
	reNonLetter  = regexp.MustCompile(`[^a-zA-Z ]`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Clean normalizes raw text: URL-like tokens are removed, anything outside
// the Latin alphabet and space becomes a space, the result is lowercased and
// whitespace runs collapse to a single space with the ends trimmed.
// Pure and idempotent.
func Clean(text string) string {
	text = reURL.ReplaceAllString(text, "")
	text = reNonLetter.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
