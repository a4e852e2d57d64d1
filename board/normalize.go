// Package board turns the scraped arrival-board page into Prediction records.
// The upstream markup is undocumented and shifts between deployments, so
// extraction is a cascade of patterns over tag-stripped text rather than a
// structural parse; any input that matches nothing yields an empty result.
package board

import (
	"regexp"
	"strings"
)

var (
	blankLines = regexp.MustCompile(`\n{2,}`)
	tagSpan    = regexp.MustCompile(`<[^>]*>`)
	spaceRun   = regexp.MustCompile(`[ \t]+`)
)

// Normalize strips markup from a raw page: line endings become LF, the
// non-breaking-space entity becomes a plain space, runs of blank lines
// collapse, and every tag-like span from an open angle bracket through the
// next close bracket is replaced by a single space. Tag structure is
// destroyed but inter-field spacing survives for line-oriented matching.
func Normalize(markup string) string {
	s := strings.ReplaceAll(markup, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = blankLines.ReplaceAllString(s, "\n")
	s = tagSpan.ReplaceAllString(s, " ")
	return s
}

// collapseSpaces trims a headsign and squeezes interior whitespace runs.
func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
