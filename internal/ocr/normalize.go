package ocr

import (
	"regexp"
	"strings"
)

var (
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
)

// normalizeLine collapses noisy intra-line whitespace. Conservative on
// purpose: it never adds or removes lines, so per-line confidences keep their
// alignment.
func normalizeLine(s string) string {
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
