package fieldparse

import (
	"regexp"
	"strings"
)

// OCR noise stripped from values before casting: fill lines made of dots,
// underscores or dashes, table pipes and checkbox glyphs.
var reValueNoise = regexp.MustCompile(`\.{3,}|_{3,}|-{3,}|\||□|■|☐|☑`)

func cleanValue(raw string) string {
	cleaned := reValueNoise.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)
	return strings.Trim(cleaned, ".,;:|-_ ")
}
