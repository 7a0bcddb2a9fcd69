// Package fieldparse turns raw OCR text into typed form fields.
//
// It handles the paper form format:
//
//	Feature Name: value
//	Feature Name: ......   (blank / unfilled)
//
// splitting lines, re-splitting lines that carry several concatenated
// key/value pairs, fuzzy-matching keys against the field catalog, casting
// values and tracking per-field confidence, status and unmatched residue.
package fieldparse

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/dami-akins/formintake/constants"
	"github.com/dami-akins/formintake/internal/catalog"
)

const (
	// defaultLineConfidence is assumed when the extractor supplied no
	// per-line confidences at all.
	defaultLineConfidence = 0.8
	// padLineConfidence fills the gap when fewer confidences than lines
	// were supplied.
	padLineConfidence = 0.5

	// Confidence discounts by parse outcome.
	emptyDiscount     = 0.9
	extractedDiscount = 0.95
	failedDiscount    = 0.5
)

// FieldResult is the outcome of extracting a single field from one document.
type FieldResult struct {
	CanonicalName string
	RawKey        string // label as seen on the document, "" if missing
	RawValue      string // value before cleaning
	Value         any    // typed value, raw string on cast failure, nil otherwise
	Confidence    float64
	Status        constants.FieldStatus
}

// ParseResult is the complete parsing outcome for one document.
type ParseResult struct {
	Fields         map[string]FieldResult // canonical name -> result, dense
	UnmatchedLines []string
	TotalLines     int
	MatchedCount   int
	EmptyCount     int
}

// Parser maps OCR text onto a field catalog. Build once, use from any
// goroutine: it holds only read-only state.
type Parser struct {
	cat    *catalog.Catalog
	logger *slog.Logger
	// aliases sorted longest-first for boundary detection, ties keeping
	// catalog registration order.
	sortedAliases []string
}

func NewParser(cat *catalog.Catalog, logger *slog.Logger) *Parser {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	aliases := append([]string(nil), cat.Aliases()...)
	sort.SliceStable(aliases, func(i, j int) bool {
		return len(aliases[i]) > len(aliases[j])
	})
	return &Parser{cat: cat, logger: logger, sortedAliases: aliases}
}

// Catalog returns the catalog this parser resolves against.
func (p *Parser) Catalog() *catalog.Catalog { return p.cat }

// Parse converts OCR text plus per-line confidences into a dense ParseResult.
// Identical input always yields an identical result.
func (p *Parser) Parse(text string, lineConfidences []float64) *ParseResult {
	lines := splitLines(text)

	if lineConfidences == nil {
		lineConfidences = make([]float64, len(lines))
		for i := range lineConfidences {
			lineConfidences[i] = defaultLineConfidence
		}
	} else {
		lineConfidences = append([]float64(nil), lineConfidences...)
	}
	for len(lineConfidences) < len(lines) {
		lineConfidences = append(lineConfidences, padLineConfidence)
	}

	lines, lineConfidences = p.resplit(lines, lineConfidences)

	fields := make(map[string]FieldResult, p.cat.Size())
	for _, name := range p.cat.Names() {
		fields[name] = FieldResult{
			CanonicalName: name,
			Status:        constants.StatusMissing,
		}
	}

	var unmatched []string
	for i, line := range lines {
		conf := padLineConfidence
		if i < len(lineConfidences) {
			conf = lineConfidences[i]
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			unmatched = append(unmatched, line)
			continue
		}

		canonical, ok := p.matchFieldName(key)
		if !ok {
			unmatched = append(unmatched, line)
			continue
		}

		cleanValue := cleanValue(value)
		spec, _ := p.cat.Field(canonical)

		if cleanValue == "" {
			// Field exists on the document but the value is blank or dots.
			fields[canonical] = FieldResult{
				CanonicalName: canonical,
				RawKey:        key,
				RawValue:      value,
				Confidence:    conf * emptyDiscount,
				Status:        constants.StatusEmpty,
			}
			continue
		}

		parsed, castOK := spec.Cast(cleanValue)
		res := FieldResult{
			CanonicalName: canonical,
			RawKey:        key,
			RawValue:      value,
			Value:         parsed,
			Confidence:    conf * extractedDiscount,
			Status:        constants.StatusExtracted,
		}
		if !castOK {
			// Keep the raw value so a reviewer can fix it.
			res.Value = cleanValue
			res.Confidence = conf * failedDiscount
			res.Status = constants.StatusFailed
		}
		// Last write wins when several lines map to the same field.
		fields[canonical] = res
	}

	matched, empty := 0, 0
	for _, fr := range fields {
		switch fr.Status {
		case constants.StatusExtracted:
			matched++
		case constants.StatusEmpty:
			empty++
		}
	}

	return &ParseResult{
		Fields:         fields,
		UnmatchedLines: unmatched,
		TotalLines:     len(lines),
		MatchedCount:   matched,
		EmptyCount:     empty,
	}
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitKeyValue splits a line into key and value on the first colon, falling
// back to the first equals sign. Degenerate keys (shorter than 2 runes or
// purely numeric) are rejected.
func splitKeyValue(line string) (key, value string, ok bool) {
	stripped := strings.TrimSpace(line)
	if len(stripped) < 3 {
		return "", "", false
	}

	sep := ":"
	if !strings.Contains(stripped, ":") {
		if !strings.Contains(stripped, "=") {
			return "", "", false
		}
		sep = "="
	}
	parts := strings.SplitN(stripped, sep, 2)
	if len(parts) != 2 {
		return "", "", false
	}

	key = strings.TrimSpace(parts[0])
	value = strings.TrimSpace(parts[1])
	if len(key) < 2 || isDigits(key) {
		return "", "", false
	}
	return key, value, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
