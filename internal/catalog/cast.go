package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reAllDots  = regexp.MustCompile(`^\.{3,}$`)
	reFirstInt = regexp.MustCompile(`[-+]?\d+`)
	reNonFloat = regexp.MustCompile(`[^\d.\-+]`)
)

// sentinels are null-ish strings a person (or the OCR) writes into a field
// that should be treated as "no value", compared lowercased.
var sentinels = map[string]struct{}{
	"n/a": {}, "na": {}, "none": {}, "-": {}, "null": {},
}

var yesSet = map[string]struct{}{
	"yes": {}, "true": {}, "1": {}, "y": {}, "oui": {}, "x": {}, "✓": {}, "✔": {},
}

var noSet = map[string]struct{}{
	"no": {}, "false": {}, "0": {}, "n": {}, "non": {}, "": {},
}

// Cast converts a raw OCR value string to the field's type.
// It returns (value, true) on success; (nil, false) when the value is blank,
// a null sentinel, or cannot be converted. Categorical string fields are the
// exception: an unrecognized value still succeeds and returns the cleaned raw
// string so a reviewer can correct it later.
func (s *FieldSpec) Cast(raw string) (any, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil, false
	}
	lower := strings.ToLower(cleaned)
	if _, ok := sentinels[lower]; ok || reAllDots.MatchString(cleaned) {
		return nil, false
	}

	switch s.Type {
	case TypeInt:
		m := reFirstInt.FindString(strings.ReplaceAll(cleaned, ",", ""))
		if m == "" {
			return nil, false
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return nil, false
		}
		return n, true

	case TypeFloat:
		// Drop currency symbols, separators and everything else that is not
		// part of a number, then parse what remains.
		stripped := reNonFloat.ReplaceAllString(strings.ReplaceAll(cleaned, ",", ""), "")
		if stripped == "" {
			return nil, false
		}
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return nil, false
		}
		return f, true

	case TypeBool:
		if _, ok := yesSet[lower]; ok {
			return true, true
		}
		if _, ok := noSet[lower]; ok {
			return false, true
		}
		return nil, false

	case TypeString:
		if len(s.ValidValues) > 0 {
			if match, ok := matchValidValue(cleaned, s.ValidValues); ok {
				return match, true
			}
			// Keep raw so the reviewer can fix it.
			return cleaned, true
		}
		return cleaned, true
	}

	return nil, false
}

// valueMatchThreshold is the minimum normalized similarity for accepting a
// categorical value as one of the field's valid values.
const valueMatchThreshold = 0.6

// matchValidValue resolves a raw categorical value against the closed value
// set: exact case-insensitive match, then substring containment either
// direction, then scored similarity.
func matchValidValue(raw string, validValues []string) (string, bool) {
	rawLower := strings.ToLower(strings.TrimSpace(raw))

	for _, v := range validValues {
		if rawLower == strings.ToLower(v) {
			return v, true
		}
	}
	for _, v := range validValues {
		vLower := strings.ToLower(v)
		if strings.Contains(vLower, rawLower) || strings.Contains(rawLower, vLower) {
			return v, true
		}
	}

	bestScore := 0.0
	best := ""
	for _, v := range validValues {
		score := Similarity(rawLower, strings.ToLower(v))
		if score > bestScore {
			bestScore = score
			best = v
		}
	}
	if bestScore >= valueMatchThreshold {
		return best, true
	}
	return "", false
}
