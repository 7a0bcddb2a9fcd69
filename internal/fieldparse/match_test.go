package fieldparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchFieldName_Ladder(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		// Exact alias, case-insensitive.
		{"Adult Dependents", "Adult_Dependents", true},
		{"nombre enfants", "Child_Dependents", true},
		// Punctuation is stripped before lookup.
		{"Adult Dependents!!", "Adult_Dependents", true},
		// Space form resolves through the underscore variant.
		{"policy start year", "Policy_Start_Year", true},
		// A known alias contained inside a longer OCR key.
		{"total adult dependents on form", "Adult_Dependents", true},
		// Token-sort similarity absorbs a small OCR error.
		{"adlut dependents", "Adult_Dependents", true},
		// Word overlap as the last resort.
		{"acquisition paperwork", "Acquisition_Channel", true},
		// Nothing plausible.
		{"zq", "", false},
		{"completely unrelated gibberish", "", false},
	}
	for _, tt := range tests {
		got, ok := p.matchFieldName(tt.key)
		assert.Equal(t, tt.ok, ok, "key %q", tt.key)
		assert.Equal(t, tt.want, got, "key %q", tt.key)
	}
}

func TestMatchFieldName_Deterministic(t *testing.T) {
	p := newTestParser(t)

	first, ok1 := p.matchFieldName("policy duration")
	for i := 0; i < 20; i++ {
		got, ok := p.matchFieldName("policy duration")
		assert.Equal(t, ok1, ok)
		assert.Equal(t, first, got)
	}
}
