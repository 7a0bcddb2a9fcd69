package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dami-akins/formintake/internal/catalog"
)

func TestRecordSchema_Shape(t *testing.T) {
	schema := RecordSchema(catalog.Default())

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, catalog.Default().Size())

	adult, ok := props["Adult_Dependents"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"integer", "null"}, adult["type"])

	status, ok := props["Employment_Status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"string", "null"}, status["type"])
	assert.Contains(t, status["enum"], "Self-Employed")
	assert.Contains(t, status["enum"], nil)
}

func TestValidateRecord(t *testing.T) {
	v, err := NewRecordValidator(catalog.Default())
	require.NoError(t, err)

	tests := []struct {
		name   string
		record map[string]any
		ok     bool
	}{
		{
			name: "typed sparse record",
			record: map[string]any{
				"Adult_Dependents":        2,
				"Estimated_Annual_Income": 65000.0,
				"Existing_Policyholder":   true,
				"Employment_Status":       "Employed",
			},
			ok: true,
		},
		{
			name:   "empty record",
			record: map[string]any{},
			ok:     true,
		},
		{
			name: "nulls allowed everywhere",
			record: map[string]any{
				"Adult_Dependents":  nil,
				"Employment_Status": nil,
			},
			ok: true,
		},
		{
			name:   "wrong type flags the record",
			record: map[string]any{"Adult_Dependents": "two"},
			ok:     false,
		},
		{
			name:   "off-vocabulary categorical flags the record",
			record: map[string]any{"Employment_Status": "astronaut"},
			ok:     false,
		},
		{
			name:   "unknown attribute flags the record",
			record: map[string]any{"Shoe_Size": 42},
			ok:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRecord(tt.record)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateRecord_AcceptsPipelineOutput(t *testing.T) {
	v, err := NewRecordValidator(catalog.Default())
	require.NoError(t, err)

	res := docResult("a.png", map[string]override{
		"Adult_Dependents":  {value: 2, conf: 0.8, status: "extracted"},
		"Policy_Start_Year": {value: 2025, conf: 0.8, status: "extracted"},
	})
	assert.NoError(t, v.ValidateRecord(res.FlatRecord(false)))
	assert.NoError(t, v.ValidateRecord(res.FlatRecord(true)))
}
