package extract

import (
	"math"

	"github.com/google/uuid"

	"github.com/dami-akins/formintake/constants"
)

// Stats aggregates parse outcomes for one document, or for a merged batch.
type Stats struct {
	TotalLines    int `json:"total_lines"`
	MatchedFields int `json:"matched_fields"`
	EmptyFields   int `json:"empty_fields"`
	MissingFields int `json:"missing_fields"`
	FailedFields  int `json:"failed_fields"`
	TotalFiles    int `json:"total_files,omitempty"`
}

// DocumentResult is the complete extraction outcome for one document (or one
// merged multi-document batch). The three field maps are dense: every
// canonical catalog field has an entry.
type DocumentResult struct {
	ID               uuid.UUID                        `json:"id"`
	Filename         string                           `json:"filename"`
	ExtractedText    string                           `json:"extracted_text"`
	OCREngine        string                           `json:"ocr_engine"`
	Fields           map[string]any                   `json:"fields"`
	FieldConfidences map[string]float64               `json:"field_confidences"`
	FieldStatuses    map[string]constants.FieldStatus `json:"field_statuses"`
	Confidence       float64                          `json:"confidence"`
	Stats            Stats                            `json:"stats"`
	UnmatchedLines   []string                         `json:"unmatched_lines"`
}

// FlatRecord returns the attribute map handed to the prediction collaborator.
// With includeNulls false, fields that were never extracted are left out.
func (r *DocumentResult) FlatRecord(includeNulls bool) map[string]any {
	out := make(map[string]any, len(r.Fields))
	for name, val := range r.Fields {
		if val == nil && !includeNulls {
			continue
		}
		out[name] = val
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
