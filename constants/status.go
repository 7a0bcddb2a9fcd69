package constants

// FieldStatus is the canonical per-field extraction outcome.
type FieldStatus string

// Stable values (serialized as-is in responses and exports).
const (
	StatusExtracted FieldStatus = "extracted" // typed value obtained
	StatusEmpty     FieldStatus = "empty"     // field present, value blank
	StatusFailed    FieldStatus = "failed"    // value present but untypeable
	StatusMissing   FieldStatus = "missing"   // field never appeared in the text
)

// OCR engine identifiers reported in results.
const (
	EngineTesseract = "tesseract"
	EngineGosseract = "gosseract"
	EngineAuto      = "auto"
	EngineNone      = "none"
)
