package common

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dami-akins/formintake/constants"
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// Validator provides validation utilities
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// Field validates a field and collects errors
func (v *Validator) Field(fieldName string, value interface{}, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(fieldName, value); err != nil {
			v.errors = append(v.errors, *err)
		}
	}
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// Error returns a combined error message
func (v *Validator) Error() error {
	if !v.HasErrors() {
		return nil
	}

	var messages []string
	for _, err := range v.errors {
		messages = append(messages, err.Error())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, "; "))
}

// ValidationRule represents a single validation rule
type ValidationRule func(fieldName string, value interface{}) *ValidationError

// Required - Common validation rules
func Required(fieldName string, value interface{}) *ValidationError {
	if value == nil {
		return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	case []byte:
		if len(v) == 0 {
			return &ValidationError{Field: fieldName, Value: "<bytes>", Message: "is required"}
		}
	}
	return nil
}

// AllowedExtension checks a filename against the intake extension allowlist.
func AllowedExtension(fieldName string, value interface{}) *ValidationError {
	name, ok := value.(string)
	if !ok {
		return &ValidationError{Field: fieldName, Value: value, Message: "must be a string"}
	}

	ext := constants.NormalizeExt(filepath.Ext(name))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return &ValidationError{
			Field:   fieldName,
			Value:   name,
			Message: fmt.Sprintf("unsupported file type %q (allowed: pdf, jpg, jpeg, png, webp)", ext),
		}
	}
	return nil
}

// MaxBytes bounds an upload's size.
func MaxBytes(max int) ValidationRule {
	return func(fieldName string, value interface{}) *ValidationError {
		data, ok := value.([]byte)
		if !ok {
			return &ValidationError{Field: fieldName, Value: value, Message: "must be bytes"}
		}
		if len(data) > max {
			return &ValidationError{
				Field:   fieldName,
				Value:   fmt.Sprintf("%d bytes", len(data)),
				Message: fmt.Sprintf("exceeds limit of %d bytes", max),
			}
		}
		return nil
	}
}

// ValidateUpload applies the boundary rules for one file: allowed extension,
// non-empty content, size cap. The pipeline behind this boundary assumes
// these hold and never re-checks them.
func ValidateUpload(filename string, data []byte) error {
	v := NewValidator()
	v.Field("filename", filename, Required, AllowedExtension)
	v.Field("data", data, Required, MaxBytes(constants.MaxFileBytes))
	return v.Error()
}

// ValidateUploadCount enforces the per-request file cap.
func ValidateUploadCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: at least one file is required", ErrInvalidInput)
	}
	if n > constants.MaxFiles {
		return fmt.Errorf("%w: at most %d files per request, got %d", ErrInvalidInput, constants.MaxFiles, n)
	}
	return nil
}
