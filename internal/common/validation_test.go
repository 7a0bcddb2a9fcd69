package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dami-akins/formintake/constants"
)

func TestValidateUpload(t *testing.T) {
	data := []byte("fake image bytes")

	assert.NoError(t, ValidateUpload("form.png", data))
	assert.NoError(t, ValidateUpload("FORM.JPG", data))
	assert.NoError(t, ValidateUpload("doc.pdf", data))

	err := ValidateUpload("form.tiff", data)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "unsupported file type")

	assert.ErrorIs(t, ValidateUpload("form.png", nil), ErrInvalidInput)

	huge := bytes.Repeat([]byte{0xff}, constants.MaxFileBytes+1)
	err = ValidateUpload("form.png", huge)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestValidateUploadCount(t *testing.T) {
	assert.Error(t, ValidateUploadCount(0))
	assert.NoError(t, ValidateUploadCount(1))
	assert.NoError(t, ValidateUploadCount(constants.MaxFiles))
	assert.Error(t, ValidateUploadCount(constants.MaxFiles+1))
}
