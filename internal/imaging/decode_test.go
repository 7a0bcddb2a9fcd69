package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exifSegment builds a minimal JPEG APP1 segment: a little-endian TIFF header
// and a single-entry IFD carrying the Orientation tag.
func exifSegment(orientation byte) []byte {
	tiffData := []byte{
		'I', 'I', 0x2A, 0x00, // little-endian TIFF magic
		0x08, 0x00, 0x00, 0x00, // IFD0 offset
		0x01, 0x00, // one entry
		0x12, 0x01, // tag 0x0112 Orientation
		0x03, 0x00, // type SHORT
		0x01, 0x00, 0x00, 0x00, // count
		orientation, 0x00, 0x00, 0x00, // value
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	payload := append([]byte("Exif\x00\x00"), tiffData...)
	seg := []byte{0xFF, 0xE1, byte((len(payload) + 2) >> 8), byte(len(payload) + 2)}
	return append(seg, payload...)
}

// jpegWithOrientation encodes img as JPEG and splices the EXIF segment in
// right after the SOI marker.
func jpegWithOrientation(t *testing.T, img image.Image, orientation byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))
	jpg := buf.Bytes()

	app1 := exifSegment(orientation)
	out := make([]byte, 0, len(jpg)+len(app1))
	out = append(out, jpg[:2]...)
	out = append(out, app1...)
	return append(out, jpg[2:]...)
}

func TestDecode_AppliesEXIFOrientation(t *testing.T) {
	// Stored landscape frame with the left half dark; after correction the
	// dark half must sit where the tag says the top of the scene is.
	stored := image.NewGray(image.Rect(0, 0, 32, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			if x < 16 {
				stored.Pix[stored.PixOffset(x, y)] = 0
			} else {
				stored.Pix[stored.PixOffset(x, y)] = 255
			}
		}
	}

	tests := []struct {
		name            string
		orientation     byte
		w, h            int
		darkAt, lightAt image.Point
	}{
		{
			name:        "orientation 3 rotates 180",
			orientation: 3,
			w:           32, h: 16,
			darkAt:  image.Pt(24, 8),
			lightAt: image.Pt(8, 8),
		},
		{
			name:        "orientation 6 rotates 90 clockwise",
			orientation: 6,
			w:           16, h: 32,
			darkAt:  image.Pt(8, 8),
			lightAt: image.Pt(8, 24),
		},
		{
			name:        "orientation 8 rotates 90 counter-clockwise",
			orientation: 8,
			w:           16, h: 32,
			darkAt:  image.Pt(8, 24),
			lightAt: image.Pt(8, 8),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := decode(jpegWithOrientation(t, stored, tt.orientation))
			require.NoError(t, err)

			b := img.Bounds()
			assert.Equal(t, tt.w, b.Dx())
			assert.Equal(t, tt.h, b.Dy())

			gray := toGray(img)
			assert.Less(t, int(gray.GrayAt(tt.darkAt.X, tt.darkAt.Y).Y), 128,
				"dark half must land at %v", tt.darkAt)
			assert.Greater(t, int(gray.GrayAt(tt.lightAt.X, tt.lightAt.Y).Y), 128,
				"light half must land at %v", tt.lightAt)
		})
	}
}

func TestDecode_NoEXIFLeavesImageAlone(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 32, 16))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	img, err := decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}
