package imaging

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dami-akins/formintake/internal/common"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// linedImage draws black horizontal text-like bars on white paper.
func linedImage(w, h, spacing int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for y := spacing; y+1 < h; y += spacing {
		for x := 10; x < w-10; x++ {
			img.Pix[img.PixOffset(x, y)] = 0
			img.Pix[img.PixOffset(x, y+1)] = 0
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreprocess_DecodeFailure(t *testing.T) {
	_, err := Preprocess([]byte("this is not an image"), DefaultOptions(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDecode)
}

func TestPreprocess_UpscalesSmallImages(t *testing.T) {
	data := pngBytes(t, linedImage(100, 50, 10))

	out, err := Preprocess(data, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, minWidth, out.Bounds().Dx())
	assert.Equal(t, 600, out.Bounds().Dy()) // aspect ratio preserved
}

func TestPreprocess_CapsHugeImages(t *testing.T) {
	data := pngBytes(t, linedImage(5000, 50, 10))

	out, err := Preprocess(data, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, maxWidth, out.Bounds().Dx())
}

func TestPreprocess_InBandWidthUnchanged(t *testing.T) {
	data := pngBytes(t, linedImage(2000, 100, 20))

	out, err := Preprocess(data, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2000, out.Bounds().Dx())
}

func TestBinarize_TwoLevelOutput(t *testing.T) {
	out := binarize(linedImage(300, 200, 20))

	for _, p := range out.Pix {
		assert.True(t, p == 0 || p == 255, "pixel value %d", p)
	}
	// The bar rows must survive thresholding as foreground.
	assert.Equal(t, uint8(0), out.GrayAt(150, 20).Y)
	assert.Equal(t, uint8(255), out.GrayAt(150, 10).Y)
}

func TestDeskew_LevelImageIsNotRotated(t *testing.T) {
	img := linedImage(300, 200, 20)
	out := deskew(img, testLogger())
	assert.Same(t, img, out)
}

func TestDeskew_ImprovesSkewedRows(t *testing.T) {
	level := linedImage(300, 200, 20)
	skewed := rotateGray(level, 2.0, true)

	out := deskew(skewed, testLogger())

	require.NotSame(t, skewed, out)
	assert.Greater(t, projectionVariance(out), projectionVariance(skewed))
}

func TestRotateGray_ExpandFillsCornersWhite(t *testing.T) {
	img := linedImage(200, 100, 20)
	out := rotateGray(img, 10, true)

	assert.Greater(t, out.Bounds().Dx(), 200)
	assert.Greater(t, out.Bounds().Dy(), 100)
	// Uncovered corners are paper white, not black.
	assert.Equal(t, uint8(255), out.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), out.GrayAt(out.Bounds().Dx()-1, out.Bounds().Dy()-1).Y)
}

func TestRotateGray_ZeroAngleReturnsSource(t *testing.T) {
	img := linedImage(50, 50, 10)
	assert.Same(t, img, rotateGray(img, 0, true))
}
