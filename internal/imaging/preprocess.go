// Package imaging cleans up photos and scans of paper forms for OCR.
//
// Pipeline: decode -> grayscale -> resize -> contrast -> denoise -> binarize
// -> deskew. Output is a straightened, high-contrast grayscale image.
package imaging

import (
	"image"
	"log/slog"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
)

const (
	// Width band suitable for OCR: upscale phone thumbnails, cap huge scans
	// to avoid pathological memory use.
	minWidth = 1200
	maxWidth = 4000

	contrastBoost  = 0.8 // bild change factor, ~1.8x perceived contrast
	denoiseKernel  = 3   // median filter size, must be odd
	binarizeBlock  = 51  // local-mean window, must be odd
	binarizeOffset = 10
)

// Options toggles individual cleanup stages. The zero value disables the
// optional stages; DefaultOptions enables them all.
type Options struct {
	EnhanceContrast bool
	Binarize        bool
	Deskew          bool
}

func DefaultOptions() Options {
	return Options{EnhanceContrast: true, Binarize: true, Deskew: true}
}

// Preprocess runs the full cleanup pipeline over raw image bytes.
// Deterministic for identical input and options. A decode failure is the only
// error; every later stage is total.
func Preprocess(data []byte, opts Options, logger *slog.Logger) (*image.Gray, error) {
	if logger == nil {
		logger = slog.Default()
	}

	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	gray := toGray(img)
	gray = resizeForOCR(gray, logger)

	if opts.EnhanceContrast {
		gray = toGray(effect.Sharpen(adjust.Contrast(gray, contrastBoost)))
	}

	gray = toGray(effect.Median(gray, denoiseKernel))

	if opts.Binarize {
		gray = binarize(gray)
	}
	if opts.Deskew {
		gray = deskew(gray, logger)
	}

	logger.Debug("imaging.preprocess.done",
		"width", gray.Bounds().Dx(), "height", gray.Bounds().Dy())
	return gray, nil
}

// resizeForOCR rescales the width into [minWidth, maxWidth], preserving
// aspect ratio.
func resizeForOCR(gray *image.Gray, logger *slog.Logger) *image.Gray {
	w := gray.Bounds().Dx()
	h := gray.Bounds().Dy()
	if w == 0 || h == 0 {
		return gray
	}

	target := 0
	switch {
	case w < minWidth:
		target = minWidth
	case w > maxWidth:
		target = maxWidth
	default:
		return gray
	}

	scale := float64(target) / float64(w)
	newH := int(float64(h) * scale)
	if newH < 1 {
		newH = 1
	}
	logger.Debug("imaging.resize", "from_width", w, "to_width", target)
	return toGray(transform.Resize(gray, target, newH, transform.Lanczos))
}

// binarize applies an adaptive threshold: a pixel is foreground (white) when
// brighter than its local mean minus a fixed offset. The local mean is a box
// blur with a window of roughly half the block size, which approximates true
// adaptive thresholding without a full vision stack.
func binarize(gray *image.Gray) *image.Gray {
	local := toGray(blur.Box(gray, float64(binarizeBlock/2)))

	b := gray.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := gray.GrayAt(x, y).Y
			mean := local.GrayAt(x, y).Y
			if int(v) > int(mean)-binarizeOffset {
				out.Pix[out.PixOffset(x, y)] = 255
			}
		}
	}
	return out
}
