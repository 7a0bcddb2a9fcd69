package imaging

import (
	"image"
	"log/slog"
	"math"
)

const (
	deskewRange = 5.0 // degrees searched either side of level
	deskewStep  = 0.5
	// Rotations below this are not applied: re-rendering a near-zero angle
	// only adds blur.
	deskewMinAngle = 0.3
)

// deskew estimates the skew of scanned text rows with a projection profile
// search: for each candidate angle the image is rotated and scored by the
// variance of its horizontal row sums. Well-aligned text rows produce sharply
// peaked projections, so the highest variance wins.
func deskew(gray *image.Gray, logger *slog.Logger) *image.Gray {
	bestAngle := 0.0
	bestScore := 0.0

	for a := -int(deskewRange / deskewStep); a <= int(deskewRange/deskewStep); a++ {
		angle := float64(a) * deskewStep
		rotated := rotateGray(gray, angle, false)
		score := projectionVariance(rotated)
		if score > bestScore {
			bestScore = score
			bestAngle = angle
		}
	}

	if math.Abs(bestAngle) > deskewMinAngle {
		logger.Debug("imaging.deskew", "angle", bestAngle)
		return rotateGray(gray, bestAngle, true)
	}
	return gray
}

// projectionVariance scores row alignment. The image is inverted when
// predominantly light so that text counts as signal, then each row is summed
// and the variance of the sums returned.
func projectionVariance(gray *image.Gray) float64 {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	var total uint64
	for _, p := range gray.Pix {
		total += uint64(p)
	}
	invert := float64(total)/float64(w*h) > 127

	sums := make([]float64, h)
	for y := 0; y < h; y++ {
		var row float64
		for x := 0; x < w; x++ {
			v := float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			if invert {
				v = 255 - v
			}
			row += v
		}
		sums[y] = row
	}

	var mean float64
	for _, s := range sums {
		mean += s
	}
	mean /= float64(h)

	var variance float64
	for _, s := range sums {
		d := s - mean
		variance += d * d
	}
	return variance / float64(h)
}

// rotateGray rotates around the image center with bilinear sampling, filling
// uncovered corners with white (paper background). When expand is set the
// output bounds grow to hold the whole rotated image.
func rotateGray(src *image.Gray, degrees float64, expand bool) *image.Gray {
	if degrees == 0 {
		return src
	}
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)

	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())

	dw, dh := sb.Dx(), sb.Dy()
	if expand {
		dw = int(math.Ceil(math.Abs(sw*cos) + math.Abs(sh*sin)))
		dh = int(math.Ceil(math.Abs(sw*sin) + math.Abs(sh*cos)))
	}

	dst := image.NewGray(image.Rect(0, 0, dw, dh))
	scx, scy := sw/2, sh/2
	dcx, dcy := float64(dw)/2, float64(dh)/2

	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			// Inverse map into source coordinates.
			dx := float64(x) + 0.5 - dcx
			dy := float64(y) + 0.5 - dcy
			sx := dx*cos - dy*sin + scx - 0.5
			sy := dx*sin + dy*cos + scy - 0.5
			dst.Pix[dst.PixOffset(x, y)] = sampleBilinear(src, sx, sy)
		}
	}
	return dst
}

func sampleBilinear(src *image.Gray, x, y float64) uint8 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	v00 := grayOrWhite(src, x0, y0)
	v10 := grayOrWhite(src, x0+1, y0)
	v01 := grayOrWhite(src, x0, y0+1)
	v11 := grayOrWhite(src, x0+1, y0+1)

	top := v00*(1-fx) + v10*fx
	bottom := v01*(1-fx) + v11*fx
	return uint8(math.Round(top*(1-fy) + bottom*fy))
}

func grayOrWhite(src *image.Gray, x, y int) float64 {
	b := src.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return 255
	}
	return float64(src.GrayAt(x, y).Y)
}
