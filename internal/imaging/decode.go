package imaging

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"

	"github.com/dami-akins/formintake/internal/common"
)

// decode turns raw upload bytes into a bitmap, applying the EXIF orientation
// tag (phone photos are usually stored rotated) before the metadata is
// dropped.
func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, common.WrapError(common.ErrDecode, err.Error())
	}
	return applyOrientation(data, img), nil
}

// applyOrientation rotates img according to the EXIF orientation tag, if one
// is present. Mirrored orientations (2,4,5,7) are rare on camera output and
// left untouched, matching upstream behavior.
func applyOrientation(data []byte, img image.Image) image.Image {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return img // no EXIF, or not a JPEG
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return img
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return img
	}

	// transform.Rotate turns clockwise: orientation 6 needs 90 CW to come
	// upright, orientation 8 the opposite.
	opts := &transform.RotationOptions{ResizeBounds: true}
	switch orientation {
	case 3:
		return transform.Rotate(img, 180, opts)
	case 6:
		return transform.Rotate(img, 90, opts)
	case 8:
		return transform.Rotate(img, 270, opts)
	}
	return img
}

// toGray converts any image to 8-bit grayscale.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
		}
	}
	return gray
}
