package images

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts r from src. The rectangle is clamped to the source bounds and guaranteed
// to be at least 1x1. It returns the cropped image (always *image.NRGBA) and the rectangle
// actually used, relative to src's bounds.
func Crop(src image.Image, r image.Rectangle) (*image.NRGBA, image.Rectangle, error) {
	if src == nil {
		return nil, image.Rectangle{}, errors.New("nil image")
	}
	b := src.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, image.Rectangle{}, ErrEmptyImage
	}
	r = r.Add(b.Min).Intersect(b)
	if r.Dx() < 1 || r.Dy() < 1 {
		x0 := min(max(r.Min.X, b.Min.X), b.Max.X-1)
		y0 := min(max(r.Min.Y, b.Min.Y), b.Max.Y-1)
		r = image.Rect(x0, y0, x0+1, y0+1)
	}
	return imaging.Crop(src, r), r.Sub(b.Min), nil
}
