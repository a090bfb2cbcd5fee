// Package capture grabs the screen as an alternative image source for the cropper.
package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	"github.com/soocke/crop-widget-go/ui/images"
)

// ErrEmptyRegion is returned when a requested region does not intersect the screen.
var ErrEmptyRegion = errors.New("capture region outside screen")

// Grabber captures screen pixels. The zero value uses the primary screen.
type Grabber struct {
	// Hooks for tests; nil means the screenshot package.
	screenRect  func() (image.Rectangle, error)
	captureRect func(image.Rectangle) (*image.RGBA, error)
}

func (g Grabber) bounds() (image.Rectangle, error) {
	if g.screenRect != nil {
		return g.screenRect()
	}
	return screenshot.ScreenRect()
}

func (g Grabber) capture(r image.Rectangle) (*image.RGBA, error) {
	if g.captureRect != nil {
		return g.captureRect(r)
	}
	return screenshot.CaptureRect(r)
}

// Grab returns a capture of region, clipped to the screen. A nil region grabs the whole
// screen.
func (g Grabber) Grab(region *image.Rectangle) (*image.RGBA, error) {
	screen, err := g.bounds()
	if err != nil {
		return nil, fmt.Errorf("screen bounds: %w", err)
	}
	r := screen
	if region != nil {
		r = region.Intersect(screen)
	}
	if r.Empty() {
		return nil, ErrEmptyRegion
	}
	img, err := g.capture(r)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", r, err)
	}
	return img, nil
}

// GrabBase64 captures region and encodes it as base64 PNG, ready to be handed to the
// cropper as host image data.
func (g Grabber) GrabBase64(region *image.Rectangle) (string, error) {
	img, err := g.Grab(region)
	if err != nil {
		return "", err
	}
	return images.EncodeBase64PNG(img), nil
}
