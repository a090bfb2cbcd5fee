package images

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/soocke/crop-widget-go/domain/crop"
	"github.com/soocke/crop-widget-go/domain/geometry"
	"github.com/soocke/crop-widget-go/ui/render"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecodeBase64_RoundTrip(t *testing.T) {
	src := solid(40, 30, color.RGBA{200, 10, 10, 255})
	b64 := EncodeBase64PNG(src)
	for _, in := range []string{b64, "data:image/png;base64," + b64} {
		img, format, err := DecodeBase64(in)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if format != "png" {
			t.Fatalf("expected png, got %s", format)
		}
		if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
			t.Fatalf("unexpected size %v", img.Bounds())
		}
	}
}

func TestDecodeBase64_Errors(t *testing.T) {
	if _, _, err := DecodeBase64("  "); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
	if _, _, err := DecodeBase64("!!!not-base64"); err == nil {
		t.Fatalf("expected base64 error")
	}
	if _, _, err := DecodeBase64("aGVsbG8gd29ybGQ="); err == nil {
		t.Fatalf("expected image decode error")
	}
}

func TestDecodeBytes(t *testing.T) {
	img, format, err := DecodeBytes(EncodePNG(solid(9, 4, color.Black)))
	if err != nil || format != "png" || img.Bounds().Dx() != 9 {
		t.Fatalf("unexpected decode: format=%q err=%v", format, err)
	}
	if _, _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}

func TestScaleToWidth(t *testing.T) {
	src := solid(1600, 900, color.White)
	out := ScaleToWidth(src, 800)
	if out.Bounds().Dx() != 800 || out.Bounds().Dy() != 450 {
		t.Fatalf("expected 800x450, got %v", out.Bounds())
	}
	small := solid(100, 50, color.White)
	if ScaleToWidth(small, 800) != image.Image(small) {
		t.Fatalf("narrow image should be returned unchanged")
	}
}

func TestScaleToFit(t *testing.T) {
	src := solid(400, 400, color.White)
	out := ScaleToFit(src, 200, 100)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 100 {
		t.Fatalf("expected 100x100, got %v", out.Bounds())
	}
}

func TestCrop_ClampsToBounds(t *testing.T) {
	src := solid(100, 100, color.White)
	out, used, err := Crop(src, image.Rect(80, 80, 150, 150))
	if err != nil {
		t.Fatalf("crop failed: %v", err)
	}
	if used != image.Rect(80, 80, 100, 100) || out.Bounds().Dx() != 20 {
		t.Fatalf("unexpected crop %v / %v", used, out.Bounds())
	}
}

func TestCrop_MinimumOnePixel(t *testing.T) {
	src := solid(10, 10, color.White)
	out, used, err := Crop(src, image.Rect(20, 20, 30, 30))
	if err != nil {
		t.Fatalf("crop failed: %v", err)
	}
	if used.Dx() != 1 || used.Dy() != 1 || out.Bounds().Dx() != 1 {
		t.Fatalf("expected 1x1, got %v", used)
	}
	if _, _, err := Crop(nil, image.Rect(0, 0, 1, 1)); err == nil {
		t.Fatalf("expected error for nil image")
	}
}

func TestCompose_MasksOutsideSelection(t *testing.T) {
	bounds := geometry.Size{Width: 100, Height: 80}
	v := render.Render(render.State{
		Rect:     geometry.Rect{X: 20, Y: 30, W: 40, H: 40},
		Mode:     crop.ModeIdle,
		Bounds:   bounds,
		HasImage: true,
	})
	img := solid(100, 80, color.RGBA{255, 255, 255, 255})
	out := Compose(v, img)
	if out == nil {
		t.Fatalf("expected a frame")
	}
	if out.Bounds().Dx() != 116 || out.Bounds().Dy() != 96 {
		t.Fatalf("unexpected frame size %v", out.Bounds())
	}
	inside := out.RGBAAt(int(render.Inset)+40, int(render.Inset)+50)
	if inside != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("selection interior should be undimmed, got %v", inside)
	}
	outside := out.RGBAAt(int(render.Inset)+90, int(render.Inset)+5)
	if outside.R >= 200 {
		t.Fatalf("outside should be dimmed, got %v", outside)
	}
	border := out.RGBAAt(int(render.Inset)+20, int(render.Inset)+30)
	if border.B != 0xff || border.R != 0 {
		t.Fatalf("expected accent border pixel, got %v", border)
	}
}

func TestCompose_PlaceholderHasNoFrame(t *testing.T) {
	if Compose(render.Render(render.State{}), nil) != nil {
		t.Fatalf("placeholder should not produce a frame")
	}
}

func TestDrawLabel_StrokesMultiplicationSign(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 80, 24))
	l := render.Label{Text: "40 × 40", Area: geometry.Rect{X: 0, Y: 2, W: 70, H: render.LabelHeight}}
	drawLabel(dst, l)

	white := color.RGBA{255, 255, 255, 255}
	origin := labelOrigin(l.Area.Image())
	cell := origin.X + 3*basicfont.Face7x13.Advance
	top := origin.Y - 6
	for i := 0; i < 5; i++ {
		if got := dst.RGBAAt(cell+1+i, top+i); got != white {
			t.Fatalf("falling stroke missing at step %d: %v", i, got)
		}
		if got := dst.RGBAAt(cell+5-i, top+i); got != white {
			t.Fatalf("rising stroke missing at step %d: %v", i, got)
		}
	}
	if got := dst.RGBAAt(cell+3, top); got == white {
		t.Fatalf("cross cell should not be filled above its centre")
	}

	// Digits still come from the font.
	var lit int
	for y := origin.Y - basicfont.Face7x13.Ascent; y < origin.Y; y++ {
		for x := origin.X; x < origin.X+basicfont.Face7x13.Advance; x++ {
			if dst.RGBAAt(x, y) == white {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatalf("expected glyph pixels for the first digit")
	}
}

func TestDrawText_AdvancesOneCellPerRune(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 60, 20))
	end := drawText(dst, image.Pt(4, 14), "8 × 8")
	if want := 4 + 5*basicfont.Face7x13.Advance; end != want {
		t.Fatalf("expected end %d, got %d", want, end)
	}
}
