package images

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/crop-widget-go/domain/geometry"
	"github.com/soocke/crop-widget-go/ui/render"
)

// Overlay colors.
var (
	SurfaceColor = color.NRGBA{0xf7, 0xf9, 0xfb, 0xff}
	AccentColor  = color.NRGBA{0x00, 0xd4, 0xff, 0xff}
	LabelColor   = color.NRGBA{0x00, 0xd4, 0xff, 0xe6}
	HandleRing   = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	MaskColor    = color.NRGBA{0, 0, 0, uint8(math.Round(render.MaskAlpha * 255))}
)

// Compose rasterizes v with img drawn at v.Image. It returns nil for placeholder views,
// which have no surface to draw.
func Compose(v render.View, img image.Image) *image.RGBA {
	if !v.Enabled() {
		return nil
	}
	w, h := int(math.Ceil(v.Width)), int(math.Ceil(v.Height))
	if w < 1 || h < 1 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(SurfaceColor), image.Point{}, draw.Src)
	if img != nil {
		r := v.Image.Image()
		draw.Draw(dst, r, img, img.Bounds().Min, draw.Src)
	}
	sel := v.Selection.Image()
	if v.Mask {
		dimOutside(dst, sel)
	}
	dashedBorder(dst, sel, int(render.BorderWidth), int(render.DashLength))
	drawHandle(dst, v.Handle)
	drawLabel(dst, v.Label)
	return dst
}

// dimOutside darkens everything except sel, like a large box shadow around the selection.
func dimOutside(dst *image.RGBA, sel image.Rectangle) {
	b := dst.Bounds()
	mask := image.NewUniform(MaskColor)
	sel = sel.Intersect(b)
	parts := []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, sel.Min.Y),
		image.Rect(b.Min.X, sel.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, sel.Min.Y, sel.Min.X, sel.Max.Y),
		image.Rect(sel.Max.X, sel.Min.Y, b.Max.X, sel.Max.Y),
	}
	if sel.Empty() {
		parts = []image.Rectangle{b}
	}
	for _, p := range parts {
		if !p.Empty() {
			draw.Draw(dst, p, mask, image.Point{}, draw.Over)
		}
	}
}

// dashedBorder strokes the inside edge of r with dashes of length dash.
func dashedBorder(dst *image.RGBA, r image.Rectangle, width, dash int) {
	if r.Empty() || dash < 1 {
		return
	}
	src := image.NewUniform(AccentColor)
	for x := r.Min.X; x < r.Max.X; x += 2 * dash {
		x1 := min(x+dash, r.Max.X)
		draw.Draw(dst, image.Rect(x, r.Min.Y, x1, r.Min.Y+width), src, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(x, r.Max.Y-width, x1, r.Max.Y), src, image.Point{}, draw.Src)
	}
	for y := r.Min.Y; y < r.Max.Y; y += 2 * dash {
		y1 := min(y+dash, r.Max.Y)
		draw.Draw(dst, image.Rect(r.Min.X, y, r.Min.X+width, y1), src, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(r.Max.X-width, y, r.Max.X, y1), src, image.Point{}, draw.Src)
	}
}

// drawHandle paints a filled circle with a white ring inside area.
func drawHandle(dst *image.RGBA, area geometry.Rect) {
	radius := area.W / 2
	if radius <= 0 {
		return
	}
	cx, cy := area.X+radius, area.Y+radius
	r := area.Image().Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			switch {
			case d > radius:
			case d > radius-render.BorderWidth:
				dst.Set(x, y, HandleRing)
			default:
				dst.Set(x, y, AccentColor)
			}
		}
	}
}

// drawLabel paints the dimension caption box and its text.
func drawLabel(dst *image.RGBA, l render.Label) {
	if l.Text == "" {
		return
	}
	box := l.Area.Image()
	draw.Draw(dst, box, image.NewUniform(LabelColor), image.Point{}, draw.Over)
	drawText(dst, labelOrigin(box), l.Text)
}

// labelOrigin is the baseline start of text vertically centred in box.
func labelOrigin(box image.Rectangle) image.Point {
	face := basicfont.Face7x13
	return image.Pt(box.Min.X+int(render.LabelPadding), box.Min.Y+face.Ascent+(box.Dy()-face.Height)/2)
}

// drawText draws text in white starting at dot and returns the x after the last glyph.
// basicfont only covers ASCII, so the multiplication sign is stroked by hand.
func drawText(dst *image.RGBA, dot image.Point, text string) int {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.White, Face: face, Dot: fixed.P(dot.X, dot.Y)}
	for _, r := range text {
		if _, ok := face.GlyphAdvance(r); ok {
			d.DrawString(string(r))
			continue
		}
		x := d.Dot.X.Round()
		if r == '×' {
			drawCross(dst, x, dot.Y)
		}
		d.Dot.X += fixed.I(face.Advance)
	}
	return d.Dot.X.Round()
}

// drawCross strokes a 5x5 diagonal cross in the glyph cell at x, sitting on baseline.
func drawCross(dst *image.RGBA, x, baseline int) {
	top := baseline - 6
	for i := 0; i < 5; i++ {
		dst.Set(x+1+i, top+i, color.White)
		dst.Set(x+5-i, top+i, color.White)
	}
}
