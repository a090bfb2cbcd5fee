package view

import (
	"image"

	"github.com/soocke/crop-widget-go/domain/geometry"
	"github.com/soocke/crop-widget-go/ui/images"
	"github.com/soocke/crop-widget-go/ui/render"
	"github.com/soocke/crop-widget-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerHandler receives pointer input in surface coordinates.
type PointerHandler interface {
	PointerPress(p geometry.Point)
	PointerMotion(p geometry.Point)
	PointerRelease(p geometry.Point)
	PointerLeave()
}

// CropSurface shows the composed frame and forwards pointer input.
type CropSurface interface {
	Attach(h PointerHandler)
	ShowFrame(frame image.Image, v render.View)
	ShowPlaceholder(v render.View)
	SetCursor(c render.Cursor)
}

type cropSurface struct {
	label       *LabelWidget
	placeholder *TLabelWidget
	photo       *Img
	cursor      render.Cursor
	showing     bool
}

// NewCropSurface creates the surface label and the placeholder at row of the root grid.
// Only one of them is gridded at a time.
func NewCropSurface(row int) CropSurface {
	s := &cropSurface{cursor: render.CursorDefault}
	s.photo = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 1, 1)))))
	s.label = Label(Image(s.photo), Borderwidth(0), Background(theme.CurrentPalette().AppBg))
	s.placeholder = TLabel(Txt(render.PlaceholderText), Style(theme.StylePlaceholder), Anchor("center"))
	Grid(s.placeholder, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(s.label, Row(row), Column(0), Columnspan(3), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	GridRemove(s.label.Window)
	return s
}

// Attach binds pointer events of the surface label to h.
func (s *cropSurface) Attach(h PointerHandler) {
	if s == nil || s.label == nil || h == nil {
		return
	}
	Bind(s.label, "<ButtonPress-1>", Command(func(e *Event) { h.PointerPress(eventPoint(e)) }))
	Bind(s.label, "<B1-Motion>", Command(func(e *Event) { h.PointerMotion(eventPoint(e)) }))
	Bind(s.label, "<Motion>", Command(func(e *Event) { h.PointerMotion(eventPoint(e)) }))
	Bind(s.label, "<ButtonRelease-1>", Command(func(e *Event) { h.PointerRelease(eventPoint(e)) }))
	Bind(s.label, "<Leave>", Command(func() { h.PointerLeave() }))
}

// eventPoint converts a Tk event position (widget-relative pixels) to a surface point.
func eventPoint(e *Event) geometry.Point {
	if e == nil {
		return geometry.Point{X: -1, Y: -1}
	}
	return geometry.Point{X: float64(e.X), Y: float64(e.Y)}
}

func (s *cropSurface) ShowFrame(frame image.Image, _ render.View) {
	if s == nil || s.label == nil || frame == nil {
		return
	}
	pngBytes := images.EncodePNG(frame)
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if s.photo != nil {
		s.photo.Delete()
	}
	s.photo = NewPhoto(Data(pngBytes))
	s.label.Configure(Image(s.photo))
	if !s.showing {
		GridRemove(s.placeholder.Window)
		Grid(s.label)
		s.showing = true
	}
}

func (s *cropSurface) ShowPlaceholder(v render.View) {
	if s == nil || s.placeholder == nil {
		return
	}
	s.placeholder.Configure(Txt(v.Placeholder))
	if s.showing {
		GridRemove(s.label.Window)
		Grid(s.placeholder)
		s.showing = false
	}
}

func (s *cropSurface) SetCursor(c render.Cursor) {
	if s == nil || s.label == nil || c == s.cursor {
		return
	}
	s.cursor = c
	s.label.Configure(Cursor(tkCursor(c)))
}

// tkCursor maps a render cursor to a Tk cursor name.
func tkCursor(c render.Cursor) string {
	switch c {
	case render.CursorGrab:
		return "hand2"
	case render.CursorGrabbing:
		return "fleur"
	case render.CursorResize:
		return "bottom_right_corner"
	default:
		return "arrow"
	}
}
