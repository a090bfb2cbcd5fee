// Package render turns editor state into a view description. Render is a pure function so
// the overlay layout, hit regions and cursors can be tested without a UI runtime; views only
// rasterize or display the description they are given.
package render

import (
	"fmt"
	"math"

	"github.com/soocke/crop-widget-go/domain/crop"
	"github.com/soocke/crop-widget-go/domain/geometry"
)

// Layout constants, in surface pixels.
const (
	Inset             = 8.0  // padding around the image so the handle and label stay visible
	BorderWidth       = 2.0  // dashed selection border, drawn inside the rectangle
	DashLength        = 6.0  // length of one dash and one gap
	HandleSize        = 12.0 // diameter of the resize handle
	HandleOffset      = 6.0  // how far the handle sticks out past the bottom-right corner
	LabelOffset       = 24.0 // distance from the label top to the selection top
	LabelHeight       = 18.0
	LabelPadding      = 8.0
	LabelCharWidth    = 7.0
	ControlsHeight    = 64.0 // buttons and hint below the surface
	PlaceholderHeight = 60.0
	MaskAlpha         = 0.4
)

const (
	PlaceholderText = "No image provided"
	HintText        = "Drag to move • Drag corner to resize • Click Confirm to apply"
)

// Cursor is the pointer affordance a view should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
	CursorResize
)

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	case CursorResize:
		return "nwse-resize"
	default:
		return "unknown"
	}
}

// State is everything Render needs.
type State struct {
	Rect     geometry.Rect
	Mode     crop.Mode
	Bounds   geometry.Size
	HasImage bool
}

// HitRegion is an interactive area tagged with the region identity it reports.
type HitRegion struct {
	Region crop.Region
	Area   geometry.Rect
	Cursor Cursor
}

// Label is the dimension caption drawn next to the selection.
type Label struct {
	Text string
	Area geometry.Rect
}

// View describes one frame of the widget. All rectangles are in surface coordinates; the
// image is drawn at Image and the selection at Selection.
type View struct {
	Placeholder string
	Hint        string
	Width       float64
	Height      float64
	Image       geometry.Rect
	Selection   geometry.Rect
	Handle      geometry.Rect
	Label       Label
	Mask        bool
	// Cursor is the gesture cursor; CursorDefault while idle, when hover decides.
	Cursor Cursor
	// Regions are ordered topmost first.
	Regions []HitRegion
}

// Render builds the view description for s.
func Render(s State) View {
	if !s.HasImage || s.Bounds.Empty() {
		return View{
			Placeholder: PlaceholderText,
			Hint:        HintText,
			Height:      PlaceholderHeight,
		}
	}
	v := View{
		Hint:   HintText,
		Width:  s.Bounds.Width + 2*Inset,
		Height: s.Bounds.Height + 2*Inset,
		Image:  geometry.Rect{X: Inset, Y: Inset, W: s.Bounds.Width, H: s.Bounds.Height},
		Mask:   true,
	}
	v.Selection = s.Rect.Translate(Inset, Inset)
	v.Handle = geometry.Rect{
		X: v.Selection.Right() - HandleSize + HandleOffset,
		Y: v.Selection.Bottom() - HandleSize + HandleOffset,
		W: HandleSize,
		H: HandleSize,
	}
	v.Label = layoutLabel(v.Selection, DimensionLabel(s.Rect))
	switch s.Mode {
	case crop.ModeDragging:
		v.Cursor = CursorGrabbing
	case crop.ModeResizing:
		v.Cursor = CursorResize
	}
	v.Regions = []HitRegion{
		{Region: crop.RegionHandle, Area: v.Handle, Cursor: CursorResize},
		{Region: crop.RegionBody, Area: v.Selection, Cursor: CursorGrab},
	}
	return v
}

func layoutLabel(sel geometry.Rect, text string) Label {
	w := float64(len([]rune(text)))*LabelCharWidth + 2*LabelPadding
	y := sel.Y - LabelOffset
	if y < 0 {
		// No room above: tuck the label inside the top edge.
		y = sel.Y + BorderWidth
	}
	return Label{Text: text, Area: geometry.Rect{X: sel.X, Y: y, W: w, H: LabelHeight}}
}

// DimensionLabel formats the rounded selection size, e.g. "200 × 150".
func DimensionLabel(r geometry.Rect) string {
	return fmt.Sprintf("%d × %d", int(math.Round(r.W)), int(math.Round(r.H)))
}

// Enabled reports whether the selection is interactive.
func (v View) Enabled() bool { return v.Placeholder == "" }

// FrameHeight is the content height the host frame must fit.
func (v View) FrameHeight() int { return int(math.Ceil(v.Height + ControlsHeight)) }

// HitTest returns the topmost region containing p (surface coordinates).
func (v View) HitTest(p geometry.Point) crop.Region {
	for _, r := range v.Regions {
		if r.Area.Contains(p) {
			return r.Region
		}
	}
	return crop.RegionNone
}

// CursorAt returns the cursor to show with the pointer at p. An active gesture keeps its
// cursor wherever the pointer is.
func (v View) CursorAt(p geometry.Point) Cursor {
	if v.Cursor != CursorDefault {
		return v.Cursor
	}
	for _, r := range v.Regions {
		if r.Area.Contains(p) {
			return r.Cursor
		}
	}
	return CursorDefault
}

// ToImage converts a surface point into rendered-image coordinates.
func (v View) ToImage(p geometry.Point) geometry.Point {
	return geometry.Point{X: p.X - v.Image.X, Y: p.Y - v.Image.Y}
}
