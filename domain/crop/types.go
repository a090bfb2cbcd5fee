package crop

import (
	"github.com/soocke/crop-widget-go/domain/geometry"
)

// Mode enumerates the pointer interaction states of the editor.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeResizing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Region identifies the interactive area a pointer-down landed on. Views tag events with
// it explicitly instead of the editor inspecting widget names.
type Region int

const (
	RegionNone Region = iota
	RegionBody
	RegionHandle
)

func (r Region) String() string {
	switch r {
	case RegionNone:
		return "none"
	case RegionBody:
		return "body"
	case RegionHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Defaults used when the host does not provide values.
const (
	DefaultMinSize       = 32
	DefaultPreferredSize = 200
)

// DefaultRect is the selection shown before any image bounds are known.
var DefaultRect = geometry.Rect{X: 50, Y: 50, W: 200, H: 200}

// Options configure an editor for one mount.
type Options struct {
	MinSize       float64
	PreferredSize float64
	Policy        geometry.SizePolicy
	// Initial is the host supplied box, nil to center a default once bounds are known.
	Initial *geometry.Rect
}

func (o Options) normalized() Options {
	if o.MinSize <= 0 {
		o.MinSize = DefaultMinSize
	}
	if o.PreferredSize <= 0 {
		o.PreferredSize = DefaultPreferredSize
	}
	return o
}

// ModeListener is called on each mode transition.
type ModeListener func(prev, next Mode)

// RectListener is called whenever the selection rectangle changes.
type RectListener func(r geometry.Rect)

// Event is a pointer event dispatched to the editor.
type Event interface{ isEvent() }

type (
	// PointerDown starts a gesture on the given region.
	PointerDown struct {
		Region Region
		At     geometry.Point
	}
	// PointerMove reports the current pointer position on the interactive surface.
	PointerMove struct{ At geometry.Point }
	// PointerUp releases the pointer.
	PointerUp struct{}
	// PointerLeave reports that the pointer left the interactive surface.
	PointerLeave struct{}
)

func (PointerDown) isEvent()  {}
func (PointerMove) isEvent()  {}
func (PointerUp) isEvent()    {}
func (PointerLeave) isEvent() {}

// Interface slices for consumers (presenters).
type EditorState interface {
	Rect() geometry.Rect
	Mode() Mode
	Bounds() (geometry.Size, bool)
}
type EditorInput interface {
	Dispatch(Event) bool
}
type EditorCommands interface {
	Mount(Options)
	SetBounds(geometry.Size)
	Reset()
	Confirm() geometry.Rect
}

// EditorContract aggregate for DI.
type EditorContract interface {
	EditorState
	EditorInput
	EditorCommands
	AddModeListener(ModeListener)
	AddRectListener(RectListener)
}
