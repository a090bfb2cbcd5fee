package crop

import (
	"log/slog"

	"github.com/soocke/crop-widget-go/domain/geometry"
)

// Editor owns the selection rectangle and turns pointer events into rectangle mutations.
// It is not safe for concurrent use; all methods are expected to run on the UI thread in
// event dispatch order.
type Editor struct {
	logger        *slog.Logger
	opts          Options
	mode          Mode
	rect          geometry.Rect
	bounds        geometry.Size
	boundsSet     bool
	anchor        geometry.Point
	modeListeners []ModeListener
	rectListeners []RectListener
}

// NewEditor constructs an editor mounted with opts.
func NewEditor(logger *slog.Logger, opts Options) *Editor {
	e := &Editor{logger: logger}
	e.Mount(opts)
	return e
}

// Mount (re)initializes the editor for new host arguments. Bounds are forgotten until the
// next SetBounds; the rectangle becomes the initial box or DefaultRect.
func (e *Editor) Mount(opts Options) {
	e.opts = opts.normalized()
	e.transition(ModeIdle)
	e.boundsSet = false
	e.bounds = geometry.Size{}
	e.anchor = geometry.Point{}
	e.setRect(e.mountRect())
}

func (e *Editor) mountRect() geometry.Rect {
	if e.opts.Initial != nil {
		return *e.opts.Initial
	}
	return DefaultRect
}

// SetBounds records the rendered image size. Without an initial box the selection is
// centered; otherwise the box is fitted into the new bounds.
func (e *Editor) SetBounds(b geometry.Size) {
	e.bounds = b
	e.boundsSet = true
	e.transition(ModeIdle)
	if e.opts.Initial == nil {
		e.setRect(geometry.CenteredDefault(b, e.opts.PreferredSize))
		return
	}
	e.setRect(geometry.Fit(*e.opts.Initial, b, e.opts.MinSize, e.opts.Policy))
}

// Dispatch applies one pointer event and reports whether the rectangle changed.
func (e *Editor) Dispatch(ev Event) bool {
	switch ev := ev.(type) {
	case PointerDown:
		if e.mode != ModeIdle || !e.boundsSet {
			return false
		}
		switch ev.Region {
		case RegionBody:
			e.anchor = ev.At
			e.transition(ModeDragging)
		case RegionHandle:
			e.anchor = ev.At
			e.transition(ModeResizing)
		}
		return false
	case PointerMove:
		if e.mode == ModeIdle {
			return false
		}
		dx, dy := ev.At.Sub(e.anchor)
		e.anchor = ev.At
		if e.mode == ModeDragging {
			return e.setRect(geometry.ClampMove(e.rect, dx, dy, e.bounds))
		}
		return e.setRect(geometry.ClampResize(e.rect, dx, dy, e.bounds, e.opts.MinSize, e.opts.Policy))
	case PointerUp, PointerLeave:
		e.transition(ModeIdle)
		return false
	}
	return false
}

// Reset ends any gesture and restores the centered default selection. Without bounds the
// mount-time rectangle is restored instead.
func (e *Editor) Reset() {
	e.transition(ModeIdle)
	if !e.boundsSet {
		e.setRect(e.mountRect())
		return
	}
	e.setRect(geometry.CenteredDefault(e.bounds, e.opts.PreferredSize))
}

// Confirm returns the current selection. It does not change any state.
func (e *Editor) Confirm() geometry.Rect { return e.rect }

// Public accessors
func (e *Editor) Rect() geometry.Rect           { return e.rect }
func (e *Editor) Mode() Mode                    { return e.mode }
func (e *Editor) Bounds() (geometry.Size, bool) { return e.bounds, e.boundsSet }

func (e *Editor) AddModeListener(l ModeListener) { e.modeListeners = append(e.modeListeners, l) }
func (e *Editor) AddRectListener(l RectListener) { e.rectListeners = append(e.rectListeners, l) }

func (e *Editor) transition(next Mode) {
	prev := e.mode
	if prev == next {
		return
	}
	e.mode = next
	if e.logger != nil {
		e.logger.Debug("crop mode transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range e.modeListeners {
		l(prev, next)
	}
}

func (e *Editor) setRect(r geometry.Rect) bool {
	if r == e.rect {
		return false
	}
	e.rect = r
	for _, l := range e.rectListeners {
		l(r)
	}
	return true
}

// Ensure contract satisfaction
var _ EditorContract = (*Editor)(nil)
