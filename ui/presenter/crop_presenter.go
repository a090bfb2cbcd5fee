package presenter

import (
	"errors"
	"image"
	"log/slog"

	"github.com/soocke/crop-widget-go/bridge"
	"github.com/soocke/crop-widget-go/domain/crop"
	"github.com/soocke/crop-widget-go/domain/geometry"
	"github.com/soocke/crop-widget-go/ui/images"
	"github.com/soocke/crop-widget-go/ui/render"
)

// Editor narrows the crop editor to what the presenter drives and observes.
type Editor interface {
	crop.EditorState
	crop.EditorInput
	crop.EditorCommands
	AddModeListener(crop.ModeListener)
	AddRectListener(crop.RectListener)
}

// ImageSource provides the image being cropped.
type ImageSource interface {
	Load(b64 string) error
	Clear()
	Loaded() bool
	Display() image.Image
	Natural() image.Image
	DisplaySize() geometry.Size
	NaturalSize() geometry.Size
}

// CropView displays frames produced by the presenter.
type CropView interface {
	ShowFrame(frame image.Image, v render.View)
	ShowPlaceholder(v render.View)
	SetCursor(c render.Cursor)
	ShowResult(img image.Image)
}

// CropPresenter routes pointer input from the view into the editor, re-renders after every
// rectangle mutation and keeps the host informed through the bridge.
type CropPresenter struct {
	editor  Editor
	images  ImageSource
	host    bridge.Bridge
	view    CropView
	logger  *slog.Logger
	base    crop.Options
	current render.View
	mounted bool

	// Set by editor listeners, consumed after each dispatched event.
	rectDirty bool
	modeDirty bool

	// OnConfirm, when set, observes every confirmed value (e.g. to persist it).
	OnConfirm func(bridge.Value)
}

// NewCropPresenter wires the presenter. base supplies options the host does not send
// (preferred size, size policy).
func NewCropPresenter(editor Editor, src ImageSource, host bridge.Bridge, view CropView, base crop.Options, logger *slog.Logger) *CropPresenter {
	p := &CropPresenter{editor: editor, images: src, host: host, view: view, base: base, logger: logger}
	if editor != nil {
		editor.AddRectListener(func(geometry.Rect) { p.rectDirty = true })
		editor.AddModeListener(func(_, _ crop.Mode) { p.modeDirty = true })
	}
	return p
}

func (p *CropPresenter) ready() bool {
	return p != nil && p.editor != nil && p.images != nil && p.host != nil && p.view != nil
}

// Mount draws the first frame and signals the host once.
func (p *CropPresenter) Mount() {
	if !p.ready() {
		return
	}
	p.refresh(false)
	if !p.mounted {
		p.mounted = true
		p.host.Ready()
	}
	p.host.SetFrameHeight(p.current.FrameHeight())
}

// ApplyArgs remounts the editor with new host arguments and loads the image. A host that
// sends no minimum size keeps the configured one. A missing
// image is not an error: the view falls back to the placeholder. Decode failures are
// returned after the placeholder is shown.
func (p *CropPresenter) ApplyArgs(args bridge.Args) error {
	if !p.ready() {
		return nil
	}
	opts := p.base
	if args.MinSize > 0 {
		opts.MinSize = args.MinSize
	}
	opts.Initial = args.Box
	p.editor.Mount(opts)

	var loadErr error
	if args.ImageB64 == "" {
		p.images.Clear()
	} else if err := p.images.Load(args.ImageB64); err != nil && !errors.Is(err, images.ErrEmptyImage) {
		loadErr = err
		if p.logger != nil {
			p.logger.Warn("image rejected", "error", err)
		}
	}
	if p.images.Loaded() {
		p.editor.SetBounds(p.images.DisplaySize())
	}
	p.refresh(true)
	return loadErr
}

// PointerPress starts a gesture when sp (surface coordinates) hits the selection.
func (p *CropPresenter) PointerPress(sp geometry.Point) {
	if !p.ready() {
		return
	}
	region := p.current.HitTest(sp)
	if region == crop.RegionNone {
		return
	}
	p.dispatch(crop.PointerDown{Region: region, At: p.current.ToImage(sp)}, sp)
}

// PointerMotion forwards pointer movement anywhere on the surface.
func (p *CropPresenter) PointerMotion(sp geometry.Point) {
	if !p.ready() {
		return
	}
	p.dispatch(crop.PointerMove{At: p.current.ToImage(sp)}, sp)
}

// PointerRelease ends the gesture.
func (p *CropPresenter) PointerRelease(sp geometry.Point) {
	if !p.ready() {
		return
	}
	p.dispatch(crop.PointerUp{}, sp)
}

// PointerLeave ends the gesture when the pointer leaves the surface.
func (p *CropPresenter) PointerLeave() {
	if !p.ready() {
		return
	}
	p.dispatch(crop.PointerLeave{}, geometry.Point{X: -1, Y: -1})
}

func (p *CropPresenter) dispatch(ev crop.Event, sp geometry.Point) {
	p.rectDirty, p.modeDirty = false, false
	p.editor.Dispatch(ev)
	switch {
	case p.rectDirty:
		p.refresh(true)
	case p.modeDirty:
		p.current = render.Render(p.state())
	}
	p.view.SetCursor(p.current.CursorAt(sp))
}

// Confirm reports the current selection to the host. With an image loaded the value also
// carries the selection in natural pixels and the cropped result is previewed.
func (p *CropPresenter) Confirm() {
	if !p.ready() {
		return
	}
	val := bridge.Value{Rect: p.editor.Confirm()}
	if p.images.Loaded() {
		nat := geometry.Scale(val.Rect, p.images.DisplaySize(), p.images.NaturalSize())
		val.Natural = &nat
		if cropped, _, err := images.Crop(p.images.Natural(), nat.Image()); err == nil {
			p.view.ShowResult(cropped)
		} else if p.logger != nil {
			p.logger.Warn("crop preview failed", "error", err)
		}
	}
	if p.logger != nil {
		p.logger.Info("selection confirmed", "rect", val.Rect.String())
	}
	p.host.SetComponentValue(val)
	if p.OnConfirm != nil {
		p.OnConfirm(val)
	}
}

// Reset restores the centered default selection, ending any gesture.
func (p *CropPresenter) Reset() {
	if !p.ready() {
		return
	}
	before := p.editor.Rect()
	p.editor.Reset()
	p.refresh(before != p.editor.Rect())
}

// View returns the last rendered view description.
func (p *CropPresenter) View() render.View {
	if p == nil {
		return render.View{}
	}
	return p.current
}

func (p *CropPresenter) state() render.State {
	bounds, _ := p.editor.Bounds()
	return render.State{
		Rect:     p.editor.Rect(),
		Mode:     p.editor.Mode(),
		Bounds:   bounds,
		HasImage: p.images.Loaded(),
	}
}

// refresh re-renders and redraws; notify additionally asks the host to refit the frame.
func (p *CropPresenter) refresh(notify bool) {
	p.current = render.Render(p.state())
	if frame := images.Compose(p.current, p.images.Display()); frame != nil {
		p.view.ShowFrame(frame, p.current)
	} else {
		p.view.ShowPlaceholder(p.current)
	}
	if notify {
		p.host.SetFrameHeight(p.current.FrameHeight())
	}
}
