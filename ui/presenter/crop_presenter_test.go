package presenter

import (
	"errors"
	"image"
	"testing"

	"github.com/soocke/crop-widget-go/bridge"
	"github.com/soocke/crop-widget-go/domain/crop"
	"github.com/soocke/crop-widget-go/domain/geometry"
	"github.com/soocke/crop-widget-go/ui/render"
)

type mockImages struct {
	natural, display image.Image
	loadErr          error
	loads            int
}

func (m *mockImages) Load(b64 string) error {
	m.loads++
	if m.loadErr != nil {
		m.Clear()
		return m.loadErr
	}
	m.natural = image.NewRGBA(image.Rect(0, 0, 800, 600))
	m.display = image.NewRGBA(image.Rect(0, 0, 400, 300))
	return nil
}
func (m *mockImages) Clear() { m.natural, m.display = nil, nil }
func (m *mockImages) Loaded() bool { return m.display != nil }
func (m *mockImages) Display() image.Image { return m.display }
func (m *mockImages) Natural() image.Image { return m.natural }
func (m *mockImages) DisplaySize() geometry.Size {
	if m.display == nil {
		return geometry.Size{}
	}
	return geometry.Size{Width: 400, Height: 300}
}
func (m *mockImages) NaturalSize() geometry.Size {
	if m.natural == nil {
		return geometry.Size{}
	}
	return geometry.Size{Width: 800, Height: 600}
}

type mockHost struct {
	ready   int
	heights []int
	values  []bridge.Value
}

func (h *mockHost) Ready() { h.ready++ }
func (h *mockHost) SetFrameHeight(height int) { h.heights = append(h.heights, height) }
func (h *mockHost) SetComponentValue(v bridge.Value) { h.values = append(h.values, v) }

type mockView struct {
	frames, placeholders int
	lastView             render.View
	cursor               render.Cursor
	result               image.Image
}

func (v *mockView) ShowFrame(frame image.Image, rv render.View) { v.frames++; v.lastView = rv }
func (v *mockView) ShowPlaceholder(rv render.View) { v.placeholders++; v.lastView = rv }
func (v *mockView) SetCursor(c render.Cursor) { v.cursor = c }
func (v *mockView) ShowResult(img image.Image) { v.result = img }

func newTestPresenter() (*CropPresenter, *crop.Editor, *mockImages, *mockHost, *mockView) {
	ed := crop.NewEditor(nil, crop.Options{})
	imgs := &mockImages{}
	host := &mockHost{}
	view := &mockView{}
	p := NewCropPresenter(ed, imgs, host, view, crop.Options{PreferredSize: 200}, nil)
	return p, ed, imgs, host, view
}

// surface converts an image point to surface coordinates.
func surface(x, y float64) geometry.Point {
	return geometry.Point{X: x + render.Inset, Y: y + render.Inset}
}

func TestCropPresenter_MountSignalsReadyOnce(t *testing.T) {
	p, _, _, host, view := newTestPresenter()
	p.Mount()
	p.Mount()
	if host.ready != 1 {
		t.Fatalf("expected one ready signal, got %d", host.ready)
	}
	if view.placeholders == 0 || view.frames != 0 {
		t.Fatalf("expected placeholder without image: frames=%d placeholders=%d", view.frames, view.placeholders)
	}
	if len(host.heights) == 0 {
		t.Fatalf("expected frame height after mount")
	}
}

func TestCropPresenter_ApplyArgsLoadsImageAndCenters(t *testing.T) {
	p, ed, _, host, view := newTestPresenter()
	p.Mount()
	if err := p.ApplyArgs(bridge.Args{ImageB64: "x", MinSize: 32}); err != nil {
		t.Fatalf("apply args: %v", err)
	}
	want := geometry.Rect{X: 125, Y: 75, W: 150, H: 150}
	if ed.Rect() != want {
		t.Fatalf("expected %v, got %v", want, ed.Rect())
	}
	if view.frames != 1 || !view.lastView.Enabled() {
		t.Fatalf("expected an enabled frame, frames=%d", view.frames)
	}
	if last := host.heights[len(host.heights)-1]; last != 316+64 {
		t.Fatalf("unexpected frame height %d", last)
	}
}

func TestCropPresenter_DragUpdatesFrameAndHost(t *testing.T) {
	p, ed, _, host, view := newTestPresenter()
	box := geometry.Rect{X: 50, Y: 50, W: 200, H: 200}
	_ = p.ApplyArgs(bridge.Args{ImageB64: "x", Box: &box, MinSize: 32})
	heightsBefore := len(host.heights)
	framesBefore := view.frames

	p.PointerPress(surface(100, 100))
	if ed.Mode() != crop.ModeDragging {
		t.Fatalf("expected dragging, got %v", ed.Mode())
	}
	p.PointerMotion(surface(1100, 1100))
	if ed.Rect() != (geometry.Rect{X: 200, Y: 100, W: 200, H: 200}) {
		t.Fatalf("unexpected rect %v", ed.Rect())
	}
	if view.cursor != render.CursorGrabbing {
		t.Fatalf("expected grabbing cursor, got %v", view.cursor)
	}
	if view.frames != framesBefore+1 || len(host.heights) != heightsBefore+1 {
		t.Fatalf("expected one redraw and one height signal: frames=%d heights=%d", view.frames-framesBefore, len(host.heights)-heightsBefore)
	}
	p.PointerRelease(surface(1100, 1100))
	if ed.Mode() != crop.ModeIdle {
		t.Fatalf("expected idle after release")
	}
}

func TestCropPresenter_HandleResizes(t *testing.T) {
	p, ed, _, _, view := newTestPresenter()
	box := geometry.Rect{X: 50, Y: 50, W: 200, H: 200}
	_ = p.ApplyArgs(bridge.Args{ImageB64: "x", Box: &box, MinSize: 32})
	p.PointerPress(surface(252, 252))
	if ed.Mode() != crop.ModeResizing {
		t.Fatalf("expected resizing, got %v", ed.Mode())
	}
	p.PointerMotion(surface(-748, -748))
	if ed.Rect() != (geometry.Rect{X: 50, Y: 50, W: 32, H: 32}) {
		t.Fatalf("unexpected rect %v", ed.Rect())
	}
	if view.lastView.Label.Text != "32 × 32" {
		t.Fatalf("unexpected label %q", view.lastView.Label.Text)
	}
	p.PointerLeave()
	if ed.Mode() != crop.ModeIdle || view.cursor != render.CursorDefault {
		t.Fatalf("leave should end gesture: mode=%v cursor=%v", ed.Mode(), view.cursor)
	}
}

func TestCropPresenter_PressOutsideSelectionIgnored(t *testing.T) {
	p, ed, _, _, _ := newTestPresenter()
	_ = p.ApplyArgs(bridge.Args{ImageB64: "x", MinSize: 32})
	p.PointerPress(surface(1, 1))
	if ed.Mode() != crop.ModeIdle {
		t.Fatalf("press outside must not start a gesture")
	}
}

func TestCropPresenter_NoImageDisablesSelection(t *testing.T) {
	p, ed, _, _, view := newTestPresenter()
	_ = p.ApplyArgs(bridge.Args{MinSize: 32})
	p.PointerPress(surface(100, 100))
	if ed.Mode() != crop.ModeIdle {
		t.Fatalf("gesture started without an image")
	}
	if view.lastView.Enabled() {
		t.Fatalf("expected placeholder view")
	}
}

func TestCropPresenter_DecodeErrorFallsBackToPlaceholder(t *testing.T) {
	p, _, imgs, _, view := newTestPresenter()
	imgs.loadErr = errors.New("bad png")
	if err := p.ApplyArgs(bridge.Args{ImageB64: "x", MinSize: 32}); err == nil {
		t.Fatalf("expected load error")
	}
	if view.placeholders != 1 {
		t.Fatalf("expected placeholder, got %d", view.placeholders)
	}
}

func TestCropPresenter_ConfirmReportsDisplayAndNaturalRect(t *testing.T) {
	p, ed, _, host, view := newTestPresenter()
	var persisted []bridge.Value
	p.OnConfirm = func(v bridge.Value) { persisted = append(persisted, v) }
	_ = p.ApplyArgs(bridge.Args{ImageB64: "x", MinSize: 32})
	p.Confirm()
	if len(host.values) != 1 {
		t.Fatalf("expected one value, got %d", len(host.values))
	}
	v := host.values[0]
	if v.Rect != ed.Rect() {
		t.Fatalf("value rect %v != editor rect %v", v.Rect, ed.Rect())
	}
	if v.Natural == nil || *v.Natural != (geometry.Rect{X: 250, Y: 150, W: 300, H: 300}) {
		t.Fatalf("unexpected natural rect %v", v.Natural)
	}
	if view.result == nil || view.result.Bounds().Dx() != 300 {
		t.Fatalf("expected 300px crop preview")
	}
	if len(persisted) != 1 {
		t.Fatalf("expected OnConfirm call")
	}
}

func TestCropPresenter_ConfirmWithoutImageReportsDefault(t *testing.T) {
	p, _, _, host, _ := newTestPresenter()
	p.Mount()
	p.Confirm()
	if len(host.values) != 1 || host.values[0].Rect != crop.DefaultRect || host.values[0].Natural != nil {
		t.Fatalf("unexpected value %+v", host.values)
	}
}

func TestCropPresenter_ResetMidGesture(t *testing.T) {
	p, ed, _, _, _ := newTestPresenter()
	box := geometry.Rect{X: 10, Y: 10, W: 50, H: 50}
	_ = p.ApplyArgs(bridge.Args{ImageB64: "x", Box: &box, MinSize: 32})
	p.PointerPress(surface(20, 20))
	p.Reset()
	if ed.Mode() != crop.ModeIdle {
		t.Fatalf("reset should force idle")
	}
	if ed.Rect() != (geometry.Rect{X: 125, Y: 75, W: 150, H: 150}) {
		t.Fatalf("unexpected rect after reset %v", ed.Rect())
	}
	p.PointerMotion(surface(40, 40))
	if ed.Rect() != (geometry.Rect{X: 125, Y: 75, W: 150, H: 150}) {
		t.Fatalf("motion after reset must be ignored")
	}
}

func TestLoop_TickAppliesRendersInOrder(t *testing.T) {
	p, ed, imgs, _, _ := newTestPresenter()
	renders := make(chan bridge.Args, 2)
	renders <- bridge.Args{MinSize: 16}
	renders <- bridge.Args{ImageB64: "x", MinSize: 40}
	var scheduled int
	l := NewLoop(p, renders, func() { scheduled++ })
	l.Tick()
	if imgs.loads != 1 || scheduled != 1 {
		t.Fatalf("unexpected loads=%d scheduled=%d", imgs.loads, scheduled)
	}
	if _, ok := ed.Bounds(); !ok {
		t.Fatalf("last render should set bounds")
	}
	close(renders)
	l.Tick()
	if l.Renders != nil || scheduled != 2 {
		t.Fatalf("closed channel should be dropped")
	}
	var nilLoop *Loop
	nilLoop.Tick()
}

func TestLoop_DoneStopsAndExitsOnce(t *testing.T) {
	p, _, imgs, _, _ := newTestPresenter()
	renders := make(chan bridge.Args, 1)
	done := make(chan struct{})
	var scheduled, exits int
	l := NewLoop(p, renders, func() { scheduled++ })
	l.Done = done
	l.OnDone = func() { exits++ }

	l.Tick()
	if scheduled != 1 || exits != 0 {
		t.Fatalf("unexpected scheduled=%d exits=%d", scheduled, exits)
	}
	close(done)
	renders <- bridge.Args{ImageB64: "x"}
	l.Tick()
	l.Tick()
	if exits != 1 || scheduled != 1 {
		t.Fatalf("expected one exit and no reschedule: scheduled=%d exits=%d", scheduled, exits)
	}
	if imgs.loads != 0 {
		t.Fatalf("renders after shutdown must not be applied")
	}
}

func TestCropPresenter_AbsentMinSizeKeepsConfigured(t *testing.T) {
	ed := crop.NewEditor(nil, crop.Options{})
	p := NewCropPresenter(ed, &mockImages{}, &mockHost{}, &mockView{}, crop.Options{PreferredSize: 200, MinSize: 64}, nil)
	box := geometry.Rect{X: 50, Y: 50, W: 200, H: 200}
	parsed, err := bridge.ParseArgs([]byte(`{"image_b64":"eA=="}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	parsed.Box = &box
	if err := p.ApplyArgs(parsed); err != nil {
		t.Fatalf("apply args: %v", err)
	}
	p.PointerPress(surface(252, 252))
	p.PointerMotion(surface(-748, -748))
	if got := ed.Rect(); got.W != 64 || got.H != 64 {
		t.Fatalf("expected configured minimum 64, got %v", got)
	}

	p.PointerRelease(surface(-748, -748))
	_ = p.ApplyArgs(bridge.Args{ImageB64: "x", Box: &box, MinSize: 40})
	p.PointerPress(surface(252, 252))
	p.PointerMotion(surface(-748, -748))
	if got := ed.Rect(); got.W != 40 {
		t.Fatalf("host minimum should win when sent, got %v", got)
	}
}
