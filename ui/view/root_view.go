package view

import (
	"image"
	"log/slog"

	"github.com/soocke/crop-widget-go/ui/render"
	"github.com/soocke/crop-widget-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns the subviews and implements the presenter's view contract by delegation.
type RootView struct {
	logger *slog.Logger
	dark   bool

	// Subviews
	Surface CropSurface
	Result  ResultPreview

	// Widgets
	Hint       *TLabelWidget
	ConfirmBtn *TButtonWidget
	ResetBtn   *TButtonWidget
}

func NewRootView(logger *slog.Logger, dark bool) *RootView {
	return &RootView{logger: logger, dark: dark}
}

// Build constructs the layout: surface, controls row, hint and result preview.
// Handlers are invoked on user actions.
func (rv *RootView) Build(onConfirm, onReset, onExit func()) {
	if rv == nil {
		return
	}
	theme.SetDark(rv.dark)
	GridColumnConfigure(App, 0, Weight(1))

	rv.Surface = NewCropSurface(0)

	btnFrame := Frame()
	Grid(btnFrame, Row(1), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.ConfirmBtn = TButton(Txt("Confirm"), Style(theme.StylePrimaryButton), Command(onConfirm))
	Grid(rv.ConfirmBtn, In(btnFrame), Row(0), Column(0), Sticky("w"), Padx("0.2m"), Pady("0.2m"))
	rv.ResetBtn = TButton(Txt("Reset"), Style(theme.StyleSecondaryButton), Command(onReset))
	Grid(rv.ResetBtn, In(btnFrame), Row(0), Column(1), Sticky("w"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleSecondaryButton), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(0), Column(2), Sticky("e"), Padx("0.2m"), Pady("0.2m"))

	rv.Hint = TLabel(Txt(render.HintText), Style(theme.StyleHintLabel), Anchor("w"))
	Grid(rv.Hint, Row(2), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.2m"))

	rv.Result = NewResultPreview(3)

	Bind(App, "<Return>", Command(onConfirm))
	Bind(App, "<Escape>", Command(onReset))
}

// Attach routes surface pointer input to h.
func (rv *RootView) Attach(h PointerHandler) {
	if rv != nil && rv.Surface != nil {
		rv.Surface.Attach(h)
	}
}

// ShowFrame proxies to the crop surface and enables the buttons.
func (rv *RootView) ShowFrame(frame image.Image, v render.View) {
	if rv == nil || rv.Surface == nil {
		return
	}
	rv.Surface.ShowFrame(frame, v)
	rv.setControlsEnabled(true)
}

// ShowPlaceholder proxies to the crop surface and disables Reset.
func (rv *RootView) ShowPlaceholder(v render.View) {
	if rv == nil || rv.Surface == nil {
		return
	}
	rv.Surface.ShowPlaceholder(v)
	if rv.Result != nil {
		rv.Result.Reset()
	}
	rv.setControlsEnabled(false)
}

func (rv *RootView) SetCursor(c render.Cursor) {
	if rv != nil && rv.Surface != nil {
		rv.Surface.SetCursor(c)
	}
}

func (rv *RootView) ShowResult(img image.Image) {
	if rv != nil && rv.Result != nil {
		rv.Result.ShowResult(img)
	}
}

// setControlsEnabled toggles Reset; Confirm stays enabled so a host without an image still
// receives the current rectangle.
func (rv *RootView) setControlsEnabled(enabled bool) {
	if rv.ResetBtn == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	rv.ResetBtn.Configure(State(state))
}
