package app

import (
	"context"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/crop-widget-go/bridge"
	"github.com/soocke/crop-widget-go/debug"
)

const (
	tick          = 50 * time.Millisecond
	debugInterval = 5 * time.Second
)

type app struct {
	c       *AppContainer
	afterID string
	cancel  context.CancelFunc
	exited  bool
}

// NewApp prepares the Tk root window for the container's views.
func NewApp(title string, c *AppContainer) *app {
	a := &app{c: c}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, "+100+100")
	return a
}

// Start builds the UI, mounts the cropper with initial (nil: no image yet), starts the host
// bridge server when configured and blocks in the Tk event loop until the window closes.
func (a *app) Start(ctx context.Context, initial *bridge.Args) {
	ctx, a.cancel = context.WithCancel(ctx)
	defer a.cancel()
	c := a.c
	p := c.CropPresenter

	c.RootView.Build(p.Confirm, p.Reset, a.exitHandler)
	c.RootView.Attach(p)
	p.Mount()
	if initial != nil {
		if err := p.ApplyArgs(*initial); err != nil && c.Logger != nil {
			c.Logger.Error("initial image rejected", "error", err)
		}
	}

	if c.WS != nil {
		go a.serve(ctx)
	}
	if c.Config != nil && c.Config.Debug {
		debug.StartRuntimeLogger(ctx, debugInterval, c.Logger)
	}

	// Signals cancel ctx off the Tk thread; the loop notices on its next tick.
	c.Loop.Done = ctx.Done()
	c.Loop.OnDone = a.exitHandler
	c.Loop.Schedule = a.scheduleUpdate
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) serve(ctx context.Context) {
	c := a.c
	if err := c.WS.ListenAndServe(ctx, c.Config.ListenAddr); err != nil && c.Logger != nil {
		c.Logger.Error("host bridge stopped", "error", err)
	}
}

func (a *app) exitHandler() {
	if a.exited {
		return
	}
	a.exited = true
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.c.WS != nil {
		a.c.WS.Close()
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next tick using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
