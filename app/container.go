package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/soocke/crop-widget-go/bridge"
	"github.com/soocke/crop-widget-go/config"
	"github.com/soocke/crop-widget-go/domain/crop"
	"github.com/soocke/crop-widget-go/ui/model"
	"github.com/soocke/crop-widget-go/ui/presenter"
	"github.com/soocke/crop-widget-go/ui/view"
)

// Container assembles models, the editor, the host bridge, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	CfgPath  string
	Logger   *slog.Logger
	Images   *model.ImageModel
	Editor   *crop.Editor
	Host     bridge.Bridge
	WS       *bridge.WSBridge // nil unless a listen address is configured
	RootView *view.RootView

	// Presenters
	CropPresenter *presenter.CropPresenter
	Loop          *presenter.Loop
}

// BuildContainer constructs all components. Without a listen address the host bridge writes
// newline JSON to out. No Tk widgets are created here; see RootView.Build.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, out io.Writer) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger}
	imgs, err := model.NewImageModel(cfg.MaxDisplayWidth, cfg.ImageCacheSize, logger)
	if err != nil {
		return nil, fmt.Errorf("image model: %w", err)
	}
	c.Images = imgs

	base := crop.Options{
		MinSize:       cfg.MinSize,
		PreferredSize: cfg.PreferredSize,
		Policy:        cfg.Policy(),
	}
	c.Editor = crop.NewEditor(logger, base)

	var renders <-chan bridge.Args
	if cfg.ListenAddr != "" {
		c.WS = bridge.NewWSBridge(logger)
		c.Host = c.WS
		renders = c.WS.Renders()
	} else {
		c.Host = bridge.NewWriterBridge(out, logger)
	}

	c.RootView = view.NewRootView(logger, cfg.DarkMode)
	c.CropPresenter = presenter.NewCropPresenter(c.Editor, c.Images, c.Host, c.RootView, base, logger)
	c.CropPresenter.OnConfirm = c.persistSelection
	// Schedule is set by the app once the Tk loop runs.
	c.Loop = presenter.NewLoop(c.CropPresenter, renders, nil)
	return c, nil
}

// persistSelection stores the confirmed rectangle so the next start can restore it.
func (c *AppContainer) persistSelection(v bridge.Value) {
	if c.Config == nil || c.CfgPath == "" {
		return
	}
	c.Config.SetSelection(v.Rect)
	if err := c.Config.Save(c.CfgPath); err != nil && c.Logger != nil {
		c.Logger.Warn("persist selection failed", "path", c.CfgPath, "error", err)
	}
}
