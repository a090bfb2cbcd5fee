package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/soocke/crop-widget-go/app"
	"github.com/soocke/crop-widget-go/assets"
	"github.com/soocke/crop-widget-go/bridge"
	"github.com/soocke/crop-widget-go/capture"
	"github.com/soocke/crop-widget-go/config"
	"github.com/soocke/crop-widget-go/domain/crop"
	"github.com/soocke/crop-widget-go/domain/geometry"
)

type options struct {
	cfgPath  string
	envFile  string
	image    string
	b64      string
	box      string
	minSize  float64
	screen   string
	demo     bool
	listen   string
	policy   string
	debug    bool
	dark     bool
	setFlags map[string]bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{setFlags: map[string]bool{}}
	fs := flag.NewFlagSet("crop-widget", flag.ContinueOnError)
	fs.StringVar(&o.cfgPath, "config", "", "config file (default: per-user config dir)")
	fs.StringVar(&o.envFile, "env", ".env", "dotenv file with CROPPER_* overrides")
	fs.StringVar(&o.image, "image", "", "image file to crop")
	fs.StringVar(&o.b64, "b64", "", "base64 image data to crop")
	fs.StringVar(&o.box, "box", "", "initial selection x,y,w,h in display pixels")
	fs.Float64Var(&o.minSize, "min-size", 0, "minimum selection size")
	fs.StringVar(&o.screen, "screen", "", `capture the screen ("full" or x,y,w,h) as the image`)
	fs.BoolVar(&o.demo, "demo", false, "crop the built-in sample image")
	fs.StringVar(&o.listen, "listen", "", "serve the host bridge over websocket on this address")
	fs.StringVar(&o.policy, "size-policy", "", "undersized bounds policy: cap or floor")
	fs.BoolVar(&o.debug, "debug", false, "verbose logging and runtime stats")
	fs.BoolVar(&o.dark, "dark", false, "use the dark theme")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.setFlags[f.Name] = true })
	return o, nil
}

// applyTo overrides cfg with explicitly set flags.
func (o *options) applyTo(cfg *config.Config) {
	if o.setFlags["debug"] {
		cfg.Debug = o.debug
	}
	if o.setFlags["dark"] {
		cfg.DarkMode = o.dark
	}
	if o.setFlags["listen"] {
		cfg.ListenAddr = o.listen
	}
	if o.setFlags["size-policy"] {
		cfg.SizePolicy = o.policy
	}
	if o.setFlags["min-size"] && o.minSize > 0 {
		cfg.MinSize = o.minSize
	}
}

// initialArgs builds the mount arguments from flags. It returns nil when no image source was
// given, leaving the widget empty until a host render arrives.
func (o *options) initialArgs(cfg *config.Config) (*bridge.Args, error) {
	args := bridge.Args{MinSize: cfg.MinSize, Box: cfg.Selection()}
	if o.box != "" {
		r, err := geometry.ParseRect(o.box)
		if err != nil {
			return nil, err
		}
		args.Box = &r
	}
	switch {
	case o.b64 != "":
		args.ImageB64 = o.b64
	case o.image != "":
		raw, err := os.ReadFile(o.image)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		args.ImageB64 = base64.StdEncoding.EncodeToString(raw)
	case o.screen != "":
		var region *image.Rectangle
		if !strings.EqualFold(o.screen, "full") {
			r, err := geometry.ParseRect(o.screen)
			if err != nil {
				return nil, err
			}
			ir := r.Image()
			region = &ir
		}
		b64, err := capture.Grabber{}.GrabBase64(region)
		if err != nil {
			return nil, fmt.Errorf("screen capture: %w", err)
		}
		args.ImageB64 = b64
	case o.demo:
		args.ImageB64 = base64.StdEncoding.EncodeToString(assets.SamplePNG)
	default:
		if o.box == "" {
			return nil, nil
		}
	}
	if args.MinSize <= 0 {
		args.MinSize = crop.DefaultMinSize
	}
	return &args, nil
}

// flagExitCode maps a flag parsing error to a process exit status; -h is not a failure.
func flagExitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(flagExitCode(err))
	}

	// Host messages own stdout; logs go to stderr.
	level := new(slog.LevelVar)
	logger := NewLogger(os.Stderr, level)

	cfgPath := opts.cfgPath
	if cfgPath == "" {
		if cfgPath, err = config.DefaultPath(); err != nil {
			logger.Warn("config dir unavailable", "error", err)
		}
	}
	cfg := config.DefaultConfig()
	if cfgPath != "" {
		if cfg, err = config.Load(cfgPath); err != nil {
			logger.Warn("config load failed, using defaults", "path", cfgPath, "error", err)
		}
	}
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		logger.Warn("dotenv load failed", "error", err)
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		logger.Warn("ignoring malformed environment overrides", "error", err)
	}
	opts.applyTo(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Warn("config normalized", "error", err)
	}
	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}

	initial, err := opts.initialArgs(cfg)
	if err != nil {
		logger.Error("invalid startup image", "error", err)
		os.Exit(1)
	}

	c, err := app.BuildContainer(cfg, cfgPath, logger, os.Stdout)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	application := app.NewApp("Crop Image", c)
	application.Start(ctx, initial)
}
