package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/soocke/crop-widget-go/domain/geometry"
)

// EnvPrefix prefixes every environment override, e.g. CROPPER_MIN_SIZE.
const EnvPrefix = "CROPPER_"

// Config holds runtime configuration for the cropper.
// Fields may be loaded from a JSON file, overridden by the environment and then by flags.
type Config struct {
	Debug bool `json:"debug"`

	// Selection behavior
	MinSize       float64 `json:"min_size"`
	PreferredSize float64 `json:"preferred_size"`
	SizePolicy    string  `json:"size_policy"`

	// Display
	MaxDisplayWidth int  `json:"max_display_width"`
	ImageCacheSize  int  `json:"image_cache_size"`
	DarkMode        bool `json:"dark_mode"`

	// Host bridge; empty means newline JSON on stdout.
	ListenAddr string `json:"listen_addr"`

	// Last confirmed selection, in display pixels
	SelectionX int `json:"selection_x"`
	SelectionY int `json:"selection_y"`
	SelectionW int `json:"selection_w"`
	SelectionH int `json:"selection_h"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		MinSize:         32,
		PreferredSize:   200,
		SizePolicy:      geometry.PolicyCap.String(),
		MaxDisplayWidth: 800,
		ImageCacheSize:  8,
		ListenAddr:      "",
	}
}

// Validate clamps/normalizes values to safe ranges. An unknown size policy is reset to cap
// and reported.
func (c *Config) Validate() error {
	if c.MinSize <= 0 {
		c.MinSize = 32
	}
	if c.PreferredSize <= 0 {
		c.PreferredSize = 200
	}
	if c.MaxDisplayWidth <= 0 {
		c.MaxDisplayWidth = 800
	}
	if c.ImageCacheSize <= 0 {
		c.ImageCacheSize = 8
	}
	if c.SelectionW < 0 || c.SelectionH < 0 {
		c.SelectionW, c.SelectionH = 0, 0
	}
	if _, err := geometry.ParseSizePolicy(c.SizePolicy); err != nil {
		c.SizePolicy = geometry.PolicyCap.String()
		return err
	}
	return nil
}

// Policy returns the parsed size policy, falling back to cap.
func (c *Config) Policy() geometry.SizePolicy {
	p, err := geometry.ParseSizePolicy(c.SizePolicy)
	if err != nil {
		return geometry.PolicyCap
	}
	return p
}

// Selection returns the persisted selection, or nil when none was saved.
func (c *Config) Selection() *geometry.Rect {
	if c == nil || c.SelectionW <= 0 || c.SelectionH <= 0 {
		return nil
	}
	return &geometry.Rect{
		X: float64(c.SelectionX),
		Y: float64(c.SelectionY),
		W: float64(c.SelectionW),
		H: float64(c.SelectionH),
	}
}

// SetSelection records r, rounded to whole pixels.
func (c *Config) SetSelection(r geometry.Rect) {
	ir := r.Image()
	c.SelectionX, c.SelectionY = ir.Min.X, ir.Min.Y
	c.SelectionW, c.SelectionH = ir.Dx(), ir.Dy()
}

// DefaultPath returns the per-user config file location, creating its directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("crop-widget", "config.json"))
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// LoadDotEnv loads the given .env files into the process environment. Missing files are
// ignored; already-set variables are not overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var errs []error
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("load %s: %w", f, err))
		}
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides fields from CROPPER_* variables looked up with getenv (os.Getenv when
// nil). Malformed values are skipped and reported together.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	var errs []error
	lookup := func(key string) (string, bool) {
		v := strings.TrimSpace(getenv(EnvPrefix + key))
		return v, v != ""
	}
	bools := []struct {
		key string
		dst *bool
	}{
		{"DEBUG", &c.Debug},
		{"DARK_MODE", &c.DarkMode},
	}
	for _, f := range bools {
		if v, ok := lookup(f.key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, f.key, err))
				continue
			}
			*f.dst = b
		}
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"MIN_SIZE", &c.MinSize},
		{"PREFERRED_SIZE", &c.PreferredSize},
	}
	for _, f := range floats {
		if v, ok := lookup(f.key); ok {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, f.key, err))
				continue
			}
			*f.dst = n
		}
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"MAX_DISPLAY_WIDTH", &c.MaxDisplayWidth},
		{"IMAGE_CACHE_SIZE", &c.ImageCacheSize},
	}
	for _, f := range ints {
		if v, ok := lookup(f.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, f.key, err))
				continue
			}
			*f.dst = n
		}
	}
	if v, ok := lookup("SIZE_POLICY"); ok {
		c.SizePolicy = strings.ToLower(v)
	}
	if v, ok := lookup("LISTEN_ADDR"); ok {
		c.ListenAddr = v
	}
	return errors.Join(errs...)
}
