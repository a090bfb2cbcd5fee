package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"log/slog"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/soocke/crop-widget-go/domain/geometry"
	"github.com/soocke/crop-widget-go/ui/images"
)

// DefaultCacheSize bounds the number of decoded images kept across host renders.
const DefaultCacheSize = 8

// ImageModel holds the image being cropped in two resolutions: the natural (decoded) image
// and the display copy the selection coordinates refer to. The zero value is not usable;
// construct with NewImageModel. Access happens on the UI thread only.
type ImageModel struct {
	logger   *slog.Logger
	maxWidth int
	cache    *lru.Cache[string, image.Image]
	key      string
	natural  image.Image
	display  image.Image
}

// NewImageModel returns a model scaling images to at most maxDisplayWidth pixels wide.
func NewImageModel(maxDisplayWidth, cacheSize int, logger *slog.Logger) (*ImageModel, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("image cache: %w", err)
	}
	return &ImageModel{logger: logger, maxWidth: maxDisplayWidth, cache: cache}, nil
}

// Load decodes a base64 payload and makes it the current image. An empty payload clears
// the model and returns images.ErrEmptyImage. Identical payloads are served from cache.
func (m *ImageModel) Load(b64 string) error {
	if m == nil {
		return nil
	}
	raw, err := images.Base64Bytes(b64)
	if err != nil {
		m.Clear()
		return err
	}
	sum := sha256.Sum256(raw)
	key := hex.EncodeToString(sum[:])
	if key == m.key && m.natural != nil {
		return nil
	}
	if img, ok := m.cache.Get(key); ok {
		m.set(key, img)
		return nil
	}
	img, format, err := images.DecodeBytes(raw)
	if err != nil {
		m.Clear()
		return err
	}
	m.cache.Add(key, img)
	if m.logger != nil {
		b := img.Bounds()
		m.logger.Info("image decoded", "format", format, "width", b.Dx(), "height", b.Dy(), "size", humanize.Bytes(uint64(len(raw))))
	}
	m.set(key, img)
	return nil
}

func (m *ImageModel) set(key string, img image.Image) {
	m.key = key
	m.natural = img
	m.display = images.ScaleToWidth(img, m.maxWidth)
}

// Clear drops the current image. Cached decodes are kept.
func (m *ImageModel) Clear() {
	if m == nil {
		return
	}
	m.key, m.natural, m.display = "", nil, nil
}

// Loaded reports whether an image is present.
func (m *ImageModel) Loaded() bool { return m != nil && m.display != nil }

func (m *ImageModel) Natural() image.Image {
	if m == nil {
		return nil
	}
	return m.natural
}

func (m *ImageModel) Display() image.Image {
	if m == nil {
		return nil
	}
	return m.display
}

// DisplaySize is the container size the selection is clamped to.
func (m *ImageModel) DisplaySize() geometry.Size { return sizeOf(m.Display()) }

// NaturalSize is the original image resolution.
func (m *ImageModel) NaturalSize() geometry.Size { return sizeOf(m.Natural()) }

func sizeOf(img image.Image) geometry.Size {
	if img == nil {
		return geometry.Size{}
	}
	b := img.Bounds()
	return geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}
