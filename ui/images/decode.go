package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned when no image data was supplied.
var ErrEmptyImage = errors.New("images: empty image data")

// DecodeBase64 decodes a base64 image payload. A data URL prefix
// ("data:image/png;base64,") is accepted and stripped. It returns the decoded image and the
// detected format name.
func DecodeBase64(s string) (image.Image, string, error) {
	raw, err := Base64Bytes(s)
	if err != nil {
		return nil, "", err
	}
	return DecodeBytes(raw)
}

// DecodeBytes decodes an encoded image (PNG, JPEG, GIF, BMP or WebP).
func DecodeBytes(raw []byte) (image.Image, string, error) {
	if len(raw) == 0 {
		return nil, "", ErrEmptyImage
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Base64Bytes returns the raw bytes of a base64 (or data URL) payload.
func Base64Bytes(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	if s == "" {
		return nil, ErrEmptyImage
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// Some hosts strip padding.
		if raw2, err2 := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err2 == nil {
			return raw2, nil
		}
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyImage
	}
	return raw, nil
}

// EncodeBase64PNG encodes img as PNG and returns the base64 text.
func EncodeBase64PNG(img image.Image) string {
	return base64.StdEncoding.EncodeToString(EncodePNG(img))
}
