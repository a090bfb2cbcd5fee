// Package bridge defines the contract between the crop widget and its host: the arguments
// received at mount, the value reported on confirm, and the lifecycle signals.
package bridge

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/soocke/crop-widget-go/domain/geometry"
)

// Message types exchanged with the host.
const (
	TypeRender            = "render"
	TypeComponentReady    = "componentReady"
	TypeSetFrameHeight    = "setFrameHeight"
	TypeSetComponentValue = "setComponentValue"
)

// ErrNoConnection is returned when a message is sent while no host is attached.
var ErrNoConnection = errors.New("bridge: no host connection")

// Bridge is implemented by host adapters. The widget calls Ready once after mount,
// SetFrameHeight whenever its content changes and SetComponentValue on confirm.
type Bridge interface {
	Ready()
	SetFrameHeight(height int)
	SetComponentValue(v Value)
}

// Args are the host provided mount arguments.
type Args struct {
	ImageB64 string
	Box      *geometry.Rect
	// MinSize is zero when the host did not send one; the widget's configured minimum applies.
	MinSize float64
}

// ParseArgs decodes the host argument object. Missing fields stay zero; an empty payload
// yields the zero Args.
func ParseArgs(raw []byte) (Args, error) {
	var args Args
	if len(raw) == 0 {
		return args, nil
	}
	if !gjson.ValidBytes(raw) {
		return args, fmt.Errorf("parse args: invalid json")
	}
	res := gjson.ParseBytes(raw)
	if res.Type == gjson.Null {
		return args, nil
	}
	if !res.IsObject() {
		return args, fmt.Errorf("parse args: expected object, got %s", res.Type)
	}
	args.ImageB64 = res.Get("image_b64").String()
	if box := res.Get("box"); box.IsObject() {
		args.Box = &geometry.Rect{
			X: box.Get("x").Float(),
			Y: box.Get("y").Float(),
			W: box.Get("w").Float(),
			H: box.Get("h").Float(),
		}
	}
	if ms := res.Get("minSize"); ms.Exists() && ms.Float() > 0 {
		args.MinSize = ms.Float()
	}
	return args, nil
}

// Value is reported to the host on confirm. Rect is in rendered-image coordinates; Natural,
// when known, is the same selection in original image pixels.
type Value struct {
	Rect    geometry.Rect
	Natural *geometry.Rect
}

// MarshalJSON encodes v as {"rect":{...}} plus "natural" when set.
func (v Value) MarshalJSON() ([]byte, error) {
	out, err := sjson.SetBytes([]byte(`{}`), "rect", v.Rect)
	if err != nil {
		return nil, err
	}
	if v.Natural != nil {
		if out, err = sjson.SetBytes(out, "natural", *v.Natural); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeReady builds the componentReady message.
func EncodeReady() []byte {
	out, _ := sjson.SetBytes([]byte(`{}`), "type", TypeComponentReady)
	out, _ = sjson.SetBytes(out, "apiVersion", 1)
	return out
}

// EncodeFrameHeight builds the setFrameHeight message.
func EncodeFrameHeight(height int) []byte {
	out, _ := sjson.SetBytes([]byte(`{}`), "type", TypeSetFrameHeight)
	out, _ = sjson.SetBytes(out, "height", height)
	return out
}

// EncodeComponentValue builds the setComponentValue message.
func EncodeComponentValue(v Value) ([]byte, error) {
	val, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	out, _ := sjson.SetBytes([]byte(`{}`), "type", TypeSetComponentValue)
	out, err = sjson.SetRawBytes(out, "value", val)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	out, _ = sjson.SetBytes(out, "dataType", "json")
	return out, nil
}
