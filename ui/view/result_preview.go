package view

import (
	"fmt"
	"image"

	"github.com/soocke/crop-widget-go/ui/images"
	"github.com/soocke/crop-widget-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ResultPreview shows a thumbnail of the last confirmed crop.
type ResultPreview interface {
	ShowResult(img image.Image)
	Reset()
}

type resultPreview struct {
	label   *LabelWidget
	caption *TLabelWidget
	photo   *Img
}

const (
	// Max thumbnail dimensions; scaling is proportional.
	maxPreviewW = 240
	maxPreviewH = 160
)

// NewResultPreview creates the caption and thumbnail labels at row (caption) and row+1.
func NewResultPreview(row int) ResultPreview {
	v := &resultPreview{}
	v.caption = TLabel(Txt("Cropped: <none>"), Style(theme.StyleHintLabel), Anchor("w"))
	Grid(v.caption, Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	v.photo = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 1, 1)))))
	v.label = Label(Image(v.photo), Borderwidth(1), Relief("sunken"))
	Grid(v.label, Row(row+1), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func (v *resultPreview) ShowResult(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	b := img.Bounds()
	scaled := images.ScaleToFit(img, maxPreviewW, maxPreviewH)
	v.replace(images.EncodePNG(scaled))
	v.caption.Configure(Txt(fmt.Sprintf("Cropped: %d × %d px", b.Dx(), b.Dy())))
}

func (v *resultPreview) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.replace(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 1, 1))))
	v.caption.Configure(Txt("Cropped: <none>"))
}

func (v *resultPreview) replace(pngBytes []byte) {
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.photo))
}
