package assets

import (
	_ "embed"
)

// SamplePNG contains the raw PNG bytes of the demo image shown with -demo.
//
//go:embed sample.png
var SamplePNG []byte
