package theme

// Centralized theming for the cropper UI: palette constants and SetDark, which activates a
// base theme and configures the semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background, matches the surface behind the image
	ColorSurface   = "#ffffff"
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#00d4ff" // selection accent, confirm button
	ColorPrimaryHi = "#00b8e0"
	ColorSecondary = "#e2e8f0"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Secondary string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Primary:   ColorPrimary,
			Secondary: "#334155",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton   = "primary.TButton"
	StyleSecondaryButton = "secondary.TButton"
	StyleHintLabel       = "hint.TLabel"
	StylePlaceholder     = "placeholder.TLabel"
)

var darkMode bool

// SetDark selects the light or dark palette and (re)applies the widget styles.
// Call it before building widgets that read CurrentPalette.
func SetDark(dark bool) {
	darkMode = dark
	applyStyles(darkMode)
}

func applyStyles(dark bool) {
	p := CurrentPalette()
	_ = ActivateTheme("azure light")
	if dark {
		_ = ActivateTheme("azure dark")
	}
	App.Configure(Background(p.AppBg))

	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("#0f172a"),
		Padding("6p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleSecondaryButton,
		Background(p.Secondary),
		Foreground(p.Text),
		Padding("6p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleHintLabel,
		Foreground(p.TextMuted),
		Background(p.AppBg),
		Padding("2p 1p"),
	)
	StyleConfigure(StylePlaceholder,
		Foreground(p.TextMuted),
		Background(p.Surface),
		Padding("12p 8p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
