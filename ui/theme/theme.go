package theme

// Centralized theming for the node panel and the selection overlay.
// InitStyles activates a base theme and configures the semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Panel palette (light mode).
const (
	ColorBg        = "#f7f9fb"
	ColorSurface   = "#ffffff"
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb"
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// Overlay palette. The overlay is always dark regardless of mode.
const (
	ColorBackdrop   = "#000000"
	ColorModal      = "#111111"
	ColorCanvasArea = "#222222"
	ColorModalText  = "#eeeeee"
	ColorReadout    = "#aaaaaa"
	ColorToastBg    = "#222222"
	ColorToastText  = "#ffffff"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
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
			Primary:   "#3b82f6",
			Danger:    "#ef4444",
			Accent:    "#10b981",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// Style names used with Style(...).
const (
	StyleOpenButton   = "open.TButton"
	StyleApplyButton  = "apply.TButton"
	StyleCloseButton  = "close.TButton"
	StyleTitleLabel   = "title.TLabel"
	StyleReadoutLabel = "readout.TLabel"
	StyleToastLabel   = "toast.TLabel"
	StyleStatusLabel  = "status.TLabel"
)

var darkMode bool

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(darkMode) }

// SetDark switches mode and reapplies styles. Returns the new mode.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(dark bool) {
	p := CurrentPalette()
	if dark {
		_ = ActivateTheme("azure dark")
	} else {
		_ = ActivateTheme("azure light")
	}
	App.Configure(Background(p.AppBg))

	StyleConfigure(StyleOpenButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(p.TextMuted),
		Background(p.Surface),
		Padding("2p 1p"),
	)

	// overlay
	StyleConfigure(StyleApplyButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("10p 7p"),
		Borderwidth(0),
	)
	StyleConfigure(StyleCloseButton,
		Background(ColorCanvasArea),
		Foreground(ColorModalText),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleTitleLabel,
		Foreground(ColorModalText),
		Background(ColorModal),
		Font("helvetica", 11, "bold"),
	)
	StyleConfigure(StyleReadoutLabel,
		Foreground(ColorReadout),
		Background(ColorModal),
		Font("helvetica", 9, "italic"),
	)
	StyleConfigure(StyleToastLabel,
		Foreground(ColorToastText),
		Background(ColorToastBg),
		Padding("8p 6p"),
	)
}
