package utils

import "rhystmorgan/clientDesk/internal/models"

// ColourScheme holds the Catppuccin Mocha shades the interface draws with
type ColourScheme struct {
	Mauve    string
	Red      string
	Yellow   string
	Green    string
	Blue     string
	Text     string
	Subtext1 string
	Subtext0 string
	Overlay1 string
	Surface1 string
	Surface0 string
	Base     string
}

var Colours = ColourScheme{
	Mauve:    "#cba6f7",
	Red:      "#f38ba8",
	Yellow:   "#f9e2af",
	Green:    "#a6e3a1",
	Blue:     "#89b4fa",
	Text:     "#cdd6f4",
	Subtext1: "#bac2de",
	Subtext0: "#a6adc8",
	Overlay1: "#7f849c",
	Surface1: "#45475a",
	Surface0: "#313244",
	Base:     "#1e1e2e",
}

// StatusColour maps a record status to its badge colour. Unknown statuses
// returned by the backend are shown muted.
func StatusColour(status models.Status) string {
	switch status {
	case models.StatusActive:
		return Colours.Green
	case models.StatusInactive:
		return Colours.Overlay1
	case models.StatusPending:
		return Colours.Yellow
	case models.StatusBlocked:
		return Colours.Red
	default:
		return Colours.Subtext0
	}
}
