package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Display hints are matplotlib-style names: single letters or CSS names.
var palette = map[string]lipgloss.Color{
	"b": "#1f77b4", "g": "#2ca02c", "r": "#d62728", "c": "#17becf",
	"m": "#e377c2", "y": "#bcbd22", "k": "#7f7f7f", "w": "#ffffff",

	"blue":       "#0000ff",
	"brown":      "#a52a2a",
	"chocolate":  "#d2691e",
	"cyan":       "#00ffff",
	"darkred":    "#8b0000",
	"darksalmon": "#e9967a",
	"gold":       "#ffd700",
	"goldenrod":  "#daa520",
	"gray":       "#808080",
	"grey":       "#808080",
	"green":      "#008000",
	"orange":     "#ffa500",
	"red":        "#ff0000",
	"royalblue":  "#4169e1",
	"white":      "#ffffff",
	"yellow":     "#ffff00",
}

const fallbackColor = lipgloss.Color("#ffffff")

// BodyColor resolves a display hint. Hex strings pass through and unknown
// names render white.
func BodyColor(hint string) lipgloss.Color {
	if strings.HasPrefix(hint, "#") && len(hint) == 7 {
		return lipgloss.Color(hint)
	}
	if c, ok := palette[strings.ToLower(hint)]; ok {
		return c
	}
	return fallbackColor
}
