// Package style holds the colors and glyphs kiln prints with.
package style

import "github.com/charmbracelet/lipgloss"

// Palette. Ember marks project names, the rest map to log levels.
var (
	Ember  = lipgloss.Color("#D9480F")
	Slate  = lipgloss.Color("#5F6B7A")
	Red    = lipgloss.Color("#C92A2A")
	Yellow = lipgloss.Color("#E67700")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)
