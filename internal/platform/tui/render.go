package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/park-guardian/internal/core"
)

// palette maps core colors to terminal colors (ANSI 16 plus two 256-color
// extras for orange and gray).
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var styles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	m := make(map[core.Color]lipgloss.Style, len(palette)+1)
	m[core.ColorDefault] = lipgloss.NewStyle()
	for c, fg := range palette {
		m[c] = lipgloss.NewStyle().Foreground(fg)
	}
	return m
}

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := styles[c]; ok {
		return st
	}
	return styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string.
// Runs of same-colored cells share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
