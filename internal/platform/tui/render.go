package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stackcats/internal/core"
)

// colorPair keys a style by foreground and background.
type colorPair struct {
	fg, bg core.Color
}

// styleCache holds one lipgloss style per color pair seen so far.
type styleCache map[colorPair]lipgloss.Style

func (c styleCache) style(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}
	if st, ok := c[key]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if code := fg.Code(); code != "" {
		st = st.Foreground(lipgloss.Color(code))
	}
	if code := bg.Code(); code != "" {
		st = st.Background(lipgloss.Color(code))
	}
	c[key] = st
	return st
}

// renderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colors share one styled run.
func renderScreen(s *core.Screen, styles styleCache) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.style(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
