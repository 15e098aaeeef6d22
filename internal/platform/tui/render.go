package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/celebration/internal/core"
	"github.com/vovakirdan/celebration/internal/minigame"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorPink:    lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// drawHUD writes the title, run statistics and message rows.
func drawHUD(s *core.Screen, snap minigame.Snapshot) {
	s.DrawTextCentered(0, "🎈 Happy Birthday! 🎈", core.ColorPink)

	if snap.Disabled {
		s.DrawTextCentered(1, "The balloon game is not available on this screen.", core.ColorGray)
		return
	}

	stats := fmt.Sprintf("Score: %d   Popped: %d   Missed: %d   [%s]",
		snap.Score, snap.Popped, snap.Missed, snap.State)
	s.DrawText(1, 1, stats, core.ColorWhite)

	msg := snap.Message
	if msg == "" && snap.State == minigame.StateIdle {
		msg = "Press s to start popping balloons."
	}
	s.DrawText(1, 2, msg, core.ColorYellow)
}

// drawPlayfield draws the frame around the play area and every live
// balloon inside it. Balloons are labelled with their keyboard slot; those
// left outside the frame by a shrinking terminal are not drawn.
func drawPlayfield(s *core.Screen, frame core.Rect, snap minigame.Snapshot) {
	s.DrawBox(frame, core.ColorGray)
	if snap.Disabled {
		return
	}

	inner := frame.Inset(1)
	for i, e := range snap.Entities {
		box := core.NewRect(inner.X+e.X, inner.Y+e.Y, e.W, e.H)
		if !box.Within(inner) {
			continue
		}
		drawBalloon(s, box, i+1, core.BalloonColor(e.Seq))
	}
}

// drawBalloon renders one balloon: a rounded body on every row but the last,
// and a string hanging from the middle of the last row.
func drawBalloon(s *core.Screen, box core.Rect, slot int, color core.Color) {
	if box.Empty() {
		return
	}

	bodyRows := box.H - 1
	if bodyRows < 1 {
		bodyRows = 1
	}

	for y := box.Y; y < box.Y+bodyRows; y++ {
		s.DrawRect(core.NewRect(box.X, y, box.W, 1), '█', color)
		if box.W >= 2 {
			s.SetCell(box.X, y, core.Cell{Rune: '(', Color: color})
			s.SetCell(box.Right()-1, y, core.Cell{Rune: ')', Color: color})
		}
	}

	if slot >= 1 && slot <= 9 {
		s.SetCell(box.X+box.W/2, box.Y, core.Cell{Rune: rune('0' + slot), Color: core.ColorWhite})
	}

	if box.H > 1 {
		s.SetCell(box.X+box.W/2, box.Bottom()-1, core.Cell{Rune: '╿', Color: core.ColorGray})
	}
}
