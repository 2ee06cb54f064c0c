package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hudLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	hudTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	hudLowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(1, 4).
			Align(lipgloss.Center)
	modalTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	modalHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// lowTime is the number of seconds below which the timer is highlighted.
const lowTime = 10

// hud shows time and score above the playfield and the round-over message.
// It implements catstack.Display and catstack.Notifier.
type hud struct {
	timeRemaining int
	score         int

	roundOver  bool
	finalScore int
}

func (h *hud) SetTimeRemaining(seconds int) { h.timeRemaining = seconds }
func (h *hud) SetScore(score int)           { h.score = score }

// RoundOver opens the blocking round-over message.
func (h *hud) RoundOver(finalScore int) {
	h.roundOver = true
	h.finalScore = finalScore
}

// dismiss closes the round-over message.
func (h *hud) dismiss() {
	h.roundOver = false
}

// modalOpen reports whether input is held by the round-over message.
func (h *hud) modalOpen() bool {
	return h.roundOver
}

// view renders the status line at the given width.
func (h *hud) view(title string, width int) string {
	timeStyle := hudValueStyle
	if h.timeRemaining <= lowTime {
		timeStyle = hudLowStyle
	}

	left := hudTitleStyle.Render(title)
	right := hudLabelStyle.Render("Time: ") + timeStyle.Render(fmt.Sprintf("%ds", h.timeRemaining)) +
		hudLabelStyle.Render("  Score: ") + hudValueStyle.Render(fmt.Sprintf("%d", h.score))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// modal renders the round-over message centered in a width x height area.
func (h *hud) modal(width, height int) string {
	body := modalTitleStyle.Render("Time's up!") + "\n\n" +
		fmt.Sprintf("Your score is: %d", h.finalScore) + "\n\n" +
		modalHintStyle.Render("press enter to continue")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modalStyle.Render(body))
}
