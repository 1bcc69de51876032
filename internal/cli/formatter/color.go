package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox tones, named for what they mean on a sleep report.
var (
	ColorGood  = lipgloss.Color("#8ec07c")
	ColorFair  = lipgloss.Color("#fabd2f")
	ColorPoor  = lipgloss.Color("#fb4934")
	ColorMuted = lipgloss.Color("#928374")
	ColorText  = lipgloss.Color("#ebdbb2")
	ColorTitle = lipgloss.Color("#fe8019")
)

var (
	StyleGood   = lipgloss.NewStyle().Foreground(ColorGood)
	StyleFair   = lipgloss.NewStyle().Foreground(ColorFair)
	StylePoor   = lipgloss.NewStyle().Foreground(ColorPoor)
	StyleMuted  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleTitle  = lipgloss.NewStyle().Foreground(ColorTitle).Bold(true)
	StyleStrong = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
)

// SleepinessStyle colors a daytime sleepiness score: 1-3 good, 4-6 fair,
// 7-10 poor. Unset scores are muted.
func SleepinessStyle(score int) lipgloss.Style {
	switch {
	case score <= 0:
		return StyleMuted
	case score <= 3:
		return StyleGood
	case score <= 6:
		return StyleFair
	default:
		return StylePoor
	}
}

// Sleepiness renders an optional score, or a muted dash when unset.
func Sleepiness(score *int) string {
	if score == nil {
		return Dim("--")
	}
	return SleepinessStyle(*score).Render(fmt.Sprintf("%d/10", *score))
}

// Header upper-cases text and rules it off with a line of the same width.
func Header(text string) string {
	title := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(title))
	return StyleTitle.Render(title) + "\n" + StyleMuted.Render(rule)
}

func Dim(text string) string  { return StyleMuted.Render(text) }
func Bold(text string) string { return StyleStrong.Render(text) }
