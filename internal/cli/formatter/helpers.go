package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorMuted).
	Padding(1, 2)

// RenderBox frames content in a rounded box, titled when title is set.
func RenderBox(title, content string) string {
	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleTitle.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// HumanDate returns a diary date with its weekday, e.g. "Mon Feb 2, 2026".
func HumanDate(t time.Time) string {
	return t.Format("Mon Jan 2, 2006")
}

// FormatDuration renders a sleep total as "7h 30m". Zero and negative
// totals render as "0m".
func FormatDuration(d time.Duration) string {
	min := int(d.Round(time.Minute) / time.Minute)
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// TruncID shows the leading uuid group, which is enough to tell users apart.
func TruncID(id string) string {
	short, _, _ := strings.Cut(id, "-")
	if len(short) > 8 {
		short = short[:8]
	}
	return Dim(short)
}

// Truncate shortens s to at most n visible runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// KeyValue renders an aligned "label  value" block.
func KeyValue(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		pad := width - lipgloss.Width(p[0])
		b.WriteString(Dim(p[0]))
		b.WriteString(strings.Repeat(" ", pad+colGap))
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
