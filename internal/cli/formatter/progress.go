package formatter

import (
	"strings"
	"time"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// SleepGoal is the night length a full sleep bar stands for.
const SleepGoal = 8 * time.Hour

// RenderSleepBar renders total sleep as a compact bar against SleepGoal,
// e.g. ██████░░ for six hours. Green from 7h, yellow from 5h, red below.
func RenderSleepBar(total time.Duration, width int) string {
	if width < 2 {
		width = 2
	}
	pct := float64(total) / float64(SleepGoal)
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGood
	switch {
	case total < 5*time.Hour:
		style = StylePoor
	case total < 7*time.Hour:
		style = StyleFair
	}
	return style.Render(bar)
}
