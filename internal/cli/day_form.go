package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/somnus/internal/cli/formatter"
	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// somnusHuhTheme returns a custom huh theme using the formatter's Gruvbox palette.
func somnusHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorTitle).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorTitle)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGood)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorTitle)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorTitle)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	return t
}

// dayFormValues backs the interactive day entry. Segments and events are
// space-separated lists in the same syntax as the --segment and --event
// flags.
type dayFormValues struct {
	Sleepiness int
	Segments   string
	Events     string
	Memo       string
}

// dayFormValuesFrom prefills the form from an existing entry.
func dayFormValuesFrom(l *domain.SleepLog) dayFormValues {
	v := dayFormValues{Memo: l.Memo}
	if l.Sleepiness != nil {
		v.Sleepiness = *l.Sleepiness
	}
	segs := make([]string, 0, len(l.Segments))
	for _, s := range l.Segments {
		segs = append(segs, fmt.Sprintf("%s,%s,%s", s.Kind, s.StartAt, s.EndAt))
	}
	evs := make([]string, 0, len(l.Events))
	for _, e := range l.Events {
		evs = append(evs, fmt.Sprintf("%s,%s", e.Kind, e.HappenedAt))
	}
	v.Segments = strings.Join(segs, " ")
	v.Events = strings.Join(evs, " ")
	return v
}

// apply copies the form answers onto l.
func (v dayFormValues) apply(l *domain.SleepLog) error {
	segs, err := parseSegments(splitList(v.Segments))
	if err != nil {
		return err
	}
	evs, err := parseEvents(splitList(v.Events))
	if err != nil {
		return err
	}
	l.Segments = segs
	l.Events = evs
	l.Memo = strings.TrimSpace(v.Memo)
	l.Sleepiness = nil
	if v.Sleepiness > 0 {
		s := v.Sleepiness
		l.Sleepiness = &s
	}
	return nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ';' || r == '\n' || r == '\t'
	})
}

func validateSegmentList(s string) error {
	_, err := parseSegments(splitList(s))
	return err
}

func validateEventList(s string) error {
	_, err := parseEvents(splitList(s))
	return err
}

func sleepinessOptions() []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("not recorded", 0)}
	for i := 1; i <= 10; i++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(i), i))
	}
	return opts
}

// dayForm creates the huh form for one night's entry.
func dayForm(date string, v *dayFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sleep segments for "+date).
				Description("kind,HH:MM,HH:MM separated by spaces; kinds: "+segmentKindList()).
				Placeholder("in_bed,22:30,07:00 deep,23:00,06:30").
				Value(&v.Segments).
				Validate(validateSegmentList),
			huh.NewInput().
				Title("Events").
				Description("kind,HH:MM separated by spaces; e.g. "+strings.Join(domain.EventKinds, ", ")).
				Placeholder("sleep_med,22:00 toilet,02:30").
				Value(&v.Events).
				Validate(validateEventList),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Daytime sleepiness (1 = alert, 10 = very sleepy)").
				Options(sleepinessOptions()...).
				Value(&v.Sleepiness),
			huh.NewText().
				Title("Memo").
				Value(&v.Memo),
		),
	).WithTheme(somnusHuhTheme()).WithShowHelp(false)
}
