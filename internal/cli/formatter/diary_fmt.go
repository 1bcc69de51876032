package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/report"
	"github.com/alexanderramin/somnus/internal/service"
)

const (
	summaryBarWidth  = 8
	summaryMemoRunes = 24
)

// FormatMonthSummary renders one row per calendar day with total sleep,
// sleepiness, toilet visits and event markers. Unlogged days are dimmed.
func FormatMonthSummary(month domain.Month, days []service.DaySummary) string {
	var b strings.Builder
	b.WriteString(Header("Sleep diary " + month.String()))
	b.WriteString("\n\n")

	headers := []string{"DATE", "SLEEP", "", "SLEEPINESS", "TOILET", "EVENTS", "MEMO"}
	rows := make([][]string, 0, len(days))
	logged := 0
	var total time.Duration
	for _, d := range days {
		date := d.Date.Format("Mon 02")
		if !d.Logged {
			rows = append(rows, []string{Dim(date), Dim("--"), "", Dim("--"), Dim("--"), "", ""})
			continue
		}
		logged++
		total += d.TotalSleep
		rows = append(rows, []string{
			date,
			FormatDuration(d.TotalSleep),
			RenderSleepBar(d.TotalSleep, summaryBarWidth),
			Sleepiness(d.Sleepiness),
			fmt.Sprintf("%d", d.ToiletCount),
			d.Icons(),
			Truncate(d.Memo, summaryMemoRunes),
		})
	}
	b.WriteString(RenderTable(headers, rows, 1, 4))

	b.WriteString("\n")
	if logged == 0 {
		b.WriteString(Dim("No days logged."))
		return b.String()
	}
	avg := total / time.Duration(logged)
	b.WriteString(fmt.Sprintf("%s %d/%d days  %s %s",
		Dim("Logged"), logged, len(days),
		Dim("Average sleep"), Bold(FormatDuration(avg))))
	return b.String()
}

// FormatDay renders a stored diary entry.
func FormatDay(l *domain.SleepLog) string {
	pairs := [][2]string{
		{"Date", HumanDate(l.Date)},
		{"Sleepiness", Sleepiness(l.Sleepiness)},
		{"Toilet", fmt.Sprintf("%d", l.ToiletCount)},
	}
	if l.Memo != "" {
		pairs = append(pairs, [2]string{"Memo", l.Memo})
	}

	var b strings.Builder
	b.WriteString(KeyValue(pairs))

	if len(l.Segments) > 0 {
		rows := make([][]string, 0, len(l.Segments))
		for _, s := range l.Segments {
			rows = append(rows, []string{s.Kind.Label(), s.StartAt, s.EndAt})
		}
		b.WriteString("\n\n")
		b.WriteString(RenderTable([]string{"SEGMENT", "FROM", "TO"}, rows))
	}
	if len(l.Events) > 0 {
		rows := make([][]string, 0, len(l.Events))
		for _, e := range l.Events {
			rows = append(rows, []string{domain.EventIcon(e.Kind) + " " + e.Kind, e.HappenedAt})
		}
		b.WriteString("\n")
		if len(l.Segments) == 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderTable([]string{"EVENT", "AT"}, rows))
	}
	return RenderBox("Day "+l.DateKey(), strings.TrimRight(b.String(), "\n"))
}

// FormatUser renders the profile fields printed on reports.
func FormatUser(u *domain.User) string {
	headerID := u.HeaderID
	if headerID == "" {
		headerID = Dim("--")
	}
	return KeyValue([][2]string{
		{"User", Bold(u.Username)},
		{"Report name", u.HeaderName()},
		{"Report ID", headerID},
		{"ID", TruncID(u.ID)},
	})
}

// FormatRenderResult summarizes a finished render written to path.
func FormatRenderResult(path string, bytes int, cached bool, res *report.Result) string {
	var b strings.Builder
	line := fmt.Sprintf("%s %s (%d bytes)", StyleGood.Render("✔ Wrote"), path, bytes)
	if cached {
		line += " " + Dim("[cached]")
	}
	b.WriteString(line)
	if res == nil || len(res.Skips) == 0 {
		return b.String()
	}
	for _, reason := range []report.SkipReason{report.SkipMissingAsset, report.SkipParse, report.SkipOutOfRangeRow} {
		if n := res.SkipCount(reason); n > 0 {
			b.WriteString("\n")
			b.WriteString(StyleFair.Render(fmt.Sprintf("  ! %d skipped: %s", n, reason)))
		}
	}
	return b.String()
}
