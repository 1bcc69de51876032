package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/report"
	"github.com/alexanderramin/somnus/internal/repository"
)

// SpreadsheetHeader is the first row of the monthly export.
var SpreadsheetHeader = []string{
	"Date",
	"Sleepiness",
	"Total Sleep",
	"Toilet",
	"Segments",
	"Events",
	"Memo",
}

var spreadsheetColumnWidths = []float64{12, 11, 12, 8, 40, 30, 40}

func (s *reportService) ExportSpreadsheet(ctx context.Context, username string, month domain.Month, w io.Writer) (err error) {
	defer observe(ctx, s.observer, "export-spreadsheet", time.Now(), map[string]any{"month": month.String()}, &err)

	var logs []*domain.SleepLog
	u, err := s.profiles.Get(ctx, username)
	switch {
	case err == nil:
		logs, err = s.logs.ListRange(ctx, u.ID, month.First(), month.Last())
		if err != nil {
			return err
		}
	case repository.IsNotFound(err):
		err = nil
	default:
		return err
	}
	return writeMonthSheet(month, logs, w)
}

// writeMonthSheet writes one row per calendar day; days without an entry
// keep only their date.
func writeMonthSheet(month domain.Month, logs []*domain.SleepLog, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := month.String()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for col, title := range SpreadsheetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("setting header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("styling header cell %s: %w", cell, err)
		}
		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet, colName, colName, spreadsheetColumnWidths[col]); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	byDay := make(map[int]*domain.SleepLog, len(logs))
	for _, l := range logs {
		byDay[l.Date.Day()] = l
	}
	for day := 1; day <= month.Days(); day++ {
		date := month.First().AddDate(0, 0, day-1)
		row := []any{date.Format(domain.DateLayout)}
		if l, ok := byDay[day]; ok {
			row = append(row, logRow(l)...)
		}
		cell, _ := excelize.CoordinatesToCellName(1, day+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row for %s: %w", date.Format(domain.DateLayout), err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", report.ErrSinkWrite, err)
	}
	return nil
}

func logRow(l *domain.SleepLog) []any {
	var sleepiness any = ""
	if l.Sleepiness != nil {
		sleepiness = *l.Sleepiness
	}
	segments := make([]string, 0, len(l.Segments))
	for _, s := range l.Segments {
		segments = append(segments, fmt.Sprintf("%s %s-%s", s.Kind, s.StartAt, s.EndAt))
	}
	events := make([]string, 0, len(l.Events))
	for _, e := range l.Events {
		events = append(events, e.Kind+" "+e.HappenedAt)
	}
	res := normalizeLog(l)
	return []any{
		sleepiness,
		report.FormatDuration(res.TotalSleep),
		l.ToiletCount,
		strings.Join(segments, ", "),
		strings.Join(events, ", "),
		l.Memo,
	}
}
