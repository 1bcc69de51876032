package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrInt(i int) *int { return &i }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Days: []DayImport{
			{
				Date:     "2026-02-01",
				Segments: []SegmentImport{{Kind: "deep", Start: "23:00", End: "06:30"}},
			},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_LegacyLabels(t *testing.T) {
	schema := &ImportSchema{Days: []DayImport{{
		Date:       "2026-02-01",
		Sleepiness: ptrInt(5),
		Segments: []SegmentImport{
			{Kind: "In-bed (布団に入っている)", Start: "22:30", End: "07:00"},
			{Kind: "Deep Sleep (ぐっすり)", Start: "23:00", End: "01:00"},
			{Kind: "Doze (うとうと)", Start: "01:00", End: "02:00"},
			{Kind: "Awake (眠れない)", Start: "02:00", End: "02:30"},
		},
		Events: []EventImport{{Kind: "toilet (トイレ)", At: "02:15"}},
	}}}
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_NoDays(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one day")
}

func TestValidateImportSchema_Errors(t *testing.T) {
	tests := []struct {
		name string
		day  DayImport
		want string
	}{
		{"missing date", DayImport{}, "days[0].date is required"},
		{"bad date", DayImport{Date: "01/02/2026"}, "invalid date format"},
		{"sleepiness low", DayImport{Date: "2026-02-01", Sleepiness: ptrInt(0)}, "sleepiness: must be 1-10"},
		{"sleepiness high", DayImport{Date: "2026-02-01", Sleepiness: ptrInt(11)}, "sleepiness: must be 1-10"},
		{"unknown segment", DayImport{Date: "2026-02-01", Segments: []SegmentImport{{Kind: "nap", Start: "13:00", End: "14:00"}}}, "unknown segment kind"},
		{"bad segment start", DayImport{Date: "2026-02-01", Segments: []SegmentImport{{Kind: "deep", Start: "25:00", End: "06:00"}}}, "segments[0].start"},
		{"bad segment end", DayImport{Date: "2026-02-01", Segments: []SegmentImport{{Kind: "deep", Start: "23:00", End: "6am"}}}, "segments[0].end"},
		{"event without kind", DayImport{Date: "2026-02-01", Events: []EventImport{{At: "02:00"}}}, "events[0].kind is required"},
		{"bad event time", DayImport{Date: "2026-02-01", Events: []EventImport{{Kind: "toilet", At: "2:00pm"}}}, "events[0].at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateImportSchema(&ImportSchema{Days: []DayImport{tt.day}})
			if assert.NotEmpty(t, errs) {
				assert.Contains(t, errs[0].Error(), tt.want)
			}
		})
	}
}

func TestValidateImportSchema_DuplicateDate(t *testing.T) {
	schema := &ImportSchema{Days: []DayImport{
		{Date: "2026-02-01"},
		{Date: "2026-02-02"},
		{Date: "2026-02-01"},
	}}
	errs := ValidateImportSchema(schema)
	if assert.Len(t, errs, 1) {
		assert.Contains(t, errs[0].Error(), "days[2].date: 2026-02-01 already given at days[0]")
	}
}

func TestValidateImportSchema_CollectsAllErrors(t *testing.T) {
	schema := &ImportSchema{Days: []DayImport{{
		Date:       "bad",
		Sleepiness: ptrInt(42),
		Events:     []EventImport{{Kind: "", At: "x"}},
	}}}
	assert.Len(t, ValidateImportSchema(schema), 4)
}
