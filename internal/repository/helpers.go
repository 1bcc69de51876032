package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/somnus/internal/domain"
)

// nullableIntToValue converts a *int to a value suitable for storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the int value.
func nullableIntToValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullIntToPtr converts a scanned sql.NullInt64 back to a *int.
func nullIntToPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// parseTimestamp parses an RFC3339 column, returning the zero time when the
// value is malformed.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
