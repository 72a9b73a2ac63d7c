package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// Date layouts used in the database. Calendar-only fields (expiration,
// acquired date) use DateLayout; event timestamps use RFC3339.
const DateLayout = "2006-01-02"

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Note: mirrors validation.ParseTime — both are intentionally kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(DateLayout, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// parseNullTime converts a nullable date column into a *time.Time.
func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullFloat converts a nullable REAL column into a *float64.
func nullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

// nullString converts a nullable TEXT column into a *string.
func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// timeArg formats a timestamp for storage.
func timeArg(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// dateArg formats a calendar date for storage.
func dateArg(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// timePtrArg formats an optional timestamp for storage, passing NULL through.
func timePtrArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timeArg(*t)
}

// stringPtrArg passes an optional TEXT value or NULL.
func stringPtrArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// floatPtrArg passes an optional REAL value or NULL.
func floatPtrArg(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
