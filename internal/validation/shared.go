package validation

import (
	"fmt"
	"strings"
	"time"
)

type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// validDate checks a YYYY-MM-DD date string, recording a field error if it is
// missing or malformed.
func validDate(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errors[field] = err.Error()
	}
}

// validTicker checks the ticker symbol, recording a field error if it is
// missing or too long.
func validTicker(errors map[string]string, value string) {
	if strings.TrimSpace(value) == "" {
		errors["ticker"] = "ticker is required"
	} else if len(value) > 10 {
		errors["ticker"] = "ticker must be 10 characters or less"
	}
}
