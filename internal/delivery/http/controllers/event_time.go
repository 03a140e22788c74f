package controllers

import (
	"encoding/json"
	"fmt"
	"time"
)

// eventTimeLayouts are tried in order. Zone-less values (as sent by
// datetime-local and date form inputs) are read as UTC.
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// eventTime is a request timestamp. An empty string or null leaves it unset.
type eventTime struct {
	time.Time
}

func (t *eventTime) UnmarshalJSON(b []byte) error {
	var s string
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range eventTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// ptr returns nil for a missing or empty timestamp.
func (t *eventTime) ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
