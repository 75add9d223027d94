package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OutputDateLayout is the layout used for dates in responses.
const OutputDateLayout = "2006-01-02"

// acceptedDateLayouts lists the date formats accepted in requests, tried in order.
var acceptedDateLayouts = []string{
	"2/1/06",
	"2/1/2006",
	"2006-01-02",
	time.RFC3339,
}

// FlexibleDate is a calendar date that accepts DD/MM/YY, DD/MM/YYYY or YYYY-MM-DD.
type FlexibleDate struct {
	time.Time
}

// ParseFlexibleDate parses a date in any accepted layout.
func ParseFlexibleDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *FlexibleDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	t, err := ParseFlexibleDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d FlexibleDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(OutputDateLayout))
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(OutputDateLayout)
	return &s
}
