package models

import (
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the wire format for booking timestamps: local
// date-time without a zone offset.
const DateTimeLayout = "2006-01-02T15:04:05"

// DateTime wraps time.Time to serialize as local date-time without offset.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func ParseDateTime(s string) (DateTime, error) {
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid date-time %q: expected %s", s, DateTimeLayout)
	}
	return DateTime{Time: t}, nil
}

func (d DateTime) String() string {
	return d.Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
