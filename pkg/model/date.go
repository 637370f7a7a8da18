package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

const (
	// WireDateLayout is the strict request/response format for calendar dates.
	WireDateLayout = "2006-01-02"

	// DisplayDateLayout is the long human-readable form used when reporting
	// availability gaps, e.g. "Monday, 05 May, 2025".
	DisplayDateLayout = "Monday, 02 January, 2006"
)

// Date is a calendar date with no time-of-day component. The zero value is
// the zero date. Dates are normalized to midnight UTC so equality and
// ordering follow plain calendar semantics.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its UTC calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// Today returns the current UTC calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(WireDateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected format YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) AddDays(n int) Date { return DateOf(d.t.AddDate(0, 0, n)) }
func (d Date) Time() time.Time    { return d.t }
func (d Date) String() string     { return d.t.Format(WireDateLayout) }

// Display renders the date in the long human-readable form.
func (d Date) Display() string {
	return d.t.Format(DisplayDateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.t.Format(WireDateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", string(data))
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Dates persist as BSON datetimes at midnight UTC, matching how the
// collection stores start_date/end_date.
func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.t)
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var parsed time.Time
	raw := bson.RawValue{Type: t, Value: data}
	if err := raw.Unmarshal(&parsed); err != nil {
		return fmt.Errorf("failed to decode date: %w", err)
	}
	*d = DateOf(parsed)
	return nil
}
