package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalid                   = errors.New("invalid value")
	ErrDateInPast                = fmt.Errorf("%w: date must not be before today", ErrInvalid)
	ErrTimeOutsideOperatingHours = fmt.Errorf("%w: time must be between %s and %s", ErrInvalid, OpeningTime, ClosingTime)
	ErrInvalidTimeFormat         = fmt.Errorf("%w: time must be in HH:MM format", ErrInvalid)
	ErrInvalidTimeRange          = fmt.Errorf("%w: end time must be after start time", ErrInvalid)
)

const dateLayout = "2006-01-02"

// Clinic operating hours. Every Time lies within [OpeningTime, ClosingTime].
var (
	OpeningTime = Time{minutes: 8 * 60}
	ClosingTime = Time{minutes: 22 * 60}
)

// now is replaced in tests that need a fixed "today".
var now = time.Now

// Date is a calendar day normalized to midnight UTC.
type Date struct {
	t time.Time
}

// NewDate creates a Date for the calendar day of t. Days before today are rejected.
func NewDate(t time.Time) (Date, error) {
	d := RehydrateDate(t)
	if d.Before(Today()) {
		return Date{}, ErrDateInPast
	}
	return d, nil
}

// RehydrateDate recreates a Date from persisted state without the "not in the past" check.
func RehydrateDate(t time.Time) Date {
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string into a Date that is not in the past.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalid)
	}
	return NewDate(t)
}

// Today returns the current calendar day.
func Today() Date {
	return RehydrateDate(now())
}

func (d Date) Time() time.Time        { return d.t }
func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) String() string         { return d.t.Format(dateLayout) }

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// At combines the date with a clock time in the given location.
func (d Date) At(clock Time, loc *time.Location) time.Time {
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
}

// Time is a clock time within operating hours, stored as minutes since midnight.
type Time struct {
	minutes int
}

// NewTime creates a Time, rejecting values outside operating hours.
func NewTime(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Time{}, ErrInvalidTimeFormat
	}
	return timeFromMinutes(hour*60 + minute)
}

// ParseTime parses an HH:MM string.
func ParseTime(s string) (Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Time{}, ErrInvalidTimeFormat
	}
	return NewTime(t.Hour(), t.Minute())
}

func timeFromMinutes(minutes int) (Time, error) {
	if minutes < OpeningTime.minutes || minutes > ClosingTime.minutes {
		return Time{}, ErrTimeOutsideOperatingHours
	}
	return Time{minutes: minutes}, nil
}

// RehydrateTime recreates a Time from persisted minutes since midnight.
func RehydrateTime(minutes int) (Time, error) {
	return timeFromMinutes(minutes)
}

func (t Time) Hour() int              { return t.minutes / 60 }
func (t Time) Minute() int            { return t.minutes % 60 }
func (t Time) Minutes() int           { return t.minutes }
func (t Time) Before(other Time) bool { return t.minutes < other.minutes }
func (t Time) After(other Time) bool  { return t.minutes > other.minutes }
func (t Time) String() string         { return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()) }

// Add returns the time d later. The result must still be within operating hours.
func (t Time) Add(d time.Duration) (Time, error) {
	return timeFromMinutes(t.minutes + int(d/time.Minute))
}

// Sub returns the duration t-other.
func (t Time) Sub(other Time) time.Duration {
	return time.Duration(t.minutes-other.minutes) * time.Minute
}

// TimeInterval is the half-open clock interval [Start, End).
type TimeInterval struct {
	Start Time
	End   Time
}

// NewTimeInterval creates an interval with Start strictly before End.
func NewTimeInterval(start, end Time) (TimeInterval, error) {
	if !start.Before(end) {
		return TimeInterval{}, ErrInvalidTimeRange
	}
	return TimeInterval{Start: start, End: end}, nil
}

// OperatingHours returns the full-day interval the clinic is open.
func OperatingHours() TimeInterval {
	return TimeInterval{Start: OpeningTime, End: ClosingTime}
}

// Duration returns the interval length.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i TimeInterval) String() string {
	return i.Start.String() + "-" + i.End.String()
}
