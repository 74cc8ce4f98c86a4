package chrono

import (
	"time"
)

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in the clock's location.
	Now() time.Time
	// Location returns the location times are reported in.
	Location() *time.Location
}

// Eastern is a fixed UTC-5 zone labelled "EST", it does not observe daylight saving time.
var Eastern = time.FixedZone("EST", -5*60*60)

// FixedOffset is a TimeAPI pinned to a fixed offset from UTC.
type FixedOffset struct {
	location *time.Location
}

// NewFixedOffset is the constructor of FixedOffset.
func NewFixedOffset(location *time.Location) FixedOffset {
	return FixedOffset{location: location}
}

func (f FixedOffset) Now() time.Time {
	return time.Now().In(f.location)
}

func (f FixedOffset) Location() *time.Location {
	return f.location
}

// Zoned is a TimeAPI backed by a tz database location, it observes daylight saving time.
type Zoned struct {
	location *time.Location
}

// NewZoned loads `name` from the tz database.
func NewZoned(name string) (Zoned, error) {
	location, err := time.LoadLocation(name)
	if err != nil {
		return Zoned{}, err
	}
	return Zoned{location: location}, nil
}

func (z Zoned) Now() time.Time {
	return time.Now().In(z.location)
}

func (z Zoned) Location() *time.Location {
	return z.location
}

// Frozen is a TimeAPI that always returns the same instant.
type Frozen struct {
	At time.Time
}

func (f Frozen) Now() time.Time {
	return f.At
}

func (f Frozen) Location() *time.Location {
	return f.At.Location()
}

// Date truncates `t` to midnight of its calendar day in its own location.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsWeekend reports whether `t` falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Saturday || day == time.Sunday
}
