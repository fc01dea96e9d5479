package domain

import (
	"fmt"
	"time"
)

// CalendarDateLayout is the canonical wire form of a calendar date.
const CalendarDateLayout = "2006-01-02"

// CalendarDate is a date without time of day. It is only meaningful relative to the
// zone it was projected through.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// String renders the date as yyyy-MM-dd.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero date.
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// In returns midnight of d in loc.
func (d CalendarDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n calendar days.
func (d CalendarDate) AddDays(n int) CalendarDate {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Equal reports whether d and other name the same day.
func (d CalendarDate) Equal(other CalendarDate) bool {
	return d == other
}

// Before reports whether d is strictly earlier than other.
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Resolution is the aggregation granularity of a nutrition summary.
type Resolution string

const (
	// ResolutionDaily aggregates a single local day.
	ResolutionDaily Resolution = "daily"
	// ResolutionWeekly aggregates seven days starting at a local day.
	ResolutionWeekly Resolution = "weekly"
)

// Suffix returns the cache key suffix for r.
func (r Resolution) Suffix() string {
	if r == ResolutionWeekly {
		return "-week"
	}
	return ""
}

// Valid reports whether r is a known resolution.
func (r Resolution) Valid() bool {
	return r == ResolutionDaily || r == ResolutionWeekly
}

// CacheKey identifies a cached summary. It is built from a projected calendar date,
// never from caller text.
type CacheKey struct {
	Date       CalendarDate
	Resolution Resolution
}

// String renders the key as yyyy-MM-dd plus the resolution suffix.
func (k CacheKey) String() string {
	return k.Date.String() + k.Resolution.Suffix()
}
