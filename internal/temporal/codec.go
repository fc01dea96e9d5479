// Package temporal converts between wire timestamps, instants in a fixed local zone
// and calendar dates.
package temporal

import (
	"errors"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// InstantLayout is the canonical UTC wire form.
	InstantLayout = "2006-01-02T15:04:05.000Z"
	// LocalLayout is the local wall-clock display form.
	LocalLayout = "2006-01-02T15:04:05"
	// DisplayLayout is the short month-day label.
	DisplayLayout = "Jan 02"
	// DMYLayout is the day-first numeric form.
	DMYLayout = "02/01/2006"

	millisDigits = 3
)

var (
	errBlank         = errors.New("blank input")
	errFraction      = errors.New("fractional seconds must be digits")
	errDateTimeShape = errors.New("expected yyyy-MM-ddTHH:mm:ss")
)

// Codec parses and formats timestamps relative to one fixed zone. It holds no
// mutable state and is safe for concurrent use.
type Codec struct {
	loc   *time.Location
	clock clockwork.Clock
	log   ports.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock sets the clock used by the "today" helpers.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Codec) {
		c.clock = clock
	}
}

// New creates a Codec for loc. A nil loc selects time.Local.
func New(loc *time.Location, log ports.Logger, opts ...Option) *Codec {
	if loc == nil {
		loc = time.Local
	}
	c := &Codec{
		loc:   loc,
		clock: clockwork.NewRealClock(),
		log:   log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the fixed local zone.
func (c *Codec) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the local zone.
func (c *Codec) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// ParseFlexibleISO parses yyyy-MM-ddTHH:mm:ss with optional fractional seconds and an
// optional trailing Z. Fractions are padded or truncated to milliseconds. A value
// marked Z is read as UTC, anything else as local wall time. The result is always in
// the local zone. Blank or malformed input is logged and reported with ok=false.
func (c *Codec) ParseFlexibleISO(text string) (time.Time, bool) {
	t, err := c.parseInstant(text)
	if err != nil {
		c.report(domain.ErrMalformedTimestamp, "parse timestamp", text, err)
		return time.Time{}, false
	}
	return t, true
}

func (c *Codec) parseInstant(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, errBlank
	}

	utc := strings.HasSuffix(s, "Z")
	if utc {
		s = s[:len(s)-1]
	}

	base, frac, _ := strings.Cut(s, ".")
	millis, err := parseMillis(frac)
	if err != nil {
		return time.Time{}, err
	}

	zone := c.loc
	if utc {
		zone = time.UTC
	}
	naive, err := time.ParseInLocation(LocalLayout, base, zone)
	if err != nil {
		return time.Time{}, errDateTimeShape
	}

	return naive.Add(time.Duration(millis) * time.Millisecond).In(c.loc), nil
}

// parseMillis reads up to three fractional digits, right-padding shorter fractions
// and dropping any digits past the third.
func parseMillis(frac string) (int, error) {
	millis := 0
	for i := 0; i < len(frac); i++ {
		ch := frac[i]
		if ch < '0' || ch > '9' {
			return 0, errFraction
		}
		if i < millisDigits {
			millis = millis*10 + int(ch-'0')
		}
	}
	for n := len(frac); n < millisDigits; n++ {
		millis *= 10
	}
	return millis, nil
}

// FormatInstantUTC renders t as yyyy-MM-ddTHH:mm:ss.SSSZ in UTC.
func (c *Codec) FormatInstantUTC(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// FormatLocal renders t as local wall-clock time without a zone marker.
func (c *Codec) FormatLocal(t time.Time) string {
	return t.In(c.loc).Format(LocalLayout)
}

// FormatLocalToUTC reads wall as local yyyy-MM-ddTHH:mm:ss and renders it in the
// canonical UTC form. Malformed input is logged and reported with ok=false.
func (c *Codec) FormatLocalToUTC(wall string) (string, bool) {
	t, err := time.ParseInLocation(LocalLayout, strings.TrimSpace(wall), c.loc)
	if err != nil {
		c.report(domain.ErrMalformedTimestamp, "convert local time", wall, err)
		return "", false
	}
	return c.FormatInstantUTC(t), true
}

// LocalDateTime builds a local instant from picker fields. It reports false when the
// fields do not name an existing date and time.
func (c *Codec) LocalDateTime(year int, month time.Month, day, hour, minute int) (time.Time, bool) {
	t := time.Date(year, month, day, hour, minute, 0, 0, c.loc)
	if t.Year() != year || t.Month() != month || t.Day() != day || t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeToCalendarDate projects t through the local zone.
func (c *Codec) NormalizeToCalendarDate(t time.Time) domain.CalendarDate {
	lt := t.In(c.loc)
	return domain.CalendarDate{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()}
}

// StartOfDay returns local midnight of d.
func (c *Codec) StartOfDay(d domain.CalendarDate) time.Time {
	return d.In(c.loc)
}

// CacheKey derives the cache key of the local day containing t.
func (c *Codec) CacheKey(t time.Time, res domain.Resolution) domain.CacheKey {
	return domain.CacheKey{Date: c.NormalizeToCalendarDate(t), Resolution: res}
}

// DaysBetween returns the signed number of local calendar days from a to b.
func (c *Codec) DaysBetween(a, b time.Time) int {
	return DaysBetweenDates(c.NormalizeToCalendarDate(a), c.NormalizeToCalendarDate(b))
}

// DaysBetweenDates returns the signed number of calendar days from a to b.
func DaysBetweenDates(a, b domain.CalendarDate) int {
	da := time.Date(a.Year, a.Month, a.Day, 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year, b.Month, b.Day, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}

func (c *Codec) report(sentinel error, op, input string, cause error) {
	if c.log == nil {
		return
	}
	err := zerr.With(zerr.Wrap(sentinel, op), "input", input)
	c.log.Error(zerr.With(err, "reason", cause.Error()))
}
