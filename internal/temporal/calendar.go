package temporal

import (
	"strings"
	"time"

	"go.trai.ch/nourish/internal/core/domain"
)

// Today returns the current local calendar date.
func (c *Codec) Today() domain.CalendarDate {
	return c.NormalizeToCalendarDate(c.clock.Now())
}

// ParseCalendarDate parses yyyy-MM-dd. Malformed input is logged and reported with ok=false.
func (c *Codec) ParseCalendarDate(text string) (domain.CalendarDate, bool) {
	d, err := parseDate(strings.TrimSpace(text), domain.CalendarDateLayout)
	if err != nil {
		c.report(domain.ErrMalformedDate, "parse calendar date", text, err)
		return domain.CalendarDate{}, false
	}
	return d, true
}

// ParseDateLenient accepts yyyy-MM-dd, a full timestamp or dd/MM/yyyy, in that order.
func (c *Codec) ParseDateLenient(text string) (domain.CalendarDate, bool) {
	s := strings.TrimSpace(text)
	if d, err := parseDate(s, domain.CalendarDateLayout); err == nil {
		return d, true
	}
	if t, err := c.parseInstant(s); err == nil {
		return c.NormalizeToCalendarDate(t), true
	}
	d, err := parseDate(s, DMYLayout)
	if err != nil {
		c.report(domain.ErrMalformedDate, "parse date", text, err)
		return domain.CalendarDate{}, false
	}
	return d, true
}

func parseDate(s, layout string) (domain.CalendarDate, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return domain.CalendarDate{}, err
	}
	return domain.CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// LastNDays returns today followed by the n-1 preceding days.
func (c *Codec) LastNDays(n int) []domain.CalendarDate {
	if n <= 0 {
		return nil
	}
	today := c.Today()
	days := make([]domain.CalendarDate, n)
	for i := range days {
		days[i] = today.AddDays(-i)
	}
	return days
}

// DaysUntil returns the signed number of days from today to d.
func (c *Codec) DaysUntil(d domain.CalendarDate) int {
	return DaysBetweenDates(c.Today(), d)
}

// RelativeLabel names d relative to today, falling back to the short display form.
func (c *Codec) RelativeLabel(d domain.CalendarDate, msgs domain.Catalog) string {
	switch c.DaysUntil(d) {
	case 0:
		return msgs.Today
	case -1:
		return msgs.Yesterday
	case 1:
		return msgs.Tomorrow
	default:
		return c.FormatDisplay(d)
	}
}

// FormatDisplay renders d as "Jan 02".
func (c *Codec) FormatDisplay(d domain.CalendarDate) string {
	return c.StartOfDay(d).Format(DisplayLayout)
}

// FormatDMY renders d as dd/MM/yyyy.
func (c *Codec) FormatDMY(d domain.CalendarDate) string {
	return c.StartOfDay(d).Format(DMYLayout)
}

// AgeOn returns the number of whole years between birth and today.
func (c *Codec) AgeOn(birth domain.CalendarDate) int {
	today := c.Today()
	age := today.Year - birth.Year
	if today.Month < birth.Month || (today.Month == birth.Month && today.Day < birth.Day) {
		age--
	}
	return age
}
