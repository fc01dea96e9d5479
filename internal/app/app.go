// Package app implements the application layer for nourish.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
	"go.trai.ch/nourish/internal/engine/edit"
	"go.trai.ch/nourish/internal/engine/fetch"
	"go.trai.ch/nourish/internal/temporal"
	"go.trai.ch/zerr"
)

// SessionStore holds the signed-in user.
type SessionStore interface {
	ports.UserProvider
	Save(user *domain.User) error
	Clear() error
}

// App represents the main application logic.
type App struct {
	codec     *temporal.Codec
	fetch     *fetch.Coordinator
	remote    ports.RemoteClient
	sessions  SessionStore
	telemetry ports.Telemetry
	msgs      domain.Catalog
}

// New creates a new App instance.
func New(
	codec *temporal.Codec,
	coordinator *fetch.Coordinator,
	remote ports.RemoteClient,
	sessions SessionStore,
	telemetry ports.Telemetry,
	msgs domain.Catalog,
) *App {
	return &App{
		codec:     codec,
		fetch:     coordinator,
		remote:    remote,
		sessions:  sessions,
		telemetry: telemetry,
		msgs:      msgs,
	}
}

// Codec returns the temporal codec of the configured time zone.
func (a *App) Codec() *temporal.Codec {
	return a.codec
}

// Daily returns the summary of the given day. An empty date selects today.
func (a *App) Daily(ctx context.Context, date string) (*domain.DailySummary, error) {
	at, err := a.resolveDay(date)
	if err != nil {
		return nil, err
	}
	return a.fetch.Daily(ctx, at)
}

// Weekly returns the summary of the week starting at start. An empty start selects today.
func (a *App) Weekly(ctx context.Context, start string) (*domain.WeeklySummary, error) {
	at, err := a.resolveDay(start)
	if err != nil {
		return nil, err
	}
	return a.fetch.Weekly(ctx, at)
}

func (a *App) resolveDay(text string) (time.Time, error) {
	if text == "" {
		return a.codec.Now(), nil
	}
	d, ok := a.codec.ParseDateLenient(text)
	if !ok {
		return time.Time{}, zerr.With(zerr.Wrap(domain.ErrMalformedDate, "resolve day"), "input", text)
	}
	return a.codec.StartOfDay(d), nil
}

// DayReport is the outcome of one day of a Recent lookup.
type DayReport struct {
	Date    domain.CalendarDate
	Label   string
	Display string
	Summary *domain.DailySummary
	Err     error
}

// Recent returns today and the preceding days, newest first. Failures are
// reported per day.
func (a *App) Recent(ctx context.Context, days int) ([]DayReport, error) {
	if days <= 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRange, "recent days"), "days", days)
	}

	dates := a.codec.LastNDays(days)
	instants := make([]time.Time, len(dates))
	for i, d := range dates {
		instants[i] = a.codec.StartOfDay(d)
	}

	results := a.fetch.Collect(ctx, instants)
	reports := make([]DayReport, len(dates))
	for i, d := range dates {
		reports[i] = DayReport{
			Date:    d,
			Label:   a.codec.RelativeLabel(d, a.msgs),
			Display: a.codec.FormatDMY(d),
			Err:     results[i].Err,
		}
		if s, ok := results[i].Summary.(*domain.DailySummary); ok {
			reports[i].Summary = s
		}
	}
	return reports, nil
}

// Timestamp is a parsed instant in every form the app displays or sends.
type Timestamp struct {
	Instant  time.Time
	Local    string
	UTC      string
	Date     domain.CalendarDate
	Label    string
	MealType domain.MealType
}

// Parse reads server or user timestamp text.
func (a *App) Parse(text string) (Timestamp, error) {
	t, ok := a.codec.ParseFlexibleISO(text)
	if !ok {
		return Timestamp{}, zerr.With(zerr.Wrap(domain.ErrMalformedTimestamp, "parse timestamp"), "input", text)
	}
	d := a.codec.NormalizeToCalendarDate(t)
	return Timestamp{
		Instant:  t,
		Local:    a.codec.FormatLocal(t),
		UTC:      a.codec.FormatInstantUTC(t),
		Date:     d,
		Label:    a.codec.RelativeLabel(d, a.msgs),
		MealType: domain.MealTypeForHour(t.Hour()),
	}, nil
}

// EditMeal opens an edit session on meal. Accepted writes drop every cached summary.
func (a *App) EditMeal(meal *domain.Meal, mode edit.Mode) (*edit.Session, error) {
	s := edit.New(a.codec, a.remote,
		edit.WithMessages(a.msgs),
		edit.WithTelemetry(a.telemetry),
		edit.OnWrite(func(context.Context) { a.fetch.Invalidate() }),
	)
	if err := s.Load(meal, mode); err != nil {
		return nil, err
	}
	return s, nil
}

// MealChanges lists the edits SaveMeal applies before committing.
type MealChanges struct {
	Create     bool
	Quantities map[int]decimal.Decimal
	Increments []int
	Decrements []int
	// ConsumedAt is a local wall time (yyyy-MM-ddTHH:mm:ss) or a UTC instant ending
	// in Z. Empty keeps the meal's own time.
	ConsumedAt string
}

// SaveMeal applies changes to meal and commits it. It returns the committed
// meal together with the edits that were sent.
func (a *App) SaveMeal(ctx context.Context, meal *domain.Meal, changes MealChanges) (*domain.Meal, edit.ChangeSet, error) {
	mode := edit.ModeEdit
	if changes.Create {
		mode = edit.ModeCreate
	}
	s, err := a.EditMeal(meal, mode)
	if err != nil {
		return nil, edit.ChangeSet{}, err
	}

	for id, qty := range changes.Quantities {
		if err := s.SetQuantity(id, qty); err != nil {
			return nil, edit.ChangeSet{}, err
		}
	}
	for _, id := range changes.Increments {
		if err := s.Increment(id); err != nil {
			return nil, edit.ChangeSet{}, err
		}
	}
	for _, id := range changes.Decrements {
		if err := s.Decrement(id); err != nil {
			return nil, edit.ChangeSet{}, err
		}
	}
	if changes.ConsumedAt != "" {
		t, ok := a.consumeInstant(changes.ConsumedAt)
		if !ok {
			return nil, edit.ChangeSet{}, zerr.With(zerr.Wrap(domain.ErrInvalidConsumeTime, "save meal"), "input", changes.ConsumedAt)
		}
		if err := s.SetConsumedAt(t); err != nil {
			return nil, edit.ChangeSet{}, err
		}
	}

	sent := s.Changes()
	committed, err := s.Commit(ctx)
	if err != nil {
		return nil, sent, err
	}
	return committed, sent, nil
}

func (a *App) consumeInstant(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasSuffix(text, "Z") {
		utc, ok := a.codec.FormatLocalToUTC(text)
		if !ok {
			return time.Time{}, false
		}
		text = utc
	}
	return a.codec.ParseFlexibleISO(text)
}

// DeleteMeal removes the saved meal with the given id.
func (a *App) DeleteMeal(ctx context.Context, id int) error {
	if id <= 0 {
		return zerr.With(zerr.Wrap(domain.ErrDeleteNotAllowed, "delete meal"), "id", id)
	}
	s, err := a.EditMeal(&domain.Meal{ID: id}, edit.ModeEdit)
	if err != nil {
		return err
	}
	return s.Delete(ctx)
}

// CurrentUser returns the signed-in user.
func (a *App) CurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := a.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, domain.UserContextFailure(err, a.msgs)
	}
	return user, nil
}

// Age returns the user's age in whole years, or false when the date of birth is
// missing or unreadable.
func (a *App) Age(user *domain.User) (int, bool) {
	if user == nil || user.DateOfBirth == "" {
		return 0, false
	}
	birth, ok := a.codec.ParseCalendarDate(user.DateOfBirth)
	if !ok {
		return 0, false
	}
	return a.codec.AgeOn(birth), true
}

// SignIn stores user as the signed-in account and drops summaries of the previous one.
func (a *App) SignIn(user *domain.User) error {
	if err := a.sessions.Save(user); err != nil {
		return err
	}
	a.fetch.Invalidate()
	return nil
}

// SignOut forgets the signed-in account.
func (a *App) SignOut() error {
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	a.fetch.Invalidate()
	return nil
}

// Close flushes telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}
