// Package edit implements an optimistic editing session over a single meal.
//
// Mutations touch a private working copy only. Commit sends a stamped snapshot
// to the server and, once accepted, makes it the new committed state.
package edit

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.trai.ch/nourish/internal/adapters/telemetry"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
	"go.trai.ch/nourish/internal/temporal"
	"go.trai.ch/zerr"
)

// Mode tells whether the session adds a suggested meal or edits a saved one.
type Mode int

const (
	// ModeCreate edits a suggested meal that is not on the menu yet.
	ModeCreate Mode = iota
	// ModeEdit edits a meal the server already knows.
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// State is the lifecycle position of a Session.
type State int

const (
	StateUninitialized State = iota
	StateClean
	StateDirty
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateCommitting:
		return "committing"
	default:
		return "uninitialized"
	}
}

// ConsumeTime is the selected consumption instant in both of its text forms.
// Local and UTC are always derived from At together.
type ConsumeTime struct {
	At    time.Time
	Local string
	UTC   string
}

// Session holds the original and working copies of one meal.
type Session struct {
	codec     *temporal.Codec
	remote    ports.RemoteClient
	telemetry ports.Telemetry
	msgs      domain.Catalog
	onWrite   func(ctx context.Context)

	mu         sync.Mutex
	loaded     bool
	committing bool
	mode       Mode
	original   *domain.Meal
	working    *domain.Meal
	consume    ConsumeTime
	changes    ChangeSet
}

// Option configures a Session.
type Option func(*Session)

// WithMessages sets the catalog used for user-facing failure messages.
func WithMessages(msgs domain.Catalog) Option {
	return func(s *Session) {
		s.msgs = msgs
	}
}

// WithTelemetry records commits and deletes as vertices on t.
func WithTelemetry(t ports.Telemetry) Option {
	return func(s *Session) {
		if t != nil {
			s.telemetry = t
		}
	}
}

// OnWrite registers fn to run after every accepted commit or delete.
func OnWrite(fn func(ctx context.Context)) Option {
	return func(s *Session) {
		s.onWrite = fn
	}
}

// New creates an empty Session. Call Load before anything else.
func New(codec *temporal.Codec, remote ports.RemoteClient, opts ...Option) *Session {
	s := &Session{
		codec:     codec,
		remote:    remote,
		telemetry: telemetry.NewNoOp(),
		msgs:      domain.MessagesFor(domain.LocaleEnglish),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load starts editing meal. The consumed-at of the committed copy is normalized
// to the canonical UTC form; the consume time falls back to now when absent or
// unparseable.
func (s *Session) Load(meal *domain.Meal, mode Mode) error {
	if meal == nil {
		return zerr.Wrap(domain.ErrSessionNotLoaded, "load meal")
	}

	original := meal.Clone()
	at := s.codec.Now()
	if original.ConsumedAt != "" {
		if t, ok := s.codec.ParseFlexibleISO(original.ConsumedAt); ok {
			at = t
		}
	}
	// Both snapshots start from the same consume time, so a missing or
	// unreadable value does not count as an edit.
	original.ConsumedAt = s.codec.FormatInstantUTC(at)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committing {
		return zerr.Wrap(domain.ErrCommitInProgress, "load meal")
	}

	s.loaded = true
	s.mode = mode
	s.original = original
	s.working = original.Clone()
	s.setConsumeLocked(at)
	return nil
}

// SetQuantity replaces the quantity of an ingredient. Negative values clamp to zero.
func (s *Session) SetQuantity(ingredientID int, qty decimal.Decimal) error {
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	return s.adjust(ingredientID, "set quantity", func(domain.MealIngredient) decimal.Decimal {
		return qty
	})
}

// Increment raises the quantity of an ingredient by one unit step.
func (s *Session) Increment(ingredientID int) error {
	return s.adjust(ingredientID, "increment quantity", func(ing domain.MealIngredient) decimal.Decimal {
		return domain.IncrementQuantity(ing.Quantity, ing.Unit)
	})
}

// Decrement lowers the quantity of an ingredient by one unit step, stopping at zero.
func (s *Session) Decrement(ingredientID int) error {
	return s.adjust(ingredientID, "decrement quantity", func(ing domain.MealIngredient) decimal.Decimal {
		return domain.DecrementQuantity(ing.Quantity, ing.Unit)
	})
}

func (s *Session) adjust(ingredientID int, op string, next func(domain.MealIngredient) decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return zerr.Wrap(domain.ErrSessionNotLoaded, op)
	}
	ing := s.working.Ingredient(ingredientID)
	if ing == nil {
		return zerr.With(zerr.Wrap(domain.ErrIngredientNotFound, op), "ingredient_id", ingredientID)
	}
	if !ing.Adjustable() {
		return zerr.With(zerr.Wrap(domain.ErrIngredientNotAdjustable, op), "ingredient_id", ingredientID)
	}

	ing.Quantity = next(*ing)
	s.recomputeLocked()
	return nil
}

// SetConsumedAt selects the consumption instant.
func (s *Session) SetConsumedAt(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return zerr.Wrap(domain.ErrSessionNotLoaded, "set consume time")
	}
	s.setConsumeLocked(t)
	return nil
}

// SetConsumedAtParts selects the consumption instant from a local date and time
// picked field by field.
func (s *Session) SetConsumedAtParts(year int, month time.Month, day, hour, minute int) error {
	t, ok := s.codec.LocalDateTime(year, month, day, hour, minute)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConsumeTime, "set consume time"),
			"value", strconv.Itoa(year)+"-"+strconv.Itoa(int(month))+"-"+strconv.Itoa(day)+
				" "+strconv.Itoa(hour)+":"+strconv.Itoa(minute))
	}
	return s.SetConsumedAt(t)
}

func (s *Session) setConsumeLocked(t time.Time) {
	local := t.In(s.codec.Location())
	s.consume = ConsumeTime{
		At:    local,
		Local: s.codec.FormatLocal(local),
		UTC:   s.codec.FormatInstantUTC(local),
	}
	s.working.ConsumedAt = s.consume.UTC
	s.recomputeLocked()
}

// stamp writes the fields derived from the consume time onto m.
func stamp(m *domain.Meal, at ConsumeTime) {
	m.MealDate = at.Local
	m.ConsumedAt = at.UTC
	m.MealType = domain.MealTypeForHour(at.At.Hour())
}

func (s *Session) recomputeLocked() {
	s.changes = newChangeSet(s.original, s.working)
}

// ConfirmEnabled reports whether Commit would be attempted. A suggested meal can
// always be added; a saved meal only when it has edits.
func (s *Session) ConfirmEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmEnabledLocked()
}

func (s *Session) confirmEnabledLocked() bool {
	if !s.loaded {
		return false
	}
	return s.mode == ModeCreate || s.changes.Dirty()
}

// Commit sends the working copy to the server. On success the committed snapshot
// becomes the original and a created meal switches the session to edit mode.
// On failure the working edits are kept and a *domain.Failure is returned.
func (s *Session) Commit(ctx context.Context) (*domain.Meal, error) {
	s.mu.Lock()
	switch {
	case !s.loaded:
		s.mu.Unlock()
		return nil, zerr.Wrap(domain.ErrSessionNotLoaded, "commit meal")
	case s.committing:
		s.mu.Unlock()
		return nil, zerr.Wrap(domain.ErrCommitInProgress, "commit meal")
	case !s.confirmEnabledLocked():
		s.mu.Unlock()
		return nil, zerr.Wrap(domain.ErrNothingToCommit, "commit meal")
	}

	snapshot := s.working.Clone()
	stamp(snapshot, s.consume)
	mode := s.mode
	diff := s.changes.Diff()
	s.committing = true
	s.mu.Unlock()

	ctx, vertex := s.telemetry.Record(ctx, "commit meal "+snapshot.Name)
	if diff != "" {
		vertex.Log(domain.LogLevelDebug, diff)
	}

	req := domain.NewMealRequest(snapshot)
	var (
		env *domain.Envelope[domain.Meal]
		err error
	)
	if mode == ModeCreate {
		env, err = s.remote.CreateMeal(ctx, req)
	} else {
		env, err = s.remote.UpdateMeal(ctx, req)
	}

	var failure *domain.Failure
	switch {
	case err != nil:
		failure = domain.NetworkFailure(err, s.msgs)
	case env == nil || !env.Success:
		failure = domain.ServerFailure(env, s.msgs)
	}

	s.mu.Lock()
	s.committing = false
	if failure != nil {
		s.mu.Unlock()
		vertex.Complete(failure)
		return nil, failure
	}

	if mode == ModeCreate {
		if env.Data != nil && env.Data.ID != 0 {
			snapshot.ID = env.Data.ID
			s.working.ID = env.Data.ID
		}
		s.mode = ModeEdit
	}
	stamp(s.working, s.consume)
	s.original = snapshot.Clone()
	s.recomputeLocked()
	s.mu.Unlock()

	vertex.Complete(nil)
	if s.onWrite != nil {
		s.onWrite(ctx)
	}
	return snapshot, nil
}

// Delete removes the saved meal from the menu. Suggested meals cannot be deleted.
// After a successful delete the session is empty again.
func (s *Session) Delete(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case !s.loaded:
		s.mu.Unlock()
		return zerr.Wrap(domain.ErrSessionNotLoaded, "delete meal")
	case s.committing:
		s.mu.Unlock()
		return zerr.Wrap(domain.ErrCommitInProgress, "delete meal")
	case s.mode != ModeEdit:
		s.mu.Unlock()
		return zerr.With(zerr.Wrap(domain.ErrDeleteNotAllowed, "delete meal"), "mode", s.mode.String())
	}
	id := s.original.ID
	s.committing = true
	s.mu.Unlock()

	ctx, vertex := s.telemetry.Record(ctx, "delete meal "+strconv.Itoa(id))
	env, err := s.remote.DeleteMeal(ctx, id)

	var failure *domain.Failure
	switch {
	case err != nil:
		failure = domain.NetworkFailure(err, s.msgs)
	case env == nil || !env.Success:
		failure = domain.ServerFailure(env, s.msgs)
	}

	s.mu.Lock()
	s.committing = false
	if failure == nil {
		s.loaded = false
		s.original = nil
		s.working = nil
		s.consume = ConsumeTime{}
		s.changes = ChangeSet{}
	}
	s.mu.Unlock()

	if failure != nil {
		vertex.Complete(failure)
		return failure
	}
	vertex.Complete(nil)
	if s.onWrite != nil {
		s.onWrite(ctx)
	}
	return nil
}

// Changes returns the difference between the committed state and the working copy.
func (s *Session) Changes() ChangeSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changes
}

// Working returns a copy of the working meal, or nil before Load.
func (s *Session) Working() *domain.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working.Clone()
}

// Original returns a copy of the committed meal, or nil before Load.
func (s *Session) Original() *domain.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original.Clone()
}

// ConsumeTime returns the selected consumption instant.
func (s *Session) ConsumeTime() ConsumeTime {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consume
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case !s.loaded:
		return StateUninitialized
	case s.committing:
		return StateCommitting
	case s.changes.Dirty():
		return StateDirty
	default:
		return StateClean
	}
}
