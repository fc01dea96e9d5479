// Package fetch resolves nutrition summaries through the cache, falling back to
// the remote client and collapsing concurrent requests for the same day.
package fetch

import (
	"context"
	"time"

	"go.trai.ch/nourish/internal/adapters/telemetry"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultPrefetchConcurrency bounds parallel fetches in Collect.
const DefaultPrefetchConcurrency = 4

// Cache is the summary store the coordinator reads through.
type Cache interface {
	Key(t time.Time, res domain.Resolution) domain.CacheKey
	Get(key domain.CacheKey) (domain.Summary, bool)
	Put(key domain.CacheKey, summary domain.Summary) error
	InvalidateAll()
}

// Result is one lookup outcome delivered by GetForDateAsync or Collect.
type Result struct {
	Summary domain.Summary
	Err     error
}

// Coordinator serves summaries from the cache and fetches misses.
type Coordinator struct {
	cache  Cache
	users  ports.UserProvider
	remote ports.RemoteClient

	telemetry   ports.Telemetry
	msgs        domain.Catalog
	concurrency int

	flights singleflight.Group
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTelemetry records every lookup as a vertex on t.
func WithTelemetry(t ports.Telemetry) Option {
	return func(c *Coordinator) {
		if t != nil {
			c.telemetry = t
		}
	}
}

// WithMessages sets the catalog used for user-facing failure messages.
func WithMessages(msgs domain.Catalog) Option {
	return func(c *Coordinator) {
		c.msgs = msgs
	}
}

// WithPrefetchConcurrency bounds parallel fetches in Collect. Values below 1 are ignored.
func WithPrefetchConcurrency(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// New creates a Coordinator.
func New(cache Cache, users ports.UserProvider, remote ports.RemoteClient, opts ...Option) *Coordinator {
	c := &Coordinator{
		cache:       cache,
		users:       users,
		remote:      remote,
		telemetry:   telemetry.NewNoOp(),
		msgs:        domain.MessagesFor(domain.LocaleEnglish),
		concurrency: DefaultPrefetchConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetForDate returns the summary of the local day containing date. A cached entry
// is returned without any remote call. Failures are *domain.Failure values except
// for an unknown resolution.
func (c *Coordinator) GetForDate(ctx context.Context, date time.Time, res domain.Resolution) (domain.Summary, error) {
	if !res.Valid() {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownResolution, "fetch summary"), "resolution", string(res))
	}

	key := c.cache.Key(date, res)
	ctx, vertex := c.telemetry.Record(ctx, "fetch "+key.String())

	if s, ok := c.cache.Get(key); ok {
		vertex.Cached()
		finish(vertex, domain.FetchOutcomeHit, nil)
		return s, nil
	}

	v, err, _ := c.flights.Do(key.String(), func() (any, error) {
		// A flight that finished between the lookup above and joining this one
		// has already filled the entry.
		if s, ok := c.cache.Get(key); ok {
			vertex.Cached()
			return flight{summary: s, hit: true}, nil
		}
		s, err := c.fetch(ctx, vertex, key, date)
		if err != nil {
			return nil, err
		}
		return flight{summary: s}, nil
	})
	if err != nil {
		finish(vertex, domain.FetchOutcomeFailed, err)
		return nil, err
	}

	f := v.(flight)
	outcome := domain.FetchOutcomeFetched
	if f.hit {
		outcome = domain.FetchOutcomeHit
	}
	finish(vertex, outcome, nil)

	// Results are shared between joined callers.
	return f.summary.CloneSummary(), nil
}

// flight is the shared result of one singleflight call.
type flight struct {
	summary domain.Summary
	hit     bool
}

func (c *Coordinator) fetch(ctx context.Context, vertex ports.Vertex, key domain.CacheKey, date time.Time) (domain.Summary, error) {
	user, err := c.users.CurrentUser(ctx)
	if err != nil {
		return nil, domain.UserContextFailure(err, c.msgs)
	}

	req := domain.NutritionRequest{Resolution: key.Resolution, User: user.Information()}
	vertex.Log(domain.LogLevelInfo, "requesting "+string(key.Resolution)+" summary")

	var summary domain.Summary
	switch key.Resolution {
	case domain.ResolutionDaily:
		req.CurrentDate = date
		env, err := c.remote.FetchDaily(ctx, req)
		if err != nil {
			return nil, domain.NetworkFailure(err, c.msgs)
		}
		if !env.Success || env.Data == nil {
			return nil, rejected(domain.ServerFailure(env, c.msgs), env.Success, key)
		}
		summary = env.Data
	case domain.ResolutionWeekly:
		req.SetStartDate(date)
		env, err := c.remote.FetchWeekly(ctx, req)
		if err != nil {
			return nil, domain.NetworkFailure(err, c.msgs)
		}
		if !env.Success || env.Data == nil {
			return nil, rejected(domain.ServerFailure(env, c.msgs), env.Success, key)
		}
		summary = env.Data
	}

	if err := c.cache.Put(key, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func finish(vertex ports.Vertex, outcome domain.FetchOutcome, err error) {
	vertex.Log(domain.LogLevelDebug, "outcome: "+string(outcome))
	vertex.Complete(err)
}

// rejected attaches the cause when the server reported success without data.
func rejected(f *domain.Failure, success bool, key domain.CacheKey) *domain.Failure {
	if success {
		f.Err = zerr.With(zerr.Wrap(domain.ErrEmptyResponse, "fetch summary"), "key", key.String())
	}
	return f
}

// Daily returns the daily summary of the local day containing date. It returns
// as soon as ctx is done, even while a shared fetch is still running.
func (c *Coordinator) Daily(ctx context.Context, date time.Time) (*domain.DailySummary, error) {
	s, err := c.await(ctx, date, domain.ResolutionDaily)
	if err != nil {
		return nil, err
	}
	return s.(*domain.DailySummary), nil
}

// Weekly returns the weekly summary starting at the local day containing start.
// It returns as soon as ctx is done.
func (c *Coordinator) Weekly(ctx context.Context, start time.Time) (*domain.WeeklySummary, error) {
	s, err := c.await(ctx, start, domain.ResolutionWeekly)
	if err != nil {
		return nil, err
	}
	return s.(*domain.WeeklySummary), nil
}

func (c *Coordinator) await(ctx context.Context, date time.Time, res domain.Resolution) (domain.Summary, error) {
	select {
	case r := <-c.GetForDateAsync(ctx, date, res):
		return r.Summary, r.Err
	case <-ctx.Done():
		return nil, zerr.Wrap(ctx.Err(), "fetch summary")
	}
}

// GetForDateAsync runs GetForDate in the background. Exactly one Result is sent,
// after which the channel is closed.
func (c *Coordinator) GetForDateAsync(ctx context.Context, date time.Time, res domain.Resolution) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		s, err := c.GetForDate(ctx, date, res)
		out <- Result{Summary: s, Err: err}
	}()
	return out
}

// Collect fetches the daily summaries of days with bounded parallelism. Results
// keep the order of days.
func (c *Coordinator) Collect(ctx context.Context, days []time.Time) []Result {
	results := make([]Result, len(days))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, day := range days {
		g.Go(func() error {
			s, err := c.GetForDate(ctx, day, domain.ResolutionDaily)
			results[i] = Result{Summary: s, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Invalidate drops every cached summary.
func (c *Coordinator) Invalidate() {
	c.cache.InvalidateAll()
}
