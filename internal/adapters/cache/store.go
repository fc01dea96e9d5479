// Package cache holds fetched nutrition summaries in memory, keyed by local calendar day.
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/temporal"
	"go.trai.ch/zerr"
)

const (
	// DefaultDailyCapacity keeps a year of daily summaries.
	DefaultDailyCapacity = 366
	// DefaultWeeklyCapacity keeps two years of weekly summaries.
	DefaultWeeklyCapacity = 104
)

// Store is a process-local summary cache with one bounded LRU per resolution.
// Entries never expire; staleness is managed by callers through InvalidateAll.
type Store struct {
	codec *temporal.Codec

	mu     sync.RWMutex
	daily  *simplelru.LRU[domain.CalendarDate, *domain.DailySummary]
	weekly *simplelru.LRU[domain.CalendarDate, *domain.WeeklySummary]
}

// NewStore creates a Store. Non-positive capacities select the defaults.
func NewStore(codec *temporal.Codec, dailyCapacity, weeklyCapacity int) (*Store, error) {
	if dailyCapacity <= 0 {
		dailyCapacity = DefaultDailyCapacity
	}
	if weeklyCapacity <= 0 {
		weeklyCapacity = DefaultWeeklyCapacity
	}

	daily, err := simplelru.NewLRU[domain.CalendarDate, *domain.DailySummary](dailyCapacity, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create daily cache")
	}
	weekly, err := simplelru.NewLRU[domain.CalendarDate, *domain.WeeklySummary](weeklyCapacity, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create weekly cache")
	}

	return &Store{
		codec:  codec,
		daily:  daily,
		weekly: weekly,
	}, nil
}

// Key derives the cache key of the local day containing t.
func (s *Store) Key(t time.Time, res domain.Resolution) domain.CacheKey {
	return s.codec.CacheKey(t, res)
}

// Get returns a copy of the summary stored under key.
func (s *Store) Get(key domain.CacheKey) (domain.Summary, bool) {
	// LRU lookups update recency, so reads take the write lock.
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key.Resolution {
	case domain.ResolutionDaily:
		if v, ok := s.daily.Get(key.Date); ok {
			return v.Clone(), true
		}
	case domain.ResolutionWeekly:
		if v, ok := s.weekly.Get(key.Date); ok {
			return v.Clone(), true
		}
	}
	return nil, false
}

// Put stores a copy of summary under key, replacing any previous entry.
func (s *Store) Put(key domain.CacheKey, summary domain.Summary) error {
	if summary == nil || summary.Resolution() != key.Resolution {
		return zerr.With(zerr.Wrap(domain.ErrResolutionMismatch, "cache put rejected"), "key", key.String())
	}

	switch v := summary.CloneSummary().(type) {
	case *domain.DailySummary:
		if v == nil {
			return zerr.With(zerr.Wrap(domain.ErrEmptyResponse, "cache put rejected"), "key", key.String())
		}
		s.mu.Lock()
		s.daily.Add(key.Date, v)
		s.mu.Unlock()
	case *domain.WeeklySummary:
		if v == nil {
			return zerr.With(zerr.Wrap(domain.ErrEmptyResponse, "cache put rejected"), "key", key.String())
		}
		s.mu.Lock()
		s.weekly.Add(key.Date, v)
		s.mu.Unlock()
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownResolution, "cache put rejected"), "resolution", string(key.Resolution))
	}
	return nil
}

// InvalidateAll drops every entry of every resolution in one critical section.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.daily.Purge()
	s.weekly.Purge()
}
