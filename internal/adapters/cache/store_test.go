package cache_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nourish/internal/adapters/cache"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/temporal"
)

var ict = time.FixedZone("ICT", 7*60*60)

func newStore(t *testing.T, daily, weekly int) *cache.Store {
	t.Helper()
	s, err := cache.NewStore(temporal.New(ict, nil), daily, weekly)
	require.NoError(t, err)
	return s
}

func daily(date string, kcal int64) *domain.DailySummary {
	return &domain.DailySummary{
		Date:          date,
		TotalCalories: decimal.NewFromInt(kcal),
		Meals:         []domain.Meal{{ID: 1, Name: "Pho"}},
	}
}

func TestStore_PutGet(t *testing.T) {
	s := newStore(t, 0, 0)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)
	key := s.Key(at, domain.ResolutionDaily)

	_, ok := s.Get(key)
	assert.False(t, ok)

	require.NoError(t, s.Put(key, daily("2024-03-10", 1800)))

	// Any instant on the same local day hits the same entry.
	got, ok := s.Get(s.Key(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC), domain.ResolutionDaily))
	require.True(t, ok)
	assert.Equal(t, "2024-03-10", got.(*domain.DailySummary).Date)

	// The weekly resolution is a separate namespace.
	_, ok = s.Get(s.Key(at, domain.ResolutionWeekly))
	assert.False(t, ok)
}

func TestStore_ValuesAreCopied(t *testing.T) {
	s := newStore(t, 0, 0)
	key := s.Key(time.Date(2024, 3, 10, 9, 0, 0, 0, ict), domain.ResolutionDaily)

	in := daily("2024-03-10", 1800)
	require.NoError(t, s.Put(key, in))
	in.Meals[0].Name = "mutated after put"

	got, ok := s.Get(key)
	require.True(t, ok)
	got.(*domain.DailySummary).Meals[0].Name = "mutated after get"

	again, ok := s.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Pho", again.(*domain.DailySummary).Meals[0].Name)
}

func TestStore_PutRejectsMismatch(t *testing.T) {
	s := newStore(t, 0, 0)
	key := s.Key(time.Date(2024, 3, 10, 9, 0, 0, 0, ict), domain.ResolutionWeekly)

	err := s.Put(key, daily("2024-03-10", 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResolutionMismatch))

	err = s.Put(key, nil)
	assert.True(t, errors.Is(err, domain.ErrResolutionMismatch))

	var empty *domain.WeeklySummary
	err = s.Put(key, empty)
	assert.True(t, errors.Is(err, domain.ErrEmptyResponse))
}

func TestStore_InvalidateAll(t *testing.T) {
	s := newStore(t, 0, 0)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)
	dKey := s.Key(at, domain.ResolutionDaily)
	wKey := s.Key(at, domain.ResolutionWeekly)

	require.NoError(t, s.Put(dKey, daily("2024-03-10", 1)))
	require.NoError(t, s.Put(wKey, &domain.WeeklySummary{StartDate: "2024-03-10"}))
	_, ok := s.Get(dKey)
	require.True(t, ok)
	_, ok = s.Get(wKey)
	require.True(t, ok)

	s.InvalidateAll()

	_, ok = s.Get(dKey)
	assert.False(t, ok)
	_, ok = s.Get(wKey)
	assert.False(t, ok)
}

func TestStore_Eviction(t *testing.T) {
	s := newStore(t, 2, 1)
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)

	for i := range 3 {
		at := base.AddDate(0, 0, i)
		require.NoError(t, s.Put(s.Key(at, domain.ResolutionDaily), daily(at.Format("2006-01-02"), 1)))
	}

	_, ok := s.Get(s.Key(base, domain.ResolutionDaily))
	assert.False(t, ok, "oldest entry should be evicted")
	for i := 1; i < 3; i++ {
		_, ok = s.Get(s.Key(base.AddDate(0, 0, i), domain.ResolutionDaily))
		assert.True(t, ok, "day %d", i)
	}
}

// Run with -race: readers, writers and InvalidateAll share one lock.
func TestStore_InvalidateAllIsAtomic(t *testing.T) {
	s := newStore(t, 0, 0)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)
	dKey := s.Key(at, domain.ResolutionDaily)
	wKey := s.Key(at, domain.ResolutionWeekly)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = s.Put(dKey, daily("2024-03-10", int64(i)))
			_ = s.Put(wKey, &domain.WeeklySummary{StartDate: "2024-03-10"})
			s.InvalidateAll()
		}
		close(stop)
	}()

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if got, ok := s.Get(dKey); ok {
					assert.Equal(t, "2024-03-10", got.(*domain.DailySummary).Date)
				}
				if got, ok := s.Get(wKey); ok {
					assert.Equal(t, "2024-03-10", got.(*domain.WeeklySummary).StartDate)
				}
			}
		}()
	}

	wg.Wait()
	s.InvalidateAll()
	_, ok := s.Get(dKey)
	assert.False(t, ok)
}
