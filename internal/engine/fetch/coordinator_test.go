package fetch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nourish/internal/adapters/cache"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
	"go.trai.ch/nourish/internal/core/ports/mocks"
	"go.trai.ch/nourish/internal/engine/fetch"
	"go.trai.ch/nourish/internal/temporal"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var ict = time.FixedZone("ICT", 7*60*60)

type fixture struct {
	coord  *fetch.Coordinator
	store  *cache.Store
	users  *mocks.MockUserProvider
	remote *mocks.MockRemoteClient
}

func newFixture(t *testing.T, opts ...fetch.Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	store, err := cache.NewStore(temporal.New(ict, nil), 0, 0)
	require.NoError(t, err)

	f := &fixture{
		store:  store,
		users:  mocks.NewMockUserProvider(ctrl),
		remote: mocks.NewMockRemoteClient(ctrl),
	}
	f.coord = fetch.New(store, f.users, f.remote, opts...)
	return f
}

func user() *domain.User {
	return &domain.User{ID: 1, Username: "linh", Gender: "female", Height: decimal.NewFromInt(158)}
}

func dailyEnvelope(date string) *domain.Envelope[domain.DailySummary] {
	return &domain.Envelope[domain.DailySummary]{
		Success: true,
		Data: &domain.DailySummary{
			Date:          date,
			TotalCalories: decimal.NewFromInt(1800),
			Meals:         []domain.Meal{{ID: 1, Name: "Pho"}},
		},
	}
}

func TestGetForDate_MissThenHit(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil).Times(1)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.NutritionRequest) (*domain.Envelope[domain.DailySummary], error) {
			assert.Equal(t, domain.ResolutionDaily, req.Resolution)
			assert.True(t, at.Equal(req.CurrentDate))
			assert.True(t, req.StartDate.IsZero())
			assert.Equal(t, "female", req.User.Gender)
			return dailyEnvelope("2024-03-10"), nil
		}).Times(1)

	got, err := f.coord.Daily(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", got.Date)

	// Later the same local day: served from cache.
	again, err := f.coord.Daily(context.Background(), at.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", again.Date)
}

func TestGetForDate_Weekly(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, ict)

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil)
	f.remote.EXPECT().FetchWeekly(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.NutritionRequest) (*domain.Envelope[domain.WeeklySummary], error) {
			assert.True(t, req.CurrentDate.IsZero())
			assert.True(t, start.Equal(req.StartDate))
			assert.True(t, start.AddDate(0, 0, 7).Equal(req.EndDate))
			return &domain.Envelope[domain.WeeklySummary]{
				Success: true,
				Data:    &domain.WeeklySummary{StartDate: "2024-03-04", EndDate: "2024-03-10"},
			}, nil
		})

	got, err := f.coord.Weekly(context.Background(), start)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", got.StartDate)

	_, ok := f.store.Get(f.store.Key(start, domain.ResolutionWeekly))
	assert.True(t, ok)
	_, ok = f.store.Get(f.store.Key(start, domain.ResolutionDaily))
	assert.False(t, ok)
}

func TestGetForDate_NoSession(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(nil, domain.ErrNoActiveSession)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.coord.GetForDate(context.Background(), time.Now(), domain.ResolutionDaily)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUserContext))
	assert.Equal(t, domain.MessagesFor(domain.LocaleEnglish).NoSession, err.Error())
}

func TestGetForDate_Network(t *testing.T) {
	f := newFixture(t, fetch.WithMessages(domain.MessagesFor(domain.LocaleVietnamese)))

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

	_, err := f.coord.GetForDate(context.Background(), time.Now(), domain.ResolutionDaily)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNetwork))
	assert.Equal(t, domain.MessagesFor(domain.LocaleVietnamese).Timeout, err.Error())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGetForDate_ServerLogic(t *testing.T) {
	tests := []struct {
		name string
		env  *domain.Envelope[domain.DailySummary]
		want string
	}{
		{
			name: "message wins",
			env: &domain.Envelope[domain.DailySummary]{
				Message:  "User profile incomplete",
				Metadata: map[string][]string{domain.MetadataErrorsKey: {"height missing"}},
			},
			want: "User profile incomplete",
		},
		{
			name: "first structured error",
			env: &domain.Envelope[domain.DailySummary]{
				Metadata: map[string][]string{domain.MetadataErrorsKey: {"height missing", "weight missing"}},
			},
			want: "height missing",
		},
		{
			name: "generic fallback",
			env:  &domain.Envelope[domain.DailySummary]{},
			want: domain.MessagesFor(domain.LocaleEnglish).Generic,
		},
		{
			name: "success without data",
			env:  &domain.Envelope[domain.DailySummary]{Success: true},
			want: domain.MessagesFor(domain.LocaleEnglish).Generic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil)
			f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).Return(tt.env, nil)

			at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)
			_, err := f.coord.GetForDate(context.Background(), at, domain.ResolutionDaily)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindServerLogic))
			assert.Equal(t, tt.want, err.Error())

			_, ok := f.store.Get(f.store.Key(at, domain.ResolutionDaily))
			assert.False(t, ok, "failures are not cached")
		})
	}
}

func TestGetForDate_UnknownResolution(t *testing.T) {
	f := newFixture(t)
	_, err := f.coord.GetForDate(context.Background(), time.Now(), domain.Resolution("monthly"))
	assert.True(t, errors.Is(err, domain.ErrUnknownResolution))
}

func TestGetForDate_CollapsesConcurrentMisses(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)

	started := make(chan struct{})
	release := make(chan struct{})

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil).Times(1)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.NutritionRequest) (*domain.Envelope[domain.DailySummary], error) {
			close(started)
			<-release
			return dailyEnvelope("2024-03-10"), nil
		}).Times(1)

	const callers = 8
	results := make([]*domain.DailySummary, callers)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s, err := f.coord.Daily(context.Background(), at)
		assert.NoError(t, err)
		results[0] = s
	}()
	<-started

	var ready sync.WaitGroup
	for i := 1; i < callers; i++ {
		wg.Add(1)
		ready.Add(1)
		go func() {
			defer wg.Done()
			ready.Done()
			// Callers arriving after the flight finished hit the cache instead.
			s, err := f.coord.Daily(context.Background(), at.Add(time.Duration(i)*time.Minute))
			assert.NoError(t, err)
			results[i] = s
		}()
	}
	ready.Wait()
	close(release)
	wg.Wait()

	for i, s := range results {
		require.NotNil(t, s, "caller %d", i)
		assert.Equal(t, "2024-03-10", s.Date)
	}

	// Every caller owns its copy.
	results[0].Meals[0].Name = "mutated"
	assert.Equal(t, "Pho", results[1].Meals[0].Name)
}

// lateCache reports the first lookup as a miss even though the entry is stored,
// as happens when another flight fills the entry right after the lookup.
type lateCache struct {
	*cache.Store
	mu     sync.Mutex
	missed bool
}

func (c *lateCache) Get(key domain.CacheKey) (domain.Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.missed {
		c.missed = true
		return nil, false
	}
	return c.Store.Get(key)
}

func TestGetForDate_FilledDuringLookupIsHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	store, err := cache.NewStore(temporal.New(ict, nil), 0, 0)
	require.NoError(t, err)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)
	require.NoError(t, store.Put(store.Key(at, domain.ResolutionDaily), dailyEnvelope("2024-03-10").Data))

	// No user or remote expectations: a remote call fails the test.
	coord := fetch.New(&lateCache{Store: store}, mocks.NewMockUserProvider(ctrl), mocks.NewMockRemoteClient(ctrl),
		fetch.WithTelemetry(tel))

	tel.EXPECT().Record(gomock.Any(), "fetch 2024-03-10").
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		})
	gomock.InOrder(
		vertex.EXPECT().Cached(),
		vertex.EXPECT().Log(domain.LogLevelDebug, "outcome: hit"),
		vertex.EXPECT().Complete(nil),
	)

	s, err := coord.Daily(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", s.Date)
}

func TestGetForDateAsync(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture(t)

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).Return(dailyEnvelope("2024-03-10"), nil)

	ch := f.coord.GetForDateAsync(context.Background(), time.Date(2024, 3, 10, 9, 0, 0, 0, ict), domain.ResolutionDaily)

	res, ok := <-ch
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, "2024-03-10", res.Summary.(*domain.DailySummary).Date)

	_, ok = <-ch
	assert.False(t, ok, "channel closes after the single result")
}

func TestGetForDateAsync_Failure(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture(t)

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(nil, domain.ErrNoActiveSession)

	res := <-f.coord.GetForDateAsync(context.Background(), time.Now(), domain.ResolutionWeekly)
	assert.Nil(t, res.Summary)
	assert.True(t, domain.IsKind(res.Err, domain.KindUserContext))
}

func TestCollect_AttemptsEveryDay(t *testing.T) {
	f := newFixture(t, fetch.WithPrefetchConcurrency(2))
	from := time.Date(2024, 3, 10, 21, 0, 0, 0, ict)
	days := make([]time.Time, 5)
	for i := range days {
		days[i] = from.AddDate(0, 0, -i)
	}

	var (
		mu        sync.Mutex
		requested = map[string]bool{}
		inFlight  int
		peak      int
	)
	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil).Times(5)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.NutritionRequest) (*domain.Envelope[domain.DailySummary], error) {
			day := req.CurrentDate.In(ict).Format("2006-01-02")
			mu.Lock()
			requested[day] = true
			inFlight++
			peak = max(peak, inFlight)
			mu.Unlock()
			defer func() {
				mu.Lock()
				inFlight--
				mu.Unlock()
			}()
			if day == "2024-03-08" {
				return &domain.Envelope[domain.DailySummary]{Message: "server busy"}, nil
			}
			return dailyEnvelope(day), nil
		}).Times(5)

	results := f.coord.Collect(context.Background(), days)
	require.Len(t, results, 5)

	assert.Len(t, requested, 5)
	assert.LessOrEqual(t, peak, 2)
	for i, r := range results {
		_, cached := f.store.Get(f.store.Key(days[i], domain.ResolutionDaily))
		if i == 2 {
			assert.True(t, domain.IsKind(r.Err, domain.KindServerLogic))
			assert.Equal(t, "server busy", r.Err.Error())
			assert.False(t, cached)
			continue
		}
		assert.NoError(t, r.Err)
		assert.True(t, cached, "day %d", i)
	}
}

func TestDaily_ReturnsWhenContextDone(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)

	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})
	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.NutritionRequest) (*domain.Envelope[domain.DailySummary], error) {
			defer close(finished)
			close(started)
			<-release
			return dailyEnvelope("2024-03-10"), nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := f.coord.Daily(ctx, at)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	// The abandoned fetch still completes and fills the cache.
	close(release)
	<-finished
	assert.Eventually(t, func() bool {
		_, ok := f.store.Get(f.store.Key(at, domain.ResolutionDaily))
		return ok
	}, time.Second, time.Millisecond)
}

func TestCollect_KeepsOrder(t *testing.T) {
	f := newFixture(t)
	days := []time.Time{
		time.Date(2024, 3, 10, 9, 0, 0, 0, ict),
		time.Date(2024, 3, 9, 9, 0, 0, 0, ict),
		time.Date(2024, 3, 8, 9, 0, 0, 0, ict),
	}

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil).Times(3)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.NutritionRequest) (*domain.Envelope[domain.DailySummary], error) {
			day := req.CurrentDate.In(ict).Format("2006-01-02")
			if day == "2024-03-09" {
				return nil, context.DeadlineExceeded
			}
			return dailyEnvelope(day), nil
		}).Times(3)

	results := f.coord.Collect(context.Background(), days)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, "2024-03-10", results[0].Summary.(*domain.DailySummary).Date)
	assert.True(t, domain.IsKind(results[1].Err, domain.KindNetwork))
	assert.Nil(t, results[1].Summary)
	require.NoError(t, results[2].Err)
	assert.Equal(t, "2024-03-08", results[2].Summary.(*domain.DailySummary).Date)
}

func TestInvalidate(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil).Times(2)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).Return(dailyEnvelope("2024-03-10"), nil).Times(2)

	_, err := f.coord.Daily(context.Background(), at)
	require.NoError(t, err)
	f.coord.Invalidate()
	_, err = f.coord.Daily(context.Background(), at)
	require.NoError(t, err)
}

func TestTelemetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	f := newFixture(t, fetch.WithTelemetry(tel))
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, ict)

	tel.EXPECT().Record(gomock.Any(), "fetch 2024-03-10").
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).Times(2)

	f.users.EXPECT().CurrentUser(gomock.Any()).Return(user(), nil)
	f.remote.EXPECT().FetchDaily(gomock.Any(), gomock.Any()).Return(dailyEnvelope("2024-03-10"), nil)

	gomock.InOrder(
		vertex.EXPECT().Log(domain.LogLevelInfo, gomock.Any()),
		vertex.EXPECT().Log(domain.LogLevelDebug, "outcome: fetched"),
		vertex.EXPECT().Complete(nil),
		vertex.EXPECT().Cached(),
		vertex.EXPECT().Log(domain.LogLevelDebug, "outcome: hit"),
		vertex.EXPECT().Complete(nil),
	)

	_, err := f.coord.Daily(context.Background(), at)
	require.NoError(t, err)
	_, err = f.coord.Daily(context.Background(), at)
	require.NoError(t, err)
}
