package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nourish/internal/adapters/remote"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports/mocks"
	"go.trai.ch/nourish/internal/temporal"
	"go.uber.org/mock/gomock"
)

var ict = time.FixedZone("ICT", 7*60*60)

type captured struct {
	method  string
	path    string
	headers http.Header
	body    map[string]any
}

// newServer answers every request with status and response. The returned
// function yields the last request seen.
func newServer(t *testing.T, status int, response string) (*httptest.Server, func() captured) {
	t.Helper()
	var (
		mu   sync.Mutex
		last captured
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		c := captured{method: r.Method, path: r.URL.Path, headers: r.Header.Clone()}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &c.body)
		}
		mu.Lock()
		last = c
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, func() captured {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func newClient(t *testing.T, baseURL string) (*remote.Client, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	cfg := domain.APIConfig{
		BaseURL: baseURL + "/api/",
		Timeout: 2 * time.Second,
		Token:   "secret",
	}
	return remote.New(cfg, temporal.New(ict, log), log), log
}

func TestFetchDaily(t *testing.T) {
	srv, last := newServer(t, http.StatusOK, `{
		"success": true,
		"data": {"date": "2024-03-10", "totalCalories": 1850.5, "meals": [{"id": 7, "name": "Pho"}]}
	}`)
	client, _ := newClient(t, srv.URL)

	req := domain.NutritionRequest{
		Resolution:  domain.ResolutionDaily,
		CurrentDate: time.Date(2024, 3, 10, 9, 30, 0, 0, ict),
		User:        domain.UserInformation{Gender: "female", Height: decimal.NewFromInt(160)},
	}
	env, err := client.FetchDaily(context.Background(), req)
	require.NoError(t, err)

	got := last()
	require.True(t, env.Success)
	require.NotNil(t, env.Data)
	assert.Equal(t, "2024-03-10", env.Data.Date)
	assert.True(t, decimal.RequireFromString("1850.5").Equal(env.Data.TotalCalories))
	assert.Equal(t, "Pho", env.Data.Meals[0].Name)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/nutrition/daily", got.path)
	assert.Equal(t, "2024-03-10T02:30:00.000Z", got.body["currentDate"])
	assert.NotContains(t, got.body, "startDate")
	assert.NotContains(t, got.body, "endDate")
	info, ok := got.body["userInformationDto"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "female", info["gender"])

	assert.Equal(t, "Bearer secret", got.headers.Get("Authorization"))
	_, err = uuid.Parse(got.headers.Get("X-Request-ID"))
	assert.NoError(t, err)
	assert.Empty(t, got.headers.Get("Idempotency-Key"))
}

func TestFetchWeekly(t *testing.T) {
	srv, last := newServer(t, http.StatusOK, `{
		"success": true,
		"data": {"startDate": "2024-03-04", "endDate": "2024-03-10", "dailyBreakdown": [{"date": "2024-03-04"}]}
	}`)
	client, _ := newClient(t, srv.URL)

	req := domain.NutritionRequest{Resolution: domain.ResolutionWeekly}
	req.SetStartDate(time.Date(2024, 3, 4, 0, 0, 0, 0, ict))

	env, err := client.FetchWeekly(context.Background(), req)
	require.NoError(t, err)
	got := last()
	require.NotNil(t, env.Data)
	assert.Equal(t, "2024-03-04", env.Data.StartDate)
	require.Len(t, env.Data.Days, 1)

	assert.Equal(t, "/api/nutrition/weekly", got.path)
	assert.Equal(t, "2024-03-03T17:00:00.000Z", got.body["startDate"])
	assert.NotContains(t, got.body, "currentDate")
	assert.NotContains(t, got.body, "endDate")
}

func TestCreateMeal_IdempotencyKey(t *testing.T) {
	srv, last := newServer(t, http.StatusOK, `{"success": true, "data": {"id": 42, "name": "Pho"}}`)
	client, _ := newClient(t, srv.URL)

	req := domain.MealRequest{Name: "Pho", MealType: domain.MealTypeLunch}
	env, err := client.CreateMeal(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 42, env.Data.ID)
	got := last()

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/food", got.path)

	payload, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Equal(t, remote.IdempotencyKey(payload), got.headers.Get("Idempotency-Key"))
}

func TestUpdateAndDeleteMeal(t *testing.T) {
	srv, last := newServer(t, http.StatusOK, `{"success": true, "data": {"id": 42}}`)
	client, _ := newClient(t, srv.URL)

	_, err := client.UpdateMeal(context.Background(), domain.MealRequest{ID: 42, Name: "Pho"})
	require.NoError(t, err)
	got := last()
	assert.Equal(t, http.MethodPut, got.method)
	assert.Empty(t, got.headers.Get("Idempotency-Key"))

	srv2, last2 := newServer(t, http.StatusOK, `{"success": true, "data": true}`)
	client2, _ := newClient(t, srv2.URL)
	env, err := client2.DeleteMeal(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.True(t, *env.Data)
	got2 := last2()
	assert.Equal(t, http.MethodDelete, got2.method)
	assert.Equal(t, "/api/food", got2.path)
	assert.EqualValues(t, 42, got2.body["id"])
}

func TestErrorEnvelope(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `{
		"success": true,
		"message": "",
		"metadata": {"errors": ["Meal name is required", "Calories must be positive"]}
	}`)
	client, _ := newClient(t, srv.URL)

	env, err := client.CreateMeal(context.Background(), domain.MealRequest{})
	require.NoError(t, err)
	assert.False(t, env.Success)

	f := domain.ServerFailure(env, domain.MessagesFor(domain.LocaleEnglish))
	assert.Equal(t, "Meal name is required", f.Message)
}

func TestUnexpectedStatus(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `<html>not found</html>`)
	client, _ := newClient(t, srv.URL)

	_, err := client.DeleteMeal(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnexpectedStatus))
}

func TestMalformedSuccessBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `not json`)
	client, _ := newClient(t, srv.URL)

	_, err := client.FetchDaily(context.Background(), domain.NutritionRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
}

func TestUnknownUnitLoggedOnce(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{
		"success": true,
		"data": {"date": "2024-03-10", "meals": [
			{"id": 1, "ingredients": [{"ingredientId": 1, "quantity": 2, "unit": "FURLONG"}]},
			{"id": 2, "ingredients": [{"ingredientId": 2, "quantity": 1, "unit": "FURLONG"}, {"ingredientId": 3, "unit": "Gram"}]}
		]}
	}`)
	client, log := newClient(t, srv.URL)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	for range 2 {
		env, err := client.FetchDaily(context.Background(), domain.NutritionRequest{})
		require.NoError(t, err)
		assert.Equal(t, domain.UnitOther, env.Data.Meals[0].Ingredients[0].Unit)
		assert.Equal(t, domain.UnitGram, env.Data.Meals[1].Ingredients[1].Unit)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"success": true, "data": true}`)
	}))
	t.Cleanup(srv.Close)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	client := remote.New(domain.APIConfig{BaseURL: srv.URL, Timeout: 2 * time.Second, RetryCount: 2}, temporal.New(ict, log), log)

	env, err := client.DeleteMeal(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.EqualValues(t, 2, calls.Load())
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, log := newClient(t, url)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	_, err := client.FetchDaily(context.Background(), domain.NutritionRequest{})
	require.Error(t, err)

	f := domain.NetworkFailure(err, domain.MessagesFor(domain.LocaleEnglish))
	assert.Equal(t, domain.KindNetwork, f.Kind)
	assert.Equal(t, domain.MessagesFor(domain.LocaleEnglish).Connection, f.Message)
}
