package ports

import (
	"context"

	"go.trai.ch/nourish/internal/core/domain"
)

// RemoteClient talks to the nutrition backend.
//
// A returned error means the request did not complete at the transport level.
// A completed request that the server rejected is reported through the envelope's
// Success flag instead.
//
//go:generate go run go.uber.org/mock/mockgen -source=remote.go -destination=mocks/mock_remote.go -package=mocks
type RemoteClient interface {
	// FetchDaily requests the summary of req.CurrentDate.
	FetchDaily(ctx context.Context, req domain.NutritionRequest) (*domain.Envelope[domain.DailySummary], error)
	// FetchWeekly requests the summary of the week starting at req.StartDate.
	FetchWeekly(ctx context.Context, req domain.NutritionRequest) (*domain.Envelope[domain.WeeklySummary], error)
	// CreateMeal adds a meal to the user's menu.
	CreateMeal(ctx context.Context, req domain.MealRequest) (*domain.Envelope[domain.Meal], error)
	// UpdateMeal replaces an existing meal.
	UpdateMeal(ctx context.Context, req domain.MealRequest) (*domain.Envelope[domain.Meal], error)
	// DeleteMeal removes a meal from the menu.
	DeleteMeal(ctx context.Context, id int) (*domain.Envelope[bool], error)
}
