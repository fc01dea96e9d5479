package ports

import (
	"context"

	"go.trai.ch/nourish/internal/core/domain"
)

// UserProvider supplies the signed-in user.
//
//go:generate go run go.uber.org/mock/mockgen -source=user_provider.go -destination=mocks/mock_user_provider.go -package=mocks
type UserProvider interface {
	// CurrentUser returns the signed-in user or an error wrapping domain.ErrNoActiveSession.
	CurrentUser(ctx context.Context) (*domain.User, error)
}
