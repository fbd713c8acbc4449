package ports

import (
	"context"

	"github.com/pingado/messaging-system/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// The FindActive* lookups are the only ones the auth flows use: inactive
// users are treated as nonexistent for authentication purposes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindActiveByID(ctx context.Context, id int64) (*domain.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
