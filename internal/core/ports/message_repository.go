package ports

import (
	"context"

	"github.com/pingado/messaging-system/internal/core/domain"
)

// MessageRepository defines the persistence contract for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Message, error)
	FindByID(ctx context.Context, id int64) (*domain.Message, error)
	Update(ctx context.Context, message *domain.Message) (*domain.Message, error)
	Delete(ctx context.Context, id int64) error
}
