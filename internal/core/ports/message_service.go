package ports

import (
	"context"

	"github.com/pingado/messaging-system/internal/core/domain"
)

type CreateMessageInput struct {
	Text string
	ToID int64
	// IdempotencyKey, when set, makes the send replay-safe: a repeated key
	// returns the originally created message instead of inserting a new row.
	IdempotencyKey string
}

// UpdateMessageInput carries the mutable message fields; nil pointers leave
// the current values untouched.
type UpdateMessageInput struct {
	Text *string
	Read *bool
}

// PartySummary is the lightweight user view embedded in message results.
type PartySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MessageDetail struct {
	Message        domain.Message
	From           PartySummary
	To             PartySummary
	AlreadyExisted bool
}

type MessageService interface {
	FindAll(ctx context.Context, limit, offset int) ([]domain.Message, error)
	GetMessage(ctx context.Context, id int64) (*domain.Message, error)
	CreateMessage(ctx context.Context, in CreateMessageInput, payload TokenPayload) (*MessageDetail, error)
	UpdateMessage(ctx context.Context, id int64, in UpdateMessageInput, payload TokenPayload) (*domain.Message, error)
	DeleteMessage(ctx context.Context, id int64, payload TokenPayload) (*domain.Message, error)
}
