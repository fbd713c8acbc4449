package ports

import (
	"context"

	"github.com/pingado/messaging-system/internal/core/domain"
)

type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

// UpdateUserInput carries the mutable profile fields. Empty values leave the
// current field untouched.
type UpdateUserInput struct {
	Name     string
	Password string
}

type UploadPictureInput struct {
	Filename string
	Data     []byte
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindOne(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, in UpdateUserInput, payload TokenPayload) (*domain.User, error)
	Remove(ctx context.Context, id int64, payload TokenPayload) (*domain.User, error)
	UploadPicture(ctx context.Context, in UploadPictureInput, payload TokenPayload) (*domain.User, error)
}
