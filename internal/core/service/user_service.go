package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pingado/messaging-system/internal/pkg/metrics"
	"github.com/pingado/messaging-system/internal/core/domain"
	"github.com/pingado/messaging-system/internal/core/ports"
)

// minPictureBytes rejects uploads too small to be a real image.
const minPictureBytes = 1024

// UserService implements account registration and profile management.
// Mutating operations are restricted to the token subject itself.
type UserService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	pictures ports.FileStore
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	pictures ports.FileStore,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, hasher: hasher, pictures: pictures, log: log}
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Active:       true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) FindOne(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int64, in ports.UpdateUserInput, payload ports.TokenPayload) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.ID != payload.Sub {
		return nil, domain.ErrForbidden
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	return s.users.Update(ctx, user)
}

func (s *UserService) Remove(ctx context.Context, id int64, payload ports.TokenPayload) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.ID != payload.Sub {
		return nil, domain.ErrForbidden
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Msg("user removed")
	return user, nil
}

// UploadPicture stores the picture as <subject>.<ext> and records the name on
// the user. Re-uploading overwrites the previous picture.
func (s *UserService) UploadPicture(ctx context.Context, in ports.UploadPictureInput, payload ports.TokenPayload) (*domain.User, error) {
	if len(in.Data) < minPictureBytes {
		return nil, domain.ErrPictureTooSmall
	}

	user, err := s.users.FindByID(ctx, payload.Sub)
	if err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(in.Filename)), ".")
	name := fmt.Sprintf("%d.%s", payload.Sub, ext)

	if err := s.pictures.Save(ctx, name, in.Data); err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("picture store failed")
		return nil, err
	}

	user.Picture = name
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.PicturesUploadedTotal.Inc()
	return updated, nil
}
