package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pingado/messaging-system/internal/pkg/metrics"
	"github.com/pingado/messaging-system/internal/core/domain"
	"github.com/pingado/messaging-system/internal/core/ports"
)

// AuthService implements login, token refresh, and token-pair issuance. Every
// failure mode (unknown email, inactive user, bad password, bad token,
// vanished subject) surfaces as domain.ErrUnauthorized so callers cannot
// probe which factor failed; the underlying cause only reaches the log.
type AuthService struct {
	users      ports.UserRepository
	hasher     ports.PasswordHasher
	codec      ports.TokenCodec
	ttl        time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	ttl, refreshTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		hasher:     hasher,
		codec:      codec,
		ttl:        ttl,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		s.log.Debug().Err(err).Msg("login: user lookup failed")
		metrics.LoginsTotal.WithLabelValues("unauthorized").Inc()
		return nil, domain.ErrUnauthorized
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.log.Debug().Int64("user_id", user.ID).Msg("login: password mismatch")
		metrics.LoginsTotal.WithLabelValues("unauthorized").Inc()
		return nil, domain.ErrUnauthorized
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("login: token issuance failed")
		metrics.LoginsTotal.WithLabelValues("unauthorized").Inc()
		return nil, domain.ErrUnauthorized
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The old refresh
// token is not revoked and stays valid until its natural expiry; there is no
// revocation store.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	payload, err := s.codec.Verify(refreshToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("refresh: token verification failed")
		metrics.TokenRefreshesTotal.WithLabelValues("unauthorized").Inc()
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindActiveByID(ctx, payload.Sub)
	if err != nil {
		s.log.Debug().Err(err).Int64("sub", payload.Sub).Msg("refresh: subject lookup failed")
		metrics.TokenRefreshesTotal.WithLabelValues("unauthorized").Inc()
		return nil, domain.ErrUnauthorized
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("refresh: token issuance failed")
		metrics.TokenRefreshesTotal.WithLabelValues("unauthorized").Inc()
		return nil, domain.ErrUnauthorized
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return pair, nil
}

// issueTokens signs the access token (sub + email, short TTL) and the refresh
// token (sub only, long TTL) concurrently; neither signature depends on the
// other, so the two run in parallel and are joined before returning.
func (s *AuthService) issueTokens(user *domain.User) (*ports.TokenPair, error) {
	var access, refresh string

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		access, err = s.codec.Sign(user.ID, user.Email, s.ttl)
		return err
	})
	g.Go(func() error {
		var err error
		refresh, err = s.codec.Sign(user.ID, "", s.refreshTTL)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
