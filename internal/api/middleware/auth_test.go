package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pingado/messaging-system/internal/core/domain"
	"github.com/pingado/messaging-system/internal/core/ports"
	"github.com/pingado/messaging-system/internal/pkg/token"
)

// singleUserRepo resolves exactly one user by id.
type singleUserRepo struct {
	user *domain.User
}

func (r *singleUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *singleUserRepo) FindAll(context.Context) ([]domain.User, error) {
	if r.user == nil {
		return nil, nil
	}
	return []domain.User{*r.user}, nil
}

func (r *singleUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		clone := *r.user
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *singleUserRepo) FindActiveByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil || !u.Active {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *singleUserRepo) FindActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.user != nil && r.user.Email == email && r.user.Active {
		clone := *r.user
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *singleUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *singleUserRepo) Delete(context.Context, int64) error { return nil }

func invokeGuard(t *testing.T, codec ports.TokenCodec, users ports.UserRepository, authorization string) (*httptest.ResponseRecorder, error, *ports.TokenPayload) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *ports.TokenPayload
	next := func(c echo.Context) error {
		if payload, ok := c.Get(PayloadKey).(ports.TokenPayload); ok {
			got = &payload
		}
		return c.NoContent(http.StatusOK)
	}

	err := Auth(codec, users)(next)(c)
	return rec, err, got
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}

func TestAuth_ValidToken(t *testing.T) {
	codec := token.NewJWTCodec("secret", "aud", "iss")
	users := &singleUserRepo{user: &domain.User{ID: 7, Email: "a@a.com", Active: true}}

	signed, err := codec.Sign(7, "a@a.com", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec, err, payload := invokeGuard(t, codec, users, "Bearer "+signed)
	if err != nil {
		t.Fatalf("guard rejected valid token: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload == nil {
		t.Fatalf("expected payload in context")
	}
	if payload.Sub != 7 || payload.Email != "a@a.com" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	codec := token.NewJWTCodec("secret", "aud", "iss")
	users := &singleUserRepo{}

	_, err, payload := invokeGuard(t, codec, users, "")
	if code := httpStatus(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if payload != nil {
		t.Fatalf("payload must not be set on failure")
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	codec := token.NewJWTCodec("secret", "aud", "iss")
	users := &singleUserRepo{}

	for _, header := range []string{"Basic abc", "Bearer"} {
		_, err, _ := invokeGuard(t, codec, users, header)
		if code := httpStatus(t, err); code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, code)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	codec := token.NewJWTCodec("secret", "aud", "iss")
	users := &singleUserRepo{user: &domain.User{ID: 7, Active: true}}

	_, err, _ := invokeGuard(t, codec, users, "Bearer not-a-jwt")
	if code := httpStatus(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	// Valid shape, wrong key.
	forged, signErr := token.NewJWTCodec("other", "aud", "iss").Sign(7, "", time.Hour)
	if signErr != nil {
		t.Fatalf("sign forged token: %v", signErr)
	}
	_, err, _ = invokeGuard(t, codec, users, "Bearer "+forged)
	if code := httpStatus(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", code)
	}
}

func TestAuth_SubjectNoLongerActive(t *testing.T) {
	codec := token.NewJWTCodec("secret", "aud", "iss")
	users := &singleUserRepo{user: &domain.User{ID: 7, Active: false}}

	signed, err := codec.Sign(7, "a@a.com", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, guardErr, _ := invokeGuard(t, codec, users, "Bearer "+signed)
	if code := httpStatus(t, guardErr); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive subject, got %d", code)
	}
}
