package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pingado/messaging-system/internal/api"
	"github.com/pingado/messaging-system/internal/api/handler"
	"github.com/pingado/messaging-system/internal/core/domain"
	"github.com/pingado/messaging-system/internal/core/ports"
)

// stubAuthService returns canned results keyed by credentials.
type stubAuthService struct {
	email    string
	password string
	refresh  string
	pair     ports.TokenPair
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.TokenPair, error) {
	if email == s.email && password == s.password {
		pair := s.pair
		return &pair, nil
	}
	return nil, domain.ErrUnauthorized
}

func (s *stubAuthService) Refresh(_ context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == s.refresh {
		pair := s.pair
		return &pair, nil
	}
	return nil, domain.ErrUnauthorized
}

func newAuthTestServer(svc ports.AuthService) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewAuthHandler(svc)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/refresh", h.Refresh)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		email:    "a@a.com",
		password: "pw",
		pair:     ports.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
	}
	e := newAuthTestServer(svc)

	rec := postJSON(e, "/auth/login", `{"email":"a@a.com","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["accessToken"] != "acc" || got["refreshToken"] != "ref" {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{email: "a@a.com", password: "pw"}
	e := newAuthTestServer(svc)

	rec := postJSON(e, "/auth/login", `{"email":"a@a.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["error"] != "not authorized" {
		t.Fatalf("unexpected error envelope: %v", got)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newAuthTestServer(&stubAuthService{})

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email":`},
		{"missing password", `{"email":"a@a.com"}`},
		{"bad email", `{"email":"not-an-email","password":"pw"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(e, "/auth/login", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := &stubAuthService{
		refresh: "good-token",
		pair:    ports.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"},
	}
	e := newAuthTestServer(svc)

	rec := postJSON(e, "/auth/refresh", `{"refreshToken":"good-token"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["accessToken"] != "acc2" || got["refreshToken"] != "ref2" {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestAuthHandler_Refresh_Rejected(t *testing.T) {
	e := newAuthTestServer(&stubAuthService{refresh: "good-token"})

	rec := postJSON(e, "/auth/refresh", `{"refreshToken":"stale"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = postJSON(e, "/auth/refresh", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing token, got %d", rec.Code)
	}
}
