package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pingado/messaging-system/internal/core/ports"
)

// PayloadKey is the echo context key under which Auth stores the verified
// ports.TokenPayload for downstream handlers.
const PayloadKey = "token_payload"

// Auth guards protected routes. Per request it extracts the bearer token,
// verifies it through the codec, resolves the subject to an existing active
// user, and attaches the decoded payload to the request context. Every
// failure fails closed with 401; nothing is cached between requests.
func Auth(codec ports.TokenCodec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			payload, err := codec.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// The payload is not trusted on its own: the subject must still
			// resolve to an active user at the time of use.
			if _, err := users.FindActiveByID(c.Request().Context(), payload.Sub); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}

			c.Set(PayloadKey, *payload)
			return next(c)
		}
	}
}
