package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pingado/messaging-system/internal/api/middleware"
	"github.com/pingado/messaging-system/internal/core/ports"
)

// ctxTokenPayload extracts the payload injected by the Auth middleware. Its
// presence proves the guard ran; a handler reached without it rejects with
// 401 before any service call.
func ctxTokenPayload(c echo.Context) (ports.TokenPayload, error) {
	payload, ok := c.Get(middleware.PayloadKey).(ports.TokenPayload)
	if !ok {
		return ports.TokenPayload{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return payload, nil
}
