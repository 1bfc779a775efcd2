package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/platform-api/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Auth middleware.
// Its presence proves the middleware ran; protected handlers fail fast with
// 401 rather than reaching a service with an empty identity.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil || user.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
