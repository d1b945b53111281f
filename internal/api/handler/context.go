package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketec/order-system/internal/core/domain"
)

// ctxUser rebuilds the authenticated identity injected by the Auth middleware.
// A missing username means the middleware did not run on this route; fail fast
// with 401 before touching any service.
func ctxUser(c echo.Context) (*domain.User, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	user := &domain.User{Username: username}
	// JWT numeric claims decode as float64.
	if id, ok := c.Get("user_id").(float64); ok {
		user.ID = int64(id)
	}
	return user, nil
}

// ctxTokenID returns the session token id injected by the Auth middleware.
func ctxTokenID(c echo.Context) (string, error) {
	tokenID, _ := c.Get("token_id").(string)
	if tokenID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return tokenID, nil
}
