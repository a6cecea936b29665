package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/employee-system/internal/api/middleware"
	"github.com/staffdesk/employee-system/internal/core/ports"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fast-fails before any service call: a missing user id or role means the
// middleware never ran (or the token carried no identity) and the request
// must not proceed as authenticated.
func ctxClaims(c echo.Context) (*ports.Claims, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if userID == "" || role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get(middleware.CtxUsername).(string)
	email, _ := c.Get(middleware.CtxEmail).(string)

	return &ports.Claims{UserID: userID, Username: username, Email: email, Role: role}, nil
}
