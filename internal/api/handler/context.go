package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the session claims injected by the Auth middleware
// and performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - username must be non-empty; outcomes and assignments key on it.
//
// user_id round-trips through the JWT as a JSON number, hence float64.
func ctxIdentity(c echo.Context) (userID int64, username, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return 0, "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ = c.Get("username").(string)
	if username == "" {
		return 0, "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	switch v := c.Get("user_id").(type) {
	case float64:
		userID = int64(v)
	case int64:
		userID = v
	}
	return userID, username, role, nil
}
