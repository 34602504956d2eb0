package handler

import (
	"github.com/labstack/echo/v4"

	"sitereport/internal/errors"
	"sitereport/internal/model"
)

// UserContextKey is where the auth middleware stores the *model.User.
const UserContextKey = "user"

// errorResponse turns a domain error into an {error, code} HTTP error.
func errorResponse(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

// currentUser returns the authenticated user.
func currentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(UserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, errorResponse(errors.ErrTokenMissing)
	}
	return user, nil
}
