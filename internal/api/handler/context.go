package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swiftex/tracking-service/internal/api/middleware"
	"github.com/swiftex/tracking-service/internal/core/domain"
)

// ctxIdentity returns the caller resolved by the Auth middleware. Its absence
// means the route was mounted without Auth, so the request is rejected.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
