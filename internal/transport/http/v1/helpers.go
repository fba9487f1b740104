package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// userIDHeader carries the caller identity supplied by the auth layer in
// front of this service. The core trusts it and checks relationships only.
const userIDHeader = "X-User-ID"

func httpStatus(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidState:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusForbidden
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindIO:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError maps a domain error onto an HTTP response.
func writeError(c echo.Context, err error) error {
	return c.JSON(httpStatus(err), map[string]string{
		"error": err.Error(),
		"kind":  string(domain.KindOf(err)),
	})
}

// callerID extracts the authenticated user id from the request.
func (h *Handler) callerID(c echo.Context) (string, error) {
	userID := c.Request().Header.Get(userIDHeader)
	if userID == "" {
		return "", domain.ValidationError("missing %s header", userIDHeader)
	}
	return userID, nil
}

// bindAndValidate decodes the request body and runs struct validation.
func (h *Handler) bindAndValidate(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return domain.ValidationError("invalid request body: %v", err)
	}
	if err := h.validate.Struct(v); err != nil {
		return domain.ValidationError("invalid request: %v", err)
	}
	return nil
}
