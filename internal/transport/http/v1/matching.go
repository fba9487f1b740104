package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// FindMatches scores the ACTIVE mentor pool against a mentorship request.
// POST /v1/matches/search
func (h *Handler) FindMatches(c echo.Context) error {
	var req domain.MentorshipRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, domain.ValidationError("invalid request body: %v", err))
	}

	matches, err := h.service.FindMatches(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, matches)
}
