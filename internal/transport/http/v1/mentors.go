package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// ListMentors retrieves ACTIVE mentors, optionally filtered by a search query.
// GET /v1/mentors?q=
func (h *Handler) ListMentors(c echo.Context) error {
	ctx := c.Request().Context()

	var mentors []domain.MentorProfile
	var err error
	if q := c.QueryParam("q"); q != "" {
		mentors, err = h.service.SearchMentors(ctx, q)
	} else {
		mentors, err = h.service.ListActiveMentors(ctx)
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"mentors": mentors,
		"total":   len(mentors),
	})
}

// TopRatedMentors retrieves ACTIVE mentors by descending average rating.
// GET /v1/mentors/top?limit=
func (h *Handler) TopRatedMentors(c echo.Context) error {
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	mentors, err := h.service.TopRatedMentors(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"mentors": mentors,
		"total":   len(mentors),
	})
}

// GetMentor retrieves one mentor profile.
// GET /v1/mentors/:mentor_id
func (h *Handler) GetMentor(c echo.Context) error {
	mentor, err := h.service.GetMentor(c.Request().Context(), c.Param("mentor_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mentor)
}

// UpdateMentorMetrics merge-patches a mentor's rolling metrics.
// PATCH /v1/mentors/:mentor_id/metrics
func (h *Handler) UpdateMentorMetrics(c echo.Context) error {
	var patch domain.MetricsPatch
	if err := c.Bind(&patch); err != nil {
		return writeError(c, domain.ValidationError("invalid request body: %v", err))
	}

	if err := h.service.UpdateMentorMetrics(c.Request().Context(), c.Param("mentor_id"), patch); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
