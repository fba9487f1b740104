// Package v1 provides the HTTP handlers for the mentorship service.
package v1

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service  *service.Service
	validate *validator.Validate
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the v1 routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Mentor directory
	e.GET("/v1/mentors", h.ListMentors)
	e.GET("/v1/mentors/top", h.TopRatedMentors)
	e.GET("/v1/mentors/:mentor_id", h.GetMentor)
	e.PATCH("/v1/mentors/:mentor_id/metrics", h.UpdateMentorMetrics)

	// Matching
	e.POST("/v1/matches/search", h.FindMatches)

	// Session lifecycle
	e.POST("/v1/sessions", h.ScheduleSession)
	e.GET("/v1/sessions/:session_id", h.GetSession)
	e.POST("/v1/sessions/:session_id/start", h.StartSession)
	e.POST("/v1/sessions/:session_id/join", h.JoinSession)
	e.POST("/v1/sessions/:session_id/end", h.EndSession)
	e.POST("/v1/sessions/:session_id/cancel", h.CancelSession)
	e.POST("/v1/sessions/:session_id/reschedule", h.RescheduleSession)
	e.POST("/v1/sessions/:session_id/feedback", h.SubmitFeedback)
	e.GET("/v1/users/:user_id/session-stats", h.UserSessionStats)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
