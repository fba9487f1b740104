package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// ScheduleSession creates a session in SCHEDULED.
// POST /v1/sessions
func (h *Handler) ScheduleSession(c echo.Context) error {
	var req domain.ScheduleSessionRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	sess, err := h.service.Schedule(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, sess)
}

// GetSession retrieves one session.
// GET /v1/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	sess, err := h.service.GetSession(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// StartSession transitions a session to IN_PROGRESS and returns the channel
// credentials for the starting user.
// POST /v1/sessions/:session_id/start
func (h *Handler) StartSession(c echo.Context) error {
	userID, err := h.callerID(c)
	if err != nil {
		return writeError(c, err)
	}

	resp, err := h.service.Start(c.Request().Context(), c.Param("session_id"), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// JoinSession admits the caller to a session, auto-starting it inside the
// grace window.
// POST /v1/sessions/:session_id/join
func (h *Handler) JoinSession(c echo.Context) error {
	userID, err := h.callerID(c)
	if err != nil {
		return writeError(c, err)
	}

	resp, err := h.service.Join(c.Request().Context(), c.Param("session_id"), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// EndSession completes a live session. Mentor only.
// POST /v1/sessions/:session_id/end
func (h *Handler) EndSession(c echo.Context) error {
	userID, err := h.callerID(c)
	if err != nil {
		return writeError(c, err)
	}

	sess, err := h.service.End(c.Request().Context(), c.Param("session_id"), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// CancelSession cancels a scheduled session.
// POST /v1/sessions/:session_id/cancel
func (h *Handler) CancelSession(c echo.Context) error {
	userID, err := h.callerID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req domain.CancelSessionRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, domain.ValidationError("invalid request body: %v", err))
	}

	sess, err := h.service.Cancel(c.Request().Context(), c.Param("session_id"), userID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// RescheduleSession moves a scheduled session. Mentor only.
// POST /v1/sessions/:session_id/reschedule
func (h *Handler) RescheduleSession(c echo.Context) error {
	userID, err := h.callerID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req domain.RescheduleSessionRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	sess, err := h.service.Reschedule(c.Request().Context(), c.Param("session_id"), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// SubmitFeedback records the caller's rating for a completed session.
// POST /v1/sessions/:session_id/feedback
func (h *Handler) SubmitFeedback(c echo.Context) error {
	userID, err := h.callerID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req domain.FeedbackRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	sess, err := h.service.SubmitFeedback(c.Request().Context(), c.Param("session_id"), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// UserSessionStats aggregates sessions for a user.
// GET /v1/users/:user_id/session-stats
func (h *Handler) UserSessionStats(c echo.Context) error {
	stats, err := h.service.UserSessionStats(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
