package service

import (
	"context"
	"fmt"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// End completes a live session. Only the mentor may end; the channel is
// retired and the actual end time recorded. Duration stays derived from the
// two timestamps rather than stored.
func (s *Service) End(ctx context.Context, sessionID, userID string) (*domain.Session, error) {
	unlock := s.sessionLocks.lock(sessionID)
	defer unlock()

	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, "end", sess, userID); err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionStatusInProgress {
		return nil, domain.InvalidStateError("session %s cannot end in status %s", sessionID, sess.Status)
	}

	now := s.now()
	channelID := sess.ChannelID
	sess.Status = domain.SessionStatusCompleted
	sess.ActualEndTime = &now
	sess.UpdatedAt = now

	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return nil, domain.IOError("failed to update session", err)
	}

	s.channels.Close(channelID)
	return sess, nil
}

// Cancel terminates a scheduled session before it starts. The mentor or any
// participant may cancel; a note records who and why.
func (s *Service) Cancel(ctx context.Context, sessionID, userID, reason string) (*domain.Session, error) {
	unlock := s.sessionLocks.lock(sessionID)
	defer unlock()

	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, "cancel", sess, userID); err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionStatusScheduled {
		return nil, domain.InvalidStateError("session %s cannot be cancelled in status %s", sessionID, sess.Status)
	}

	now := s.now()
	note := fmt.Sprintf("cancelled by %s at %s", userID, now.Format("2006-01-02 15:04"))
	if reason != "" {
		note += ": " + reason
	}
	sess.Status = domain.SessionStatusCancelled
	sess.Notes = append(sess.Notes, note)
	sess.UpdatedAt = now

	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return nil, domain.IOError("failed to update session", err)
	}

	s.notifyEvent(ctx, domain.EventSessionCancelled, sess.SessionID, userID, reason)
	return sess, nil
}

// Reschedule moves a scheduled session to a new time window. Only the mentor
// may reschedule, and the session stays in SCHEDULED.
func (s *Service) Reschedule(ctx context.Context, sessionID, userID string, req domain.RescheduleSessionRequest) (*domain.Session, error) {
	unlock := s.sessionLocks.lock(sessionID)
	defer unlock()

	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, "reschedule", sess, userID); err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionStatusScheduled {
		return nil, domain.InvalidStateError("session %s cannot be rescheduled in status %s", sessionID, sess.Status)
	}
	if !req.ScheduledEndTime.After(req.ScheduledStartTime) {
		return nil, domain.ValidationError("scheduled end time must be after start time")
	}

	sess.ScheduledStartTime = req.ScheduledStartTime
	sess.ScheduledEndTime = req.ScheduledEndTime
	sess.UpdatedAt = s.now()

	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return nil, domain.IOError("failed to update session", err)
	}
	return sess, nil
}
