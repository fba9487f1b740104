package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/adapter/rtc"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// earlyStartGrace lets a host begin a session slightly before its slot.
const earlyStartGrace = 5 * time.Minute

// Schedule creates a session in SCHEDULED against a mentor that can still
// accept students. Participants are deduplicated and never include the mentor.
func (s *Service) Schedule(ctx context.Context, req domain.ScheduleSessionRequest) (*domain.Session, error) {
	if !req.ScheduledEndTime.After(req.ScheduledStartTime) {
		return nil, domain.ValidationError("scheduled end time must be after start time")
	}

	mentor, err := s.store.GetMentor(ctx, req.MentorID)
	if err != nil {
		return nil, domain.IOError("failed to get mentor", err)
	}
	if mentor == nil {
		return nil, domain.NotFoundError("mentor %s not found", req.MentorID)
	}
	if !mentor.CanAcceptNewStudents() {
		return nil, domain.InvalidStateError("mentor %s cannot accept new students", req.MentorID)
	}

	sessionType := req.Type
	if sessionType == "" {
		sessionType = domain.SessionTypeMentoring
	}

	now := s.now()
	sess := &domain.Session{
		SessionID:           "sess_" + uuid.New().String()[:8],
		MentorshipRequestID: req.MentorshipRequestID,
		MentorID:            req.MentorID,
		ParticipantIDs:      dedupeParticipants(req.ParticipantIDs, req.MentorID),
		Title:               req.Title,
		Description:         req.Description,
		Type:                sessionType,
		Status:              domain.SessionStatusScheduled,
		ScheduledStartTime:  req.ScheduledStartTime,
		ScheduledEndTime:    req.ScheduledEndTime,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, domain.IOError("failed to create session", err)
	}

	s.notifyEvent(ctx, domain.EventSessionScheduled, sess.SessionID, req.MentorID, sess.Title)
	return sess, nil
}

// GetSession retrieves one session.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, domain.IOError("failed to get session", err)
	}
	if sess == nil {
		return nil, domain.NotFoundError("session %s not found", sessionID)
	}
	return sess, nil
}

// CanStart reports whether the session may go live at the given instant:
// still SCHEDULED, and within the grace window before its slot through its
// scheduled end.
func (s *Service) CanStart(sess *domain.Session, now time.Time) bool {
	if sess.Status != domain.SessionStatusScheduled {
		return false
	}
	windowOpen := sess.ScheduledStartTime.Add(-earlyStartGrace)
	return !now.Before(windowOpen) && !now.After(sess.ScheduledEndTime)
}

// Start transitions a scheduled session to IN_PROGRESS, allocating its live
// channel with the starting user as sole member. Concurrent starts on the
// same session are serialized; the loser observes InvalidStateError.
func (s *Service) Start(ctx context.Context, sessionID, userID string) (*domain.JoinResponse, error) {
	unlock := s.sessionLocks.lock(sessionID)
	defer unlock()

	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.CanStart(sess, s.now()) {
		return nil, domain.InvalidStateError("session %s cannot start in status %s", sessionID, sess.Status)
	}
	if err := s.authorize(ctx, "start", sess, userID); err != nil {
		return nil, err
	}

	return s.startLocked(ctx, sess, userID)
}

// Join admits an authorized user to a session. During the start window the
// first authorized joiner auto-promotes the session to IN_PROGRESS; after
// that, joining only issues a fresh token for the existing channel.
func (s *Service) Join(ctx context.Context, sessionID, userID string) (*domain.JoinResponse, error) {
	unlock := s.sessionLocks.lock(sessionID)
	defer unlock()

	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, "join", sess, userID); err != nil {
		return nil, err
	}

	switch sess.Status {
	case domain.SessionStatusScheduled:
		if s.CanStart(sess, s.now()) {
			return s.startLocked(ctx, sess, userID)
		}
		return nil, domain.InvalidStateError("session %s has not started yet", sessionID)
	case domain.SessionStatusInProgress:
		token, err := s.tokens.IssueToken(sess.ChannelID, userID)
		if err != nil {
			return nil, domain.IOError("failed to issue join token", err)
		}
		s.channels.Join(sess.ChannelID, userID)
		return &domain.JoinResponse{
			SessionID:        sess.SessionID,
			ChannelID:        sess.ChannelID,
			JoinToken:        token,
			MeetingReference: s.tokens.MeetingReference(sess.ChannelID),
		}, nil
	default:
		return nil, domain.InvalidStateError("session %s cannot be joined in status %s", sessionID, sess.Status)
	}
}

// startLocked performs the SCHEDULED -> IN_PROGRESS transition. Callers hold
// the session lock and have already checked CanStart and authorization.
func (s *Service) startLocked(ctx context.Context, sess *domain.Session, userID string) (*domain.JoinResponse, error) {
	channelID := rtc.NewChannelID()
	token, err := s.tokens.IssueToken(channelID, userID)
	if err != nil {
		return nil, domain.IOError("failed to issue join token", err)
	}

	now := s.now()
	sess.Status = domain.SessionStatusInProgress
	sess.ActualStartTime = &now
	sess.ChannelID = channelID
	sess.UpdatedAt = now

	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return nil, domain.IOError("failed to update session", err)
	}

	s.channels.Open(channelID, userID)
	s.notifyEvent(ctx, domain.EventSessionStarted, sess.SessionID, userID, channelID)

	return &domain.JoinResponse{
		SessionID:        sess.SessionID,
		ChannelID:        channelID,
		JoinToken:        token,
		MeetingReference: s.tokens.MeetingReference(channelID),
	}, nil
}

func dedupeParticipants(ids []string, mentorID string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == mentorID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
