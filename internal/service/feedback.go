package service

import (
	"context"
	"math"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// SubmitFeedback upserts one party's rating for a completed session and
// recomputes the session's aggregate rating.
func (s *Service) SubmitFeedback(ctx context.Context, sessionID, userID string, req domain.FeedbackRequest) (*domain.Session, error) {
	unlock := s.sessionLocks.lock(sessionID)
	defer unlock()

	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, "feedback", sess, userID); err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionStatusCompleted {
		return nil, domain.InvalidStateError("feedback is only accepted on completed sessions, session %s is %s", sessionID, sess.Status)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.ValidationError("rating must be between 1 and 5")
	}

	if sess.Feedback == nil {
		sess.Feedback = make(map[string]domain.Feedback)
	}
	sess.Feedback[userID] = domain.Feedback{
		Rating:      req.Rating,
		Comments:    req.Comments,
		SubmittedAt: s.now(),
	}
	sess.Rating = aggregateRating(sess.Feedback)
	sess.UpdatedAt = s.now()

	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return nil, domain.IOError("failed to update session", err)
	}

	s.notifyEvent(ctx, domain.EventFeedbackReceived, sess.SessionID, userID, "")
	return sess, nil
}

// UserSessionStats aggregates all sessions the user is attached to, as mentor
// or participant.
func (s *Service) UserSessionStats(ctx context.Context, userID string) (*domain.UserSessionStats, error) {
	sessions, err := s.store.ListSessionsForUser(ctx, userID)
	if err != nil {
		return nil, domain.IOError("failed to list sessions for user", err)
	}

	now := s.now()
	stats := &domain.UserSessionStats{UserID: userID, TotalSessions: len(sessions)}
	var ratingSum float64
	var ratedCount int
	for i := range sessions {
		sess := &sessions[i]
		switch sess.Status {
		case domain.SessionStatusCompleted:
			stats.CompletedSessions++
			stats.TotalMinutes += sess.DurationMinutes()
			if sess.Rating > 0 {
				ratingSum += sess.Rating
				ratedCount++
			}
		case domain.SessionStatusScheduled:
			if sess.ScheduledStartTime.After(now) {
				stats.UpcomingSessions++
			}
		}
	}
	if ratedCount > 0 {
		stats.AverageRating = roundToOneDecimal(ratingSum / float64(ratedCount))
	}
	return stats, nil
}

// aggregateRating is the arithmetic mean of all submitted ratings, rounded to
// one decimal place.
func aggregateRating(feedback map[string]domain.Feedback) float64 {
	if len(feedback) == 0 {
		return 0
	}
	var sum int
	for _, f := range feedback {
		sum += f.Rating
	}
	return roundToOneDecimal(float64(sum) / float64(len(feedback)))
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
