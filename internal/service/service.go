// Package service implements the mentor directory, the match engine and the
// session lifecycle on top of the store and the external collaborators.
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/adapter/notify"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/adapter/rtc"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/config"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/repository"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/policy"
)

type Service struct {
	store    repository.Store
	tokens   *rtc.TokenProvider
	notifier *notify.Client
	policy   *policy.Engine
	config   *config.Config

	channels     *ChannelRegistry
	sessionLocks *keyedMutex
	mentorLocks  *keyedMutex

	// now is swapped out in tests to pin the clock.
	now func() time.Time
}

func New(store repository.Store, tokens *rtc.TokenProvider, notifier *notify.Client, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        store,
		tokens:       tokens,
		notifier:     notifier,
		policy:       policyEngine,
		config:       cfg,
		channels:     NewChannelRegistry(),
		sessionLocks: newKeyedMutex(),
		mentorLocks:  newKeyedMutex(),
		now:          time.Now,
	}
}

// authorize evaluates the relationship policy for one operation on a session.
// A deny maps to an UnauthorizedError; an engine failure is an IOError.
func (s *Service) authorize(ctx context.Context, operation string, sess *domain.Session, userID string) error {
	decision, err := s.policy.Evaluate(ctx, policy.Input{
		Operation:      operation,
		UserID:         userID,
		MentorID:       sess.MentorID,
		ParticipantIDs: sess.ParticipantIDs,
	})
	if err != nil {
		return domain.IOError("authorization policy evaluation failed", err)
	}
	if decision != policy.DecisionAllow {
		return domain.UnauthorizedError("user %s may not %s session %s", userID, operation, sess.SessionID)
	}
	return nil
}

// notifyEvent publishes a lifecycle event. Failures are logged and swallowed;
// notification delivery never rolls back a state change.
func (s *Service) notifyEvent(ctx context.Context, event domain.NotificationEvent, sessionID, userID, detail string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, notify.Event{
		Event:     event,
		SessionID: sessionID,
		UserID:    userID,
		Detail:    detail,
	}); err != nil {
		log.Warn().Err(err).Str("event", string(event)).Str("session_id", sessionID).
			Msg("failed to publish notification")
	}
}
