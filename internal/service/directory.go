package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

const defaultTopRatedLimit = 10

// ListActiveMentors returns all mentors with status ACTIVE. Callers that care
// about order re-sort; the directory promises nothing beyond a stable read.
func (s *Service) ListActiveMentors(ctx context.Context) ([]domain.MentorProfile, error) {
	mentors, err := s.store.ListMentorsByStatus(ctx, domain.MentorStatusActive)
	if err != nil {
		return nil, domain.IOError("failed to list active mentors", err)
	}
	return mentors, nil
}

// GetMentor retrieves one mentor profile.
func (s *Service) GetMentor(ctx context.Context, mentorID string) (*domain.MentorProfile, error) {
	mentor, err := s.store.GetMentor(ctx, mentorID)
	if err != nil {
		return nil, domain.IOError("failed to get mentor", err)
	}
	if mentor == nil {
		return nil, domain.NotFoundError("mentor %s not found", mentorID)
	}
	return mentor, nil
}

// SearchMentors matches ACTIVE mentors whose name, bio, title or company
// contains the query, case-insensitively.
func (s *Service) SearchMentors(ctx context.Context, query string) ([]domain.MentorProfile, error) {
	mentors, err := s.store.SearchMentors(ctx, query)
	if err != nil {
		return nil, domain.IOError("failed to search mentors", err)
	}
	return mentors, nil
}

// TopRatedMentors returns ACTIVE mentors by descending average rating.
func (s *Service) TopRatedMentors(ctx context.Context, limit int) ([]domain.MentorProfile, error) {
	if limit <= 0 {
		limit = defaultTopRatedLimit
	}
	mentors, err := s.store.TopMentors(ctx, limit)
	if err != nil {
		return nil, domain.IOError("failed to list top mentors", err)
	}
	return mentors, nil
}

// UpdateMentorMetrics shallow-merges a metrics patch into a mentor's rolling
// metrics. An unknown mentor id is a no-op logged as a warning so that
// feedback replays stay safe.
func (s *Service) UpdateMentorMetrics(ctx context.Context, mentorID string, patch domain.MetricsPatch) error {
	unlock := s.mentorLocks.lock(mentorID)
	defer unlock()

	mentor, err := s.store.GetMentor(ctx, mentorID)
	if err != nil {
		return domain.IOError("failed to get mentor", err)
	}
	if mentor == nil {
		log.Warn().Str("mentor_id", mentorID).Msg("metrics update for unknown mentor ignored")
		return nil
	}

	patch.Apply(&mentor.Metrics)
	mentor.UpdatedAt = s.now()

	if err := s.store.UpdateMentor(ctx, mentor); err != nil {
		return domain.IOError("failed to update mentor metrics", err)
	}
	return nil
}
