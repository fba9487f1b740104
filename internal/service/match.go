package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

const (
	defaultMatchLimit = 10
	// matchScoreCutoff discards candidates that gathered no bonus signal.
	matchScoreCutoff = 0.3
)

// FindMatches scores all ACTIVE mentors against the request and returns them
// ranked. The scoring is a deterministic pure function of the candidate pool:
// calling it twice on an unchanged directory yields identical matches, only
// the elapsed-time telemetry differs. An empty pool yields an empty set.
func (s *Service) FindMatches(ctx context.Context, req domain.MentorshipRequest) (*domain.MatchSet, error) {
	started := time.Now()

	mentors, err := s.store.ListMentorsByStatus(ctx, domain.MentorStatusActive)
	if err != nil {
		return nil, domain.IOError("failed to load candidate pool", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	matches := make([]domain.MatchResult, 0, len(mentors))
	for i := range mentors {
		mentor := mentors[i]
		score := scoreMentor(&mentor)
		if score <= matchScoreCutoff {
			continue
		}
		matches = append(matches, domain.MatchResult{
			Mentor:       mentor,
			MatchScore:   score,
			Strengths:    mentorStrengths(&mentor),
			MatchReasons: matchReasons(&mentor),
		})
	}

	// Stable sort: equal scores keep the candidate pool's relative order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return &domain.MatchSet{
		Matches:      matches,
		TotalMatches: len(matches),
		SearchTimeMs: time.Since(started).Milliseconds(),
		Filters: domain.MatchFilters{
			PreferredExpertise: req.PreferredExpertise,
			BudgetMax:          req.BudgetMax,
			Languages:          req.Languages,
		},
	}, nil
}

// scoreMentor applies the additive scoring law: 0.5 base, +0.3 for any
// expertise, +0.2 for an average rating above 4.5, clamped to 1.0.
func scoreMentor(m *domain.MentorProfile) float64 {
	score := 0.5
	if len(m.Expertise) > 0 {
		score += 0.3
	}
	if m.Metrics.AverageRating > 4.5 {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func mentorStrengths(m *domain.MentorProfile) []string {
	strengths := []string{}
	if m.Metrics.AverageRating > 4.7 {
		strengths = append(strengths, "Highly Rated")
	}
	if m.Metrics.TotalSessions > 100 {
		strengths = append(strengths, "Experienced Mentor")
	}
	if m.Metrics.ResponseTimeHours < 4 {
		strengths = append(strengths, "Quick Responder")
	}
	return strengths
}

func matchReasons(m *domain.MentorProfile) []string {
	reasons := []string{}
	if len(m.Expertise) > 0 {
		reasons = append(reasons, fmt.Sprintf("Expertise in %s", m.Expertise[0].Category))
	}
	if m.Metrics.SuccessRate > 0.9 {
		reasons = append(reasons, "High success rate with students")
	}
	return reasons
}
