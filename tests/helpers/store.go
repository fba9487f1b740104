// Package helpers provides shared constructors for tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/repository"
)

// NewTestSQLiteStore creates an in-memory store torn down with the test.
func NewTestSQLiteStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()

	s, err := repository.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// SeedMentor inserts a mentor fixture with sensible defaults, applying any
// mutations first.
func SeedMentor(t *testing.T, s *repository.SQLiteStore, mentorID string, mutate func(*domain.MentorProfile)) *domain.MentorProfile {
	t.Helper()

	now := time.Now().UTC()
	mentor := &domain.MentorProfile{
		MentorID: mentorID,
		Name:     "Mentor " + mentorID,
		Email:    mentorID + "@example.com",
		Bio:      "Seasoned engineering coach",
		Title:    "Staff Engineer",
		Company:  "Acme",
		Expertise: []domain.Expertise{
			{Category: "Backend Development", YearsExperience: 8, Level: "senior"},
		},
		HourlyRate: 120,
		Currency:   "CAD",
		Status:     domain.MentorStatusActive,
		Metrics: domain.MentorMetrics{
			TotalSessions:     50,
			AverageRating:     4.2,
			TotalStudents:     10,
			SuccessRate:       0.85,
			ResponseTimeHours: 6,
			CompletionRate:    0.95,
		},
		Languages: []string{"en"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mutate != nil {
		mutate(mentor)
	}

	if err := s.CreateMentor(context.Background(), mentor); err != nil {
		t.Fatalf("failed to seed mentor %s: %v", mentorID, err)
	}
	return mentor
}
