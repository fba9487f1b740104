// Package repository defines the storage interface and implementations.
package repository

import (
	"context"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// Store defines the interface for data persistence. Reads return (nil, nil)
// for unknown ids; the service layer decides which absences are errors.
type Store interface {
	// Mentor operations
	CreateMentor(ctx context.Context, mentor *domain.MentorProfile) error
	GetMentor(ctx context.Context, mentorID string) (*domain.MentorProfile, error)
	ListMentorsByStatus(ctx context.Context, status domain.MentorStatus) ([]domain.MentorProfile, error)
	SearchMentors(ctx context.Context, query string) ([]domain.MentorProfile, error)
	TopMentors(ctx context.Context, limit int) ([]domain.MentorProfile, error)
	UpdateMentor(ctx context.Context, mentor *domain.MentorProfile) error

	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	ListSessionsForUser(ctx context.Context, userID string) ([]domain.Session, error)

	// Lifecycle
	Close() error
}
