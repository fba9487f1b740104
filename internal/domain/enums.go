// Package domain defines the core domain models for the mentorship platform.
package domain

// SessionStatus represents the lifecycle state of a coaching session.
type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "SCHEDULED"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
	SessionStatusCancelled  SessionStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed from the status.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled
}

// SessionType categorizes what a session is for.
type SessionType string

const (
	SessionTypeMentoring  SessionType = "MENTORING"
	SessionTypeWorkshop   SessionType = "WORKSHOP"
	SessionTypeCodeReview SessionType = "CODE_REVIEW"
)

// MentorStatus represents the availability state of a mentor profile.
type MentorStatus string

const (
	MentorStatusActive    MentorStatus = "ACTIVE"
	MentorStatusInactive  MentorStatus = "INACTIVE"
	MentorStatusSuspended MentorStatus = "SUSPENDED"
)

// NotificationEvent identifies lifecycle events published to the notification service.
type NotificationEvent string

const (
	EventSessionScheduled NotificationEvent = "session_scheduled"
	EventSessionStarted   NotificationEvent = "session_started"
	EventSessionCancelled NotificationEvent = "session_cancelled"
	EventFeedbackReceived NotificationEvent = "feedback_received"
)
