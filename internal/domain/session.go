package domain

import "time"

// Feedback is one participant's rating of a completed session.
type Feedback struct {
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Session is the central mutable entity of the core. The mentor and the
// participant set jointly define who may act on it; the session id is the
// unit of concurrency control.
type Session struct {
	SessionID           string              `json:"session_id"`
	MentorshipRequestID string              `json:"mentorship_request_id,omitempty"`
	MentorID            string              `json:"mentor_id"`
	ParticipantIDs      []string            `json:"participant_ids"`
	Title               string              `json:"title"`
	Description         string              `json:"description,omitempty"`
	Type                SessionType         `json:"type"`
	Status              SessionStatus       `json:"status"`
	ScheduledStartTime  time.Time           `json:"scheduled_start_time"`
	ScheduledEndTime    time.Time           `json:"scheduled_end_time"`
	ActualStartTime     *time.Time          `json:"actual_start_time,omitempty"`
	ActualEndTime       *time.Time          `json:"actual_end_time,omitempty"`
	ChannelID           string              `json:"channel_id,omitempty"`
	RecordingURL        string              `json:"recording_url,omitempty"`
	TranscriptURL       string              `json:"transcript_url,omitempty"`
	Feedback            map[string]Feedback `json:"feedback,omitempty"`
	Rating              float64             `json:"rating,omitempty"`
	Notes               []string            `json:"notes,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// IsParty reports whether the user is the session's mentor or a participant.
func (s *Session) IsParty(userID string) bool {
	if userID == s.MentorID {
		return true
	}
	for _, p := range s.ParticipantIDs {
		if p == userID {
			return true
		}
	}
	return false
}

// CanJoin reports whether the user may join the session in its current state.
// Role distinctions beyond mentor/participant are external metadata the
// lifecycle does not interpret.
func (s *Session) CanJoin(userID string) bool {
	if s.Status != SessionStatusScheduled && s.Status != SessionStatusInProgress {
		return false
	}
	return s.IsParty(userID)
}

// DurationMinutes derives the live duration from the actual timestamps.
// Returns 0 until both ends of the interval are recorded.
func (s *Session) DurationMinutes() int {
	if s.ActualStartTime == nil || s.ActualEndTime == nil {
		return 0
	}
	return int(s.ActualEndTime.Sub(*s.ActualStartTime).Minutes())
}

// UserSessionStats aggregates a user's sessions across the directory.
type UserSessionStats struct {
	UserID            string  `json:"user_id"`
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	UpcomingSessions  int     `json:"upcoming_sessions"`
	TotalMinutes      int     `json:"total_minutes"`
	AverageRating     float64 `json:"average_rating"`
}
