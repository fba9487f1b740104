package domain

import "time"

// ScheduleSessionRequest is the request to create a session.
type ScheduleSessionRequest struct {
	MentorshipRequestID string      `json:"mentorship_request_id,omitempty"`
	MentorID            string      `json:"mentor_id" validate:"required"`
	ParticipantIDs      []string    `json:"participant_ids"`
	Title               string      `json:"title" validate:"required"`
	Description         string      `json:"description,omitempty"`
	Type                SessionType `json:"type,omitempty"`
	ScheduledStartTime  time.Time   `json:"scheduled_start_time" validate:"required"`
	ScheduledEndTime    time.Time   `json:"scheduled_end_time" validate:"required"`
}

// RescheduleSessionRequest moves a scheduled session to a new time window.
type RescheduleSessionRequest struct {
	ScheduledStartTime time.Time `json:"scheduled_start_time" validate:"required"`
	ScheduledEndTime   time.Time `json:"scheduled_end_time" validate:"required"`
}

// CancelSessionRequest cancels a scheduled session with a reason.
type CancelSessionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// FeedbackRequest submits one participant's rating for a completed session.
type FeedbackRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comments string `json:"comments,omitempty"`
}

// JoinResponse is returned from start and join with the live-channel credentials.
// The join token carries an implied short expiry; the core does not refresh it.
type JoinResponse struct {
	SessionID        string `json:"session_id"`
	ChannelID        string `json:"channel_id"`
	JoinToken        string `json:"join_token"`
	MeetingReference string `json:"meeting_reference"`
}
