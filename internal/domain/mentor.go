package domain

import "time"

// MaxActiveStudents is the hard cap on concurrently mentored students.
const MaxActiveStudents = 30

// Expertise is one area a mentor can coach in.
type Expertise struct {
	Category        string `json:"category"`
	Subcategory     string `json:"subcategory,omitempty"`
	YearsExperience int    `json:"years_experience"`
	Level           string `json:"level,omitempty"`
}

// AvailabilityWindow is a weekly recurring time window a mentor is reachable in.
type AvailabilityWindow struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

// MentorMetrics holds rolling performance numbers for a mentor.
// AverageRating stays within [0,5]; SuccessRate and CompletionRate within [0,1].
type MentorMetrics struct {
	TotalSessions     int     `json:"total_sessions"`
	AverageRating     float64 `json:"average_rating"`
	TotalStudents     int     `json:"total_students"`
	SuccessRate       float64 `json:"success_rate"`
	ResponseTimeHours float64 `json:"response_time_hours"`
	CompletionRate    float64 `json:"completion_rate"`
}

// MetricsPatch is a shallow merge-patch for MentorMetrics. Nil fields are left untouched.
type MetricsPatch struct {
	TotalSessions     *int     `json:"total_sessions,omitempty"`
	AverageRating     *float64 `json:"average_rating,omitempty"`
	TotalStudents     *int     `json:"total_students,omitempty"`
	SuccessRate       *float64 `json:"success_rate,omitempty"`
	ResponseTimeHours *float64 `json:"response_time_hours,omitempty"`
	CompletionRate    *float64 `json:"completion_rate,omitempty"`
}

// Apply merges the patch into the metrics, field by field.
func (p *MetricsPatch) Apply(m *MentorMetrics) {
	if p.TotalSessions != nil {
		m.TotalSessions = *p.TotalSessions
	}
	if p.AverageRating != nil {
		m.AverageRating = *p.AverageRating
	}
	if p.TotalStudents != nil {
		m.TotalStudents = *p.TotalStudents
	}
	if p.SuccessRate != nil {
		m.SuccessRate = *p.SuccessRate
	}
	if p.ResponseTimeHours != nil {
		m.ResponseTimeHours = *p.ResponseTimeHours
	}
	if p.CompletionRate != nil {
		m.CompletionRate = *p.CompletionRate
	}
}

// MentorProfile is the supply-side expert profile available for matching and sessions.
// Profiles are never deleted; retirement is a status transition.
type MentorProfile struct {
	MentorID     string               `json:"mentor_id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Bio          string               `json:"bio,omitempty"`
	Title        string               `json:"title,omitempty"`
	Company      string               `json:"company,omitempty"`
	Expertise    []Expertise          `json:"expertise"`
	Availability []AvailabilityWindow `json:"availability,omitempty"`
	HourlyRate   float64              `json:"hourly_rate"`
	Currency     string               `json:"currency,omitempty"`
	Status       MentorStatus         `json:"status"`
	Metrics      MentorMetrics        `json:"metrics"`
	Languages    []string             `json:"languages,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// CanAcceptNewStudents enforces the capacity cap: only an ACTIVE mentor below
// MaxActiveStudents may take on another student. Matching may still surface a
// mentor at capacity; assignment re-checks through this.
func (m *MentorProfile) CanAcceptNewStudents() bool {
	return m.Status == MentorStatusActive && m.Metrics.TotalStudents < MaxActiveStudents
}
