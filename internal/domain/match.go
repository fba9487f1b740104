package domain

// MentorshipRequest is the demand-side input to matching. A request is
// immutable once submitted; re-submitting creates a new match attempt.
type MentorshipRequest struct {
	RequestID          string   `json:"request_id,omitempty"`
	MenteeID           string   `json:"mentee_id,omitempty"`
	Goals              string   `json:"goals"`
	Description        string   `json:"description,omitempty"`
	PreferredExpertise []string `json:"preferred_expertise,omitempty"`
	BudgetMax          float64  `json:"budget_max,omitempty"`
	Languages          []string `json:"languages,omitempty"`
	Limit              int      `json:"limit,omitempty"`
}

// MatchFilters echoes the structured filters a match attempt was run with.
type MatchFilters struct {
	PreferredExpertise []string `json:"preferred_expertise,omitempty"`
	BudgetMax          float64  `json:"budget_max,omitempty"`
	Languages          []string `json:"languages,omitempty"`
}

// MatchResult ranks one mentor against a request, with explainable scoring.
// Results are response artifacts, never persisted as authoritative state.
type MatchResult struct {
	Mentor       MentorProfile `json:"mentor"`
	MatchScore   float64       `json:"match_score"`
	Strengths    []string      `json:"strengths"`
	MatchReasons []string      `json:"match_reasons"`
}

// MatchSet wraps an ordered ranking of match results.
type MatchSet struct {
	Matches      []MatchResult `json:"matches"`
	TotalMatches int           `json:"total_matches"`
	SearchTimeMs int64         `json:"search_time_ms"`
	Filters      MatchFilters  `json:"filters"`
}
