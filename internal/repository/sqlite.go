package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection so schema and data survive across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS mentors (
			mentor_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			expertise TEXT NOT NULL DEFAULT '[]',
			availability TEXT NOT NULL DEFAULT '[]',
			hourly_rate REAL NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			metrics TEXT NOT NULL DEFAULT '{}',
			languages TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mentors_status ON mentors(status)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			mentorship_request_id TEXT NOT NULL DEFAULT '',
			mentor_id TEXT NOT NULL,
			participant_ids TEXT NOT NULL DEFAULT '[]',
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			session_type TEXT NOT NULL DEFAULT 'MENTORING',
			status TEXT NOT NULL,
			scheduled_start DATETIME NOT NULL,
			scheduled_end DATETIME NOT NULL,
			actual_start DATETIME,
			actual_end DATETIME,
			channel_id TEXT NOT NULL DEFAULT '',
			recording_url TEXT NOT NULL DEFAULT '',
			transcript_url TEXT NOT NULL DEFAULT '',
			feedback TEXT NOT NULL DEFAULT '{}',
			rating REAL NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_mentor ON sessions(mentor_id, scheduled_start)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const mentorColumns = `mentor_id, name, email, bio, title, company, expertise, availability,
	hourly_rate, currency, status, metrics, languages, created_at, updated_at`

// CreateMentor inserts a mentor profile.
func (s *SQLiteStore) CreateMentor(ctx context.Context, m *domain.MentorProfile) error {
	expertise, err := encodeJSON(m.Expertise)
	if err != nil {
		return err
	}
	availability, err := encodeJSON(m.Availability)
	if err != nil {
		return err
	}
	metrics, err := encodeJSON(m.Metrics)
	if err != nil {
		return err
	}
	languages, err := encodeJSON(m.Languages)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO mentors (`+mentorColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MentorID, m.Name, m.Email, m.Bio, m.Title, m.Company, expertise, availability,
		m.HourlyRate, m.Currency, string(m.Status), metrics, languages, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}
	return nil
}

// GetMentor retrieves a mentor by id. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetMentor(ctx context.Context, mentorID string) (*domain.MentorProfile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mentorColumns+` FROM mentors WHERE mentor_id = ?`, mentorID)
	m, err := scanMentor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	return m, nil
}

// ListMentorsByStatus retrieves all mentors with the given status in insertion order.
func (s *SQLiteStore) ListMentorsByStatus(ctx context.Context, status domain.MentorStatus) ([]domain.MentorProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mentorColumns+` FROM mentors WHERE status = ? ORDER BY created_at ASC, mentor_id ASC`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	defer rows.Close()
	return collectMentors(rows)
}

// SearchMentors does a case-insensitive substring match over name, bio, title
// and company. Only ACTIVE mentors are returned.
func (s *SQLiteStore) SearchMentors(ctx context.Context, query string) ([]domain.MentorProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mentorColumns+` FROM mentors
		WHERE status = ? AND lower(name || ' ' || bio || ' ' || title || ' ' || company) LIKE ?
		ORDER BY created_at ASC, mentor_id ASC`,
		string(domain.MentorStatusActive), "%"+strings.ToLower(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search mentors: %w", err)
	}
	defer rows.Close()
	return collectMentors(rows)
}

// TopMentors retrieves ACTIVE mentors ordered by average rating descending.
// Ties break on insertion order, which keeps the ordering stable.
func (s *SQLiteStore) TopMentors(ctx context.Context, limit int) ([]domain.MentorProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mentorColumns+` FROM mentors WHERE status = ?
		ORDER BY json_extract(metrics, '$.average_rating') DESC, created_at ASC, mentor_id ASC
		LIMIT ?`,
		string(domain.MentorStatusActive), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top mentors: %w", err)
	}
	defer rows.Close()
	return collectMentors(rows)
}

// UpdateMentor replaces a mentor row.
func (s *SQLiteStore) UpdateMentor(ctx context.Context, m *domain.MentorProfile) error {
	expertise, err := encodeJSON(m.Expertise)
	if err != nil {
		return err
	}
	availability, err := encodeJSON(m.Availability)
	if err != nil {
		return err
	}
	metrics, err := encodeJSON(m.Metrics)
	if err != nil {
		return err
	}
	languages, err := encodeJSON(m.Languages)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `UPDATE mentors SET name = ?, email = ?, bio = ?, title = ?,
		company = ?, expertise = ?, availability = ?, hourly_rate = ?, currency = ?, status = ?,
		metrics = ?, languages = ?, updated_at = ?
		WHERE mentor_id = ?`,
		m.Name, m.Email, m.Bio, m.Title, m.Company, expertise, availability, m.HourlyRate,
		m.Currency, string(m.Status), metrics, languages, m.UpdatedAt, m.MentorID)
	if err != nil {
		return fmt.Errorf("failed to update mentor: %w", err)
	}
	return nil
}

const sessionColumns = `session_id, mentorship_request_id, mentor_id, participant_ids, title,
	description, session_type, status, scheduled_start, scheduled_end, actual_start, actual_end,
	channel_id, recording_url, transcript_url, feedback, rating, notes, created_at, updated_at`

// CreateSession inserts a session.
func (s *SQLiteStore) CreateSession(ctx context.Context, sess *domain.Session) error {
	participants, err := encodeJSON(sess.ParticipantIDs)
	if err != nil {
		return err
	}
	feedback, err := encodeJSON(sess.Feedback)
	if err != nil {
		return err
	}
	notes, err := encodeJSON(sess.Notes)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.SessionID, sess.MentorshipRequestID, sess.MentorID, participants, sess.Title,
		sess.Description, string(sess.Type), string(sess.Status), sess.ScheduledStartTime,
		sess.ScheduledEndTime, nullableTime(sess.ActualStartTime), nullableTime(sess.ActualEndTime),
		sess.ChannelID, sess.RecordingURL, sess.TranscriptURL, feedback, sess.Rating, notes,
		sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by id. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

// UpdateSession replaces a session row.
func (s *SQLiteStore) UpdateSession(ctx context.Context, sess *domain.Session) error {
	participants, err := encodeJSON(sess.ParticipantIDs)
	if err != nil {
		return err
	}
	feedback, err := encodeJSON(sess.Feedback)
	if err != nil {
		return err
	}
	notes, err := encodeJSON(sess.Notes)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `UPDATE sessions SET mentorship_request_id = ?, mentor_id = ?,
		participant_ids = ?, title = ?, description = ?, session_type = ?, status = ?,
		scheduled_start = ?, scheduled_end = ?, actual_start = ?, actual_end = ?, channel_id = ?,
		recording_url = ?, transcript_url = ?, feedback = ?, rating = ?, notes = ?, updated_at = ?
		WHERE session_id = ?`,
		sess.MentorshipRequestID, sess.MentorID, participants, sess.Title, sess.Description,
		string(sess.Type), string(sess.Status), sess.ScheduledStartTime, sess.ScheduledEndTime,
		nullableTime(sess.ActualStartTime), nullableTime(sess.ActualEndTime), sess.ChannelID,
		sess.RecordingURL, sess.TranscriptURL, feedback, sess.Rating, notes, sess.UpdatedAt,
		sess.SessionID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// ListSessionsForUser retrieves sessions where the user is the mentor or is in
// the participant set, ordered by scheduled start.
func (s *SQLiteStore) ListSessionsForUser(ctx context.Context, userID string) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		WHERE mentor_id = ?
		   OR EXISTS (SELECT 1 FROM json_each(sessions.participant_ids) WHERE json_each.value = ?)
		ORDER BY scheduled_start ASC, session_id ASC`,
		userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMentor(row rowScanner) (*domain.MentorProfile, error) {
	var m domain.MentorProfile
	var expertise, availability, metrics, languages, status string
	if err := row.Scan(&m.MentorID, &m.Name, &m.Email, &m.Bio, &m.Title, &m.Company,
		&expertise, &availability, &m.HourlyRate, &m.Currency, &status, &metrics,
		&languages, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Status = domain.MentorStatus(status)
	if err := decodeJSON(expertise, &m.Expertise); err != nil {
		return nil, err
	}
	if err := decodeJSON(availability, &m.Availability); err != nil {
		return nil, err
	}
	if err := decodeJSON(metrics, &m.Metrics); err != nil {
		return nil, err
	}
	if err := decodeJSON(languages, &m.Languages); err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMentors(rows *sql.Rows) ([]domain.MentorProfile, error) {
	var mentors []domain.MentorProfile
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mentor: %w", err)
		}
		mentors = append(mentors, *m)
	}
	return mentors, rows.Err()
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var sess domain.Session
	var participants, feedback, notes, sessType, status string
	var actualStart, actualEnd sql.NullTime
	if err := row.Scan(&sess.SessionID, &sess.MentorshipRequestID, &sess.MentorID, &participants,
		&sess.Title, &sess.Description, &sessType, &status, &sess.ScheduledStartTime,
		&sess.ScheduledEndTime, &actualStart, &actualEnd, &sess.ChannelID, &sess.RecordingURL,
		&sess.TranscriptURL, &feedback, &sess.Rating, &notes, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
		return nil, err
	}
	sess.Type = domain.SessionType(sessType)
	sess.Status = domain.SessionStatus(status)
	if actualStart.Valid {
		t := actualStart.Time
		sess.ActualStartTime = &t
	}
	if actualEnd.Valid {
		t := actualEnd.Time
		sess.ActualEndTime = &t
	}
	if err := decodeJSON(participants, &sess.ParticipantIDs); err != nil {
		return nil, err
	}
	if err := decodeJSON(feedback, &sess.Feedback); err != nil {
		return nil, err
	}
	if err := decodeJSON(notes, &sess.Notes); err != nil {
		return nil, err
	}
	return &sess, nil
}

func encodeJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal column: %w", err)
	}
	return string(b), nil
}

func decodeJSON(s string, v interface{}) error {
	if s == "" || s == "null" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
