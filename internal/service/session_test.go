package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/tests/helpers"
)

var baseTime = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func scheduleTestSession(t *testing.T, svc *Service, mentorID string, participants []string, start, end time.Time) *domain.Session {
	t.Helper()
	sess, err := svc.Schedule(context.Background(), domain.ScheduleSessionRequest{
		MentorID:           mentorID,
		ParticipantIDs:     participants,
		Title:              "Architecture review",
		ScheduledStartTime: start,
		ScheduledEndTime:   end,
	})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	return sess
}

func TestScheduleCreatesScheduledSession(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1", "m1", "u1"}, start, start.Add(time.Hour))

	if sess.Status != domain.SessionStatusScheduled {
		t.Fatalf("expected SCHEDULED, got %s", sess.Status)
	}
	if len(sess.ParticipantIDs) != 1 || sess.ParticipantIDs[0] != "u1" {
		t.Fatalf("expected participants [u1], got %v", sess.ParticipantIDs)
	}
	if sess.Type != domain.SessionTypeMentoring {
		t.Fatalf("expected default type MENTORING, got %s", sess.Type)
	}

	stored, err := db.GetSession(context.Background(), sess.SessionID)
	if err != nil || stored == nil {
		t.Fatalf("session not persisted: %v", err)
	}
}

func TestScheduleRejectsBadTimeRange(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)

	_, err := svc.Schedule(context.Background(), domain.ScheduleSessionRequest{
		MentorID:           "m1",
		Title:              "X",
		ScheduledStartTime: baseTime.Add(time.Hour),
		ScheduledEndTime:   baseTime.Add(time.Hour),
	})
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScheduleUnknownMentor(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Schedule(context.Background(), domain.ScheduleSessionRequest{
		MentorID:           "nope",
		Title:              "X",
		ScheduledStartTime: baseTime,
		ScheduledEndTime:   baseTime.Add(time.Hour),
	})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestScheduleMentorAtCapacity(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", func(m *domain.MentorProfile) {
		m.Metrics.TotalStudents = domain.MaxActiveStudents
	})

	_, err := svc.Schedule(context.Background(), domain.ScheduleSessionRequest{
		MentorID:           "m1",
		Title:              "X",
		ScheduledStartTime: baseTime,
		ScheduledEndTime:   baseTime.Add(time.Hour),
	})
	if !domain.IsKind(err, domain.KindInvalidState) {
		t.Fatalf("expected invalid-state error, got %v", err)
	}
}

func TestCanStartWindow(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"ten minutes early", start.Add(-10 * time.Minute), false},
		{"five minutes early", start.Add(-5 * time.Minute), true},
		{"at start", start, true},
		{"before scheduled end", start.Add(59 * time.Minute), true},
		{"after scheduled end", start.Add(61 * time.Minute), false},
	}
	for _, tc := range cases {
		if got := svc.CanStart(sess, tc.now); got != tc.want {
			t.Errorf("%s: CanStart = %v, want %v", tc.name, got, tc.want)
		}
	}

	sess.Status = domain.SessionStatusCompleted
	if svc.CanStart(sess, start) {
		t.Errorf("completed session must not be startable")
	}
}

func TestJoinBeforeStartWindow(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	setNow := pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))

	setNow(start.Add(-10 * time.Minute))
	_, err := svc.Join(context.Background(), sess.SessionID, "u1")
	if !domain.IsKind(err, domain.KindInvalidState) {
		t.Fatalf("expected invalid-state error, got %v", err)
	}
}

func TestJoinAutoPromotesInsideWindow(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	setNow := pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))

	setNow(start.Add(-2 * time.Minute))
	resp, err := svc.Join(context.Background(), sess.SessionID, "u1")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if resp.ChannelID == "" || resp.JoinToken == "" || resp.MeetingReference == "" {
		t.Fatalf("incomplete join response: %+v", resp)
	}

	stored, err := svc.GetSession(context.Background(), sess.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if stored.Status != domain.SessionStatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", stored.Status)
	}
	if stored.ActualStartTime == nil {
		t.Fatalf("expected actual start time set")
	}
	if !svc.channels.Active(resp.ChannelID) {
		t.Fatalf("expected channel registered")
	}
	members := svc.channels.Members(resp.ChannelID)
	if len(members) != 1 || members[0] != "u1" {
		t.Fatalf("expected sole member u1, got %v", members)
	}
}

func TestJoinStranger(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))

	_, err := svc.Join(context.Background(), sess.SessionID, "intruder")
	if !domain.IsKind(err, domain.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestStartThenJoinSharesChannel(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	setNow := pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))

	setNow(start)
	started, err := svc.Start(context.Background(), sess.SessionID, "m1")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	joined, err := svc.Join(context.Background(), sess.SessionID, "u1")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if joined.ChannelID != started.ChannelID {
		t.Fatalf("expected shared channel, got %s vs %s", joined.ChannelID, started.ChannelID)
	}
	if joined.JoinToken == started.JoinToken {
		t.Fatalf("expected a fresh token per joiner")
	}
	if len(svc.channels.Members(started.ChannelID)) != 2 {
		t.Fatalf("expected 2 members, got %v", svc.channels.Members(started.ChannelID))
	}

	// Re-joining is idempotent for the member set.
	if _, err := svc.Join(context.Background(), sess.SessionID, "u1"); err != nil {
		t.Fatalf("repeat Join failed: %v", err)
	}
	if len(svc.channels.Members(started.ChannelID)) != 2 {
		t.Fatalf("expected repeat join to leave member set unchanged")
	}
}

func TestStartOutsideWindow(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))

	_, err := svc.Start(context.Background(), sess.SessionID, "m1")
	if !domain.IsKind(err, domain.KindInvalidState) {
		t.Fatalf("expected invalid-state error, got %v", err)
	}
}

func TestStartUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Start(context.Background(), "missing", "m1")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestEndLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	setNow := pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))

	// Ending before the session is live is a state error even for the mentor.
	_, err := svc.End(context.Background(), sess.SessionID, "m1")
	if !domain.IsKind(err, domain.KindInvalidState) {
		t.Fatalf("expected invalid-state error, got %v", err)
	}

	setNow(start)
	started, err := svc.Start(context.Background(), sess.SessionID, "m1")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Only the mentor may end.
	_, err = svc.End(context.Background(), sess.SessionID, "u1")
	if !domain.IsKind(err, domain.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	setNow(start.Add(45 * time.Minute))
	ended, err := svc.End(context.Background(), sess.SessionID, "m1")
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if ended.Status != domain.SessionStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", ended.Status)
	}
	if ended.ActualEndTime == nil || ended.DurationMinutes() != 45 {
		t.Fatalf("expected 45 minute duration, got %+v", ended)
	}
	if svc.channels.Active(started.ChannelID) {
		t.Fatalf("expected channel retired on end")
	}

	// Completed is terminal.
	_, err = svc.End(context.Background(), sess.SessionID, "m1")
	if !domain.IsKind(err, domain.KindInvalidState) {
		t.Fatalf("expected invalid-state error after completion, got %v", err)
	}
}

func TestCancelLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))

	_, err := svc.Cancel(context.Background(), sess.SessionID, "intruder", "nope")
	if !domain.IsKind(err, domain.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), sess.SessionID, "u1", "conflict came up")
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != domain.SessionStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if len(cancelled.Notes) != 1 {
		t.Fatalf("expected a cancellation note, got %v", cancelled.Notes)
	}

	// Cancelled is terminal.
	_, err = svc.Cancel(context.Background(), sess.SessionID, "m1", "again")
	if !domain.IsKind(err, domain.KindInvalidState) {
		t.Fatalf("expected invalid-state error, got %v", err)
	}
}

func TestReschedule(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))

	newStart := start.Add(24 * time.Hour)

	// Mentor only.
	_, err := svc.Reschedule(context.Background(), sess.SessionID, "u1", domain.RescheduleSessionRequest{
		ScheduledStartTime: newStart,
		ScheduledEndTime:   newStart.Add(time.Hour),
	})
	if !domain.IsKind(err, domain.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	// Bad range.
	_, err = svc.Reschedule(context.Background(), sess.SessionID, "m1", domain.RescheduleSessionRequest{
		ScheduledStartTime: newStart,
		ScheduledEndTime:   newStart,
	})
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	moved, err := svc.Reschedule(context.Background(), sess.SessionID, "m1", domain.RescheduleSessionRequest{
		ScheduledStartTime: newStart,
		ScheduledEndTime:   newStart.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if moved.Status != domain.SessionStatusScheduled {
		t.Fatalf("reschedule must not change status, got %s", moved.Status)
	}
	if !moved.ScheduledStartTime.Equal(newStart) {
		t.Fatalf("expected start %v, got %v", newStart, moved.ScheduledStartTime)
	}
}

func TestConcurrentStartAllocatesOneChannel(t *testing.T) {
	svc, db := newTestService(t)
	helpers.SeedMentor(t, db, "m1", nil)
	setNow := pinClock(svc, baseTime)

	start := baseTime.Add(time.Hour)
	sess := scheduleTestSession(t, svc, "m1", []string{"u1"}, start, start.Add(time.Hour))
	setNow(start)

	var wg sync.WaitGroup
	results := make([]error, 2)
	responses := make([]*domain.JoinResponse, 2)
	callers := []string{"m1", "u1"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			responses[i], results[i] = svc.Start(context.Background(), sess.SessionID, callers[i])
		}(i)
	}
	wg.Wait()

	var wins, losses int
	var channelID string
	for i := range results {
		if results[i] == nil {
			wins++
			channelID = responses[i].ChannelID
		} else if domain.IsKind(results[i], domain.KindInvalidState) {
			losses++
		} else {
			t.Fatalf("unexpected error: %v", results[i])
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("expected exactly one winner, got %d wins, %d losses", wins, losses)
	}

	stored, err := svc.GetSession(context.Background(), sess.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if stored.Status != domain.SessionStatusInProgress || stored.ChannelID != channelID {
		t.Fatalf("unexpected session state: %+v", stored)
	}
	if !svc.channels.Active(channelID) {
		t.Fatalf("expected winner's channel registered")
	}
}
