package policy

import (
	"context"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to prepare policy: %v", err)
	}
	return engine
}

func TestDefaultPolicyDecisions(t *testing.T) {
	engine := newTestEngine(t)

	input := func(op, user string) Input {
		return Input{
			Operation:      op,
			UserID:         user,
			MentorID:       "mentor1",
			ParticipantIDs: []string{"alice", "bob"},
		}
	}

	cases := []struct {
		name string
		in   Input
		want string
	}{
		{"mentor can end", input("end", "mentor1"), DecisionAllow},
		{"mentor can reschedule", input("reschedule", "mentor1"), DecisionAllow},
		{"participant cannot end", input("end", "alice"), DecisionDeny},
		{"participant cannot reschedule", input("reschedule", "bob"), DecisionDeny},
		{"participant can join", input("join", "alice"), DecisionAllow},
		{"participant can start", input("start", "bob"), DecisionAllow},
		{"participant can cancel", input("cancel", "alice"), DecisionAllow},
		{"participant can submit feedback", input("feedback", "bob"), DecisionAllow},
		{"stranger denied join", input("join", "mallory"), DecisionDeny},
		{"stranger denied cancel", input("cancel", "mallory"), DecisionDeny},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.Evaluate(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNewEngineRejectsBrokenPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package session_policy\n\ndecision := {")
	if err == nil {
		t.Fatalf("expected error for malformed policy")
	}
}

func TestEvaluateEmptyParticipants(t *testing.T) {
	engine := newTestEngine(t)

	got, err := engine.Evaluate(context.Background(), Input{
		Operation: "join",
		UserID:    "alice",
		MentorID:  "mentor1",
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got != DecisionDeny {
		t.Fatalf("expected deny, got %q", got)
	}
}
