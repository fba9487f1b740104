// Package policy evaluates session-operation authorization through OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decisions returned by the policy.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// Engine is the OPA policy engine for session authorization.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given rego policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.session_policy.decision"),
		rego.Module("session_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Input describes one authorization check: who is acting, on which session,
// doing what. The engine only sees relationships, never credentials.
type Input struct {
	Operation      string
	UserID         string
	MentorID       string
	ParticipantIDs []string
}

// Evaluate checks the session policy and returns the decision string.
func (e *Engine) Evaluate(ctx context.Context, in Input) (string, error) {
	participants := make([]interface{}, 0, len(in.ParticipantIDs))
	for _, p := range in.ParticipantIDs {
		participants = append(participants, p)
	}
	input := map[string]interface{}{
		"operation":       in.Operation,
		"user_id":         in.UserID,
		"mentor_id":       in.MentorID,
		"participant_ids": participants,
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionDeny, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return DecisionDeny, nil
}

// DefaultPolicy encodes the relationship rules of the session lifecycle:
// ending and rescheduling are mentor-only; joining, starting, cancelling and
// feedback are open to the mentor and anyone in the participant set.
const DefaultPolicy = `
package session_policy

import rego.v1

default decision := "deny"

mentor_only := {"end", "reschedule"}

decision := "allow" if {
	input.user_id == input.mentor_id
}

decision := "allow" if {
	not input.operation in mentor_only
	some p in input.participant_ids
	p == input.user_id
}
`
