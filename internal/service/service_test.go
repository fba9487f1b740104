package service

import (
	"context"
	"testing"
	"time"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/adapter/rtc"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/config"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/repository"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/policy"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/tests/helpers"
)

func newTestService(t *testing.T) (*Service, *repository.SQLiteStore) {
	t.Helper()

	db := helpers.NewTestSQLiteStore(t)
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	cfg := &config.Config{
		TokenSecret:    "test-secret",
		TokenTTL:       15 * time.Minute,
		MeetingBaseURL: "https://meet.test",
	}
	tokens := rtc.NewTokenProvider(cfg.TokenSecret, cfg.TokenTTL, cfg.MeetingBaseURL)

	svc := New(db, tokens, nil, engine, cfg)
	return svc, db
}

// pinClock freezes the service clock at the given instant and returns a
// setter to advance it.
func pinClock(svc *Service, at time.Time) func(time.Time) {
	current := at
	svc.now = func() time.Time { return current }
	return func(t time.Time) { current = t }
}
