package v1

import (
	"context"
	"testing"
	"time"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/adapter/rtc"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/config"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/repository"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/service"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/policy"
	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/tests/helpers"
)

func newTestHandler(t *testing.T) (*Handler, *repository.SQLiteStore) {
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

	svc := service.New(db, tokens, nil, engine, cfg)
	return NewHandler(svc), db
}
