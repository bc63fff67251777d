package system

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fastward/fastward/internal/cli"
	"github.com/fastward/fastward/internal/fasting"
	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/storage"
)

func newNotifyContext(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "fastward.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return &cli.Context{Store: store, Fasting: fasting.NewService(store), UserID: "local"}
}

// insertFastWithDueHalfway stores an active 16h fast whose halfway
// reminder fired two minutes ago, inside the default grace window.
// Returns the session ID and the halfway fire instant.
func insertFastWithDueHalfway(t *testing.T, ctx *cli.Context) (string, int64) {
	t.Helper()
	startedAt := time.Now().UnixMilli() - 8*time.Hour.Milliseconds() - 2*time.Minute.Milliseconds()
	sess := models.FastingSession{
		ID:           uuid.NewString(),
		UserID:       ctx.UserID,
		Protocol:     "16:8",
		Status:       models.SessionActive,
		StartedAt:    startedAt,
		TargetEndAt:  startedAt + 16*time.Hour.Milliseconds(),
		FastingHours: 16,
	}
	if err := ctx.Store.InsertSession(sess); err != nil {
		t.Fatalf("failed to insert session: %v", err)
	}
	return sess.ID, startedAt + 8*time.Hour.Milliseconds()
}

func TestNotifyDryRunLeavesSentLogUntouched(t *testing.T) {
	ctx := newNotifyContext(t)
	sessID, halfwayAt := insertFastWithDueHalfway(t, ctx)

	cmd := &NotifyCmd{DryRun: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	sent, err := ctx.Store.WasNotificationSent(ctx.UserID, sessID, models.NotifHalfway, halfwayAt)
	if err != nil {
		t.Fatalf("failed to check notification log: %v", err)
	}
	if sent {
		t.Error("dry run recorded the entry in the sent-notification log")
	}

	// A repeated dry run must also leave the entry eligible.
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second dry run failed: %v", err)
	}
	sent, err = ctx.Store.WasNotificationSent(ctx.UserID, sessID, models.NotifHalfway, halfwayAt)
	if err != nil {
		t.Fatalf("failed to check notification log: %v", err)
	}
	if sent {
		t.Error("repeated dry run recorded the entry in the sent-notification log")
	}
}
