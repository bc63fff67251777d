package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/fastward/fastward/internal/models"
)

func newTestProvider(t *testing.T) Provider {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "fastward.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testSession(userID string, status models.SessionStatus, startedAt int64) models.FastingSession {
	sess := models.FastingSession{
		ID:           uuid.New().String(),
		UserID:       userID,
		Protocol:     "16:8",
		Status:       status,
		StartedAt:    startedAt,
		TargetEndAt:  startedAt + 16*60*60*1000,
		FastingHours: 16,
	}
	if status != models.SessionActive {
		end := sess.TargetEndAt
		sess.ActualEndAt = &end
	}
	return sess
}

func TestInsertAndFindActiveSession(t *testing.T) {
	store := newTestProvider(t)

	sess := testSession("local", models.SessionActive, 1000)
	if err := store.InsertSession(sess); err != nil {
		t.Fatalf("InsertSession: %v", err)
	}

	got, err := store.FindActiveSession("local")
	if err != nil {
		t.Fatalf("FindActiveSession: %v", err)
	}
	if got == nil {
		t.Fatal("expected active session")
	}
	if got.ID != sess.ID || got.Protocol != "16:8" || got.TargetEndAt != sess.TargetEndAt {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestFindActiveSessionNone(t *testing.T) {
	store := newTestProvider(t)
	got, err := store.FindActiveSession("local")
	if err != nil {
		t.Fatalf("FindActiveSession: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestDuplicateActiveSessionRejected(t *testing.T) {
	store := newTestProvider(t)

	if err := store.InsertSession(testSession("local", models.SessionActive, 1000)); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := store.InsertSession(testSession("local", models.SessionActive, 2000))
	if !errors.Is(err, ErrDuplicateActiveSession) {
		t.Fatalf("err = %v, want ErrDuplicateActiveSession", err)
	}

	// A different user is unaffected.
	if err := store.InsertSession(testSession("other", models.SessionActive, 2000)); err != nil {
		t.Fatalf("other user insert: %v", err)
	}

	// Finished sessions never trip the index.
	if err := store.InsertSession(testSession("local", models.SessionCompleted, 500)); err != nil {
		t.Fatalf("completed insert: %v", err)
	}
}

func TestFindSessionByID(t *testing.T) {
	store := newTestProvider(t)

	sess := testSession("local", models.SessionActive, 1000)
	if err := store.InsertSession(sess); err != nil {
		t.Fatal(err)
	}

	got, err := store.FindSessionByID("local", sess.ID)
	if err != nil {
		t.Fatalf("FindSessionByID: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("id = %s, want %s", got.ID, sess.ID)
	}

	if _, err := store.FindSessionByID("local", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id err = %v, want ErrNotFound", err)
	}

	// Sessions are scoped per user.
	if _, err := store.FindSessionByID("other", sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong user err = %v, want ErrNotFound", err)
	}
}

func TestUpdateSession(t *testing.T) {
	store := newTestProvider(t)

	sess := testSession("local", models.SessionActive, 1000)
	if err := store.InsertSession(sess); err != nil {
		t.Fatal(err)
	}

	end := sess.TargetEndAt
	sess.Status = models.SessionCompleted
	sess.ActualEndAt = &end
	sess.WaterCount = 4
	if err := store.UpdateSession(sess); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}

	got, err := store.FindSessionByID("local", sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.SessionCompleted || got.WaterCount != 4 {
		t.Errorf("update not persisted: %+v", got)
	}
	if got.ActualEndAt == nil || *got.ActualEndAt != end {
		t.Errorf("actualEndAt = %v, want %d", got.ActualEndAt, end)
	}

	missing := testSession("local", models.SessionActive, 1000)
	if err := store.UpdateSession(missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestListFinishedSessionsPagination(t *testing.T) {
	store := newTestProvider(t)

	// Five finished sessions with distinct end times, plus one active that
	// must not appear.
	for i := int64(0); i < 5; i++ {
		sess := testSession("local", models.SessionCompleted, 1000+i*100000)
		if err := store.InsertSession(sess); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.InsertSession(testSession("local", models.SessionActive, 999000)); err != nil {
		t.Fatal(err)
	}

	all, err := store.ListFinishedSessions("local", 50, 0)
	if err != nil {
		t.Fatalf("ListFinishedSessions: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 finished sessions, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if *all[i].ActualEndAt > *all[i-1].ActualEndAt {
			t.Fatal("not ordered most-recent-first")
		}
	}

	page, err := store.ListFinishedSessions("local", 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Fatalf("page len = %d, want 2", len(page))
	}
	if page[0].ID != all[1].ID || page[1].ID != all[2].ID {
		t.Error("pagination window mismatch")
	}
}

func TestFindLastCompletedSession(t *testing.T) {
	store := newTestProvider(t)

	none, err := store.FindLastCompletedSession("local")
	if err != nil {
		t.Fatalf("FindLastCompletedSession: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil, got %+v", none)
	}

	older := testSession("local", models.SessionCompleted, 1000)
	newer := testSession("local", models.SessionCompleted, 2_000_000)
	cancelled := testSession("local", models.SessionCancelled, 9_000_000)
	for _, sess := range []models.FastingSession{older, newer, cancelled} {
		if err := store.InsertSession(sess); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.FindLastCompletedSession("local")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != newer.ID {
		t.Fatalf("got %+v, want id %s (cancelled ignored)", got, newer.ID)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store := newTestProvider(t)

	// Init seeds the default user's profile; other users start empty.
	if got, err := store.GetProfile("local"); err != nil {
		t.Fatalf("seeded profile: %v", err)
	} else if got != models.DefaultProfile("local") {
		t.Errorf("seeded profile = %+v, want defaults", got)
	}
	if _, err := store.GetProfile("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing profile err = %v, want ErrNotFound", err)
	}

	profile := models.DefaultProfile("local")
	profile.NotifyHalfway = false
	profile.WaterReminderIntervalMin = 90
	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := store.GetProfile("local")
	if err != nil {
		t.Fatal(err)
	}
	if got != profile {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, profile)
	}

	// Saving again replaces.
	profile.EatingWindowHours = 10
	if err := store.SaveProfile(profile); err != nil {
		t.Fatal(err)
	}
	got, err = store.GetProfile("local")
	if err != nil {
		t.Fatal(err)
	}
	if got.EatingWindowHours != 10 {
		t.Errorf("eatingWindowHours = %d, want 10", got.EatingWindowHours)
	}
}

func TestNotificationLog(t *testing.T) {
	store := newTestProvider(t)

	sent, err := store.WasNotificationSent("local", "sess-1", models.NotifHalfway, 5000)
	if err != nil {
		t.Fatalf("WasNotificationSent: %v", err)
	}
	if sent {
		t.Fatal("expected not sent")
	}

	if err := store.MarkNotificationSent("local", "sess-1", models.NotifHalfway, 5000, "2026-03-01 20:00:00"); err != nil {
		t.Fatalf("MarkNotificationSent: %v", err)
	}
	// Marking twice is a no-op, not an error.
	if err := store.MarkNotificationSent("local", "sess-1", models.NotifHalfway, 5000, "2026-03-01 20:00:01"); err != nil {
		t.Fatalf("second MarkNotificationSent: %v", err)
	}

	sent, err = store.WasNotificationSent("local", "sess-1", models.NotifHalfway, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if !sent {
		t.Fatal("expected sent")
	}

	// A different kind on the same anchor is distinct.
	sent, err = store.WasNotificationSent("local", "sess-1", models.NotifFastEnd, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if sent {
		t.Fatal("expected fast_end not sent")
	}
}
