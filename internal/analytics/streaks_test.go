package analytics

import (
	"testing"
	"time"

	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/timeutil"
)

func completedAt(end time.Time) models.FastingSession {
	endMs := timeutil.ToMillis(end)
	startMs := endMs - timeutil.HoursToMillis(16)
	return models.FastingSession{
		ID:           "sess",
		UserID:       "local",
		Protocol:     "16:8",
		Status:       models.SessionCompleted,
		StartedAt:    startMs,
		TargetEndAt:  endMs,
		ActualEndAt:  &endMs,
		FastingHours: 16,
	}
}

func TestCalculateStreaksEmpty(t *testing.T) {
	got := CalculateStreaks(nil, time.Now())
	if got != (models.StreakResult{}) {
		t.Fatalf("expected zero result, got %+v", got)
	}
}

func TestCalculateStreaksConsecutiveDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.FastingSession{
		completedAt(now.AddDate(0, 0, -2)),
		completedAt(now.AddDate(0, 0, -1)),
		completedAt(now.Add(-time.Hour)),
	}

	got := CalculateStreaks(sessions, now)
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", got.LongestStreak)
	}
	if got.TotalCompleted != 3 {
		t.Errorf("TotalCompleted = %d, want 3", got.TotalCompleted)
	}
	if got.CompletionRate != 10 {
		t.Errorf("CompletionRate = %d, want 10", got.CompletionRate)
	}
}

func TestCalculateStreaksGapResetsCurrent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.FastingSession{
		// Five-day run ending a week ago.
		completedAt(now.AddDate(0, 0, -11)),
		completedAt(now.AddDate(0, 0, -10)),
		completedAt(now.AddDate(0, 0, -9)),
		completedAt(now.AddDate(0, 0, -8)),
		completedAt(now.AddDate(0, 0, -7)),
		// Fresh two-day run.
		completedAt(now.AddDate(0, 0, -1)),
		completedAt(now.Add(-time.Hour)),
	}

	got := CalculateStreaks(sessions, now)
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
	if got.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5", got.LongestStreak)
	}
}

func TestCalculateStreaksNoCompletionToday(t *testing.T) {
	// A fast still running today must not break yesterday's streak.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.FastingSession{
		completedAt(now.AddDate(0, 0, -2)),
		completedAt(now.AddDate(0, 0, -1)),
	}

	got := CalculateStreaks(sessions, now)
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
}

func TestCalculateStreaksUTCDayBoundary(t *testing.T) {
	// 23:59 and 00:01 the next UTC day are two streak days.
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	sessions := []models.FastingSession{
		completedAt(time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)),
		completedAt(time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)),
	}

	got := CalculateStreaks(sessions, now)
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
	if got.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", got.LongestStreak)
	}
}

func TestCalculateStreaksMultiplePerDay(t *testing.T) {
	// Two completions on one day: one streak day, two toward the rate.
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	sessions := []models.FastingSession{
		completedAt(now.Add(-10 * time.Hour)),
		completedAt(now.Add(-2 * time.Hour)),
	}

	got := CalculateStreaks(sessions, now)
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.TotalCompleted != 2 {
		t.Errorf("TotalCompleted = %d, want 2", got.TotalCompleted)
	}
	if got.CompletionRate != 7 {
		t.Errorf("CompletionRate = %d, want 7", got.CompletionRate)
	}
}

func TestCalculateStreaksIgnoresCancelled(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cancelled := completedAt(now.Add(-time.Hour))
	cancelled.Status = models.SessionCancelled

	got := CalculateStreaks([]models.FastingSession{cancelled}, now)
	if got != (models.StreakResult{}) {
		t.Fatalf("expected zero result, got %+v", got)
	}
}

func TestCalculateStreaksOldSessionsOutsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.FastingSession{
		completedAt(now.AddDate(0, 0, -45)),
		completedAt(now.Add(-time.Hour)),
	}

	got := CalculateStreaks(sessions, now)
	if got.TotalCompleted != 2 {
		t.Errorf("TotalCompleted = %d, want 2", got.TotalCompleted)
	}
	// Only one session falls inside the trailing 30 days.
	if got.CompletionRate != 3 {
		t.Errorf("CompletionRate = %d, want 3", got.CompletionRate)
	}
}
