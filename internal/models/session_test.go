package models

import (
	"testing"
	"time"
)

func TestSessionStatusTerminal(t *testing.T) {
	if SessionActive.Terminal() {
		t.Error("active should not be terminal")
	}
	if !SessionCompleted.Terminal() {
		t.Error("completed should be terminal")
	}
	if !SessionCancelled.Terminal() {
		t.Error("cancelled should be terminal")
	}
}

func TestSessionProgress(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	s := &FastingSession{
		Status:      SessionActive,
		StartedAt:   start.UnixMilli(),
		TargetEndAt: start.Add(16 * time.Hour).UnixMilli(),
	}

	cases := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"before start", start.Add(-time.Hour), 0},
		{"at start", start, 0},
		{"halfway", start.Add(8 * time.Hour), 0.5},
		{"three quarters", start.Add(12 * time.Hour), 0.75},
		{"at end", start.Add(16 * time.Hour), 1},
		{"past end", start.Add(20 * time.Hour), 1},
	}
	for _, tc := range cases {
		if got := s.Progress(tc.now); got != tc.want {
			t.Errorf("%s: expected progress %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestSessionProgressDegenerateWindow(t *testing.T) {
	now := time.Now()
	s := &FastingSession{StartedAt: now.UnixMilli(), TargetEndAt: now.UnixMilli()}
	if got := s.Progress(now); got != 1 {
		t.Errorf("expected progress 1 for zero-length window, got %v", got)
	}
}

func TestSessionElapsedAndRemaining(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	s := &FastingSession{
		StartedAt:   start.UnixMilli(),
		TargetEndAt: start.Add(16 * time.Hour).UnixMilli(),
	}

	if s.IsElapsed(start.Add(15 * time.Hour)) {
		t.Error("session should not be elapsed before target end")
	}
	if !s.IsElapsed(start.Add(16 * time.Hour)) {
		t.Error("session should be elapsed at target end")
	}

	if got := s.Remaining(start.Add(10 * time.Hour)); got != 6*time.Hour {
		t.Errorf("expected 6h remaining, got %v", got)
	}
	if got := s.Remaining(start.Add(17 * time.Hour)); got != 0 {
		t.Errorf("expected 0 remaining after target end, got %v", got)
	}
}

func TestProtocolByName(t *testing.T) {
	p, ok := ProtocolByName("16:8")
	if !ok {
		t.Fatal("expected 16:8 to be a builtin protocol")
	}
	if p.Hours != 16 {
		t.Errorf("expected 16 hours, got %d", p.Hours)
	}

	if _, ok := ProtocolByName("12:12"); ok {
		t.Error("expected 12:12 to be unknown")
	}
}

func TestCustomProtocol(t *testing.T) {
	p := CustomProtocol(19)
	if p.Name != "custom-19h" {
		t.Errorf("unexpected custom protocol name: %s", p.Name)
	}
	if p.Hours != 19 {
		t.Errorf("expected 19 hours, got %d", p.Hours)
	}
}

func TestProfileWithDefaults(t *testing.T) {
	p := Profile{UserID: "u1", WaterReminderIntervalMin: -5}.WithDefaults()

	if p.Timezone != "Local" {
		t.Errorf("expected default timezone, got %q", p.Timezone)
	}
	if p.WaterReminderIntervalMin != 120 {
		t.Errorf("expected default water interval, got %d", p.WaterReminderIntervalMin)
	}
	if p.EatingWindowHours != 8 {
		t.Errorf("expected default eating window, got %d", p.EatingWindowHours)
	}
	if p.DefaultProtocol != "16:8" {
		t.Errorf("expected default protocol, got %q", p.DefaultProtocol)
	}
	if p.NotificationGracePeriodMin != 10 {
		t.Errorf("expected default grace period, got %d", p.NotificationGracePeriodMin)
	}
}

func TestProfileWithDefaultsKeepsExplicitValues(t *testing.T) {
	p := Profile{
		UserID:                     "u1",
		Timezone:                   "America/New_York",
		WaterReminderIntervalMin:   45,
		EatingWindowHours:          6,
		DefaultProtocol:            "20:4",
		NotificationGracePeriodMin: 30,
		NotificationsEnabled:       false,
	}.WithDefaults()

	if p.Timezone != "America/New_York" || p.WaterReminderIntervalMin != 45 ||
		p.EatingWindowHours != 6 || p.DefaultProtocol != "20:4" ||
		p.NotificationGracePeriodMin != 30 {
		t.Errorf("explicit values were overwritten: %+v", p)
	}
	if p.NotificationsEnabled {
		t.Error("boolean preference should be kept as stored")
	}
}
