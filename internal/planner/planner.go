// Package planner computes the forward-looking reminder schedule for a
// user. GeneratePlan is pure and deterministic: the same inputs always
// yield the same plan, so callers can discard and regenerate it at any
// time instead of persisting a schedule.
package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/timeutil"
)

// GeneratePlan derives the notification plan from the live session (or
// nil), the user's profile, the current time, and the last completed
// fast's end time (or nil).
//
// With an active session, entries anchor to fractions of the
// startedAt→targetEndAt window: halfway at 50%, almost-done at 75%, and
// the fast-end reminder at the target end, plus periodic water reminders
// when enabled. Without one, a single next-fast suggestion anchors to
// lastCompletedAt plus the profile's eating window, rolled forward in
// whole days until it lands in the future.
//
// Entries at or before now are omitted, never fired retroactively.
// Missing profile fields degrade to defaults; the planner never fails.
func GeneratePlan(active *models.FastingSession, profile models.Profile, now time.Time, lastCompletedAt *int64) models.NotificationPlan {
	p := profile.WithDefaults()
	if !p.NotificationsEnabled {
		return models.NotificationPlan{}
	}

	nowMs := timeutil.ToMillis(now)
	var plan models.NotificationPlan

	if active != nil && active.Status == models.SessionActive {
		plan = append(plan, sessionEntries(active, p)...)
	} else if p.NotifyNextFast {
		plan = append(plan, nextFastEntry(p, nowMs, lastCompletedAt))
	}

	future := plan[:0]
	for _, entry := range plan {
		if entry.FiresAt > nowMs {
			future = append(future, entry)
		}
	}

	sort.SliceStable(future, func(i, j int) bool {
		return future[i].FiresAt < future[j].FiresAt
	})
	return future
}

func sessionEntries(sess *models.FastingSession, p models.Profile) models.NotificationPlan {
	var entries models.NotificationPlan

	window := sess.TargetEndAt - sess.StartedAt
	if window > 0 {
		if p.NotifyHalfway {
			entries = append(entries,
				models.PlanEntry{
					FiresAt: sess.StartedAt + window/2,
					Kind:    models.NotifHalfway,
					Message: fmt.Sprintf("Halfway there! %s left of your %s fast.", timeutil.FormatDuration(msToDuration(window/2)), sess.Protocol),
				},
				models.PlanEntry{
					FiresAt: sess.StartedAt + window*3/4,
					Kind:    models.NotifAlmostDone,
					Message: fmt.Sprintf("Almost done: %s left of your %s fast.", timeutil.FormatDuration(msToDuration(window/4)), sess.Protocol),
				},
			)
		}
		if p.NotifyFastEnd {
			entries = append(entries, models.PlanEntry{
				FiresAt: sess.TargetEndAt,
				Kind:    models.NotifFastEnd,
				Message: fmt.Sprintf("Your %s fast is complete. Well done!", sess.Protocol),
			})
		}
	}

	if p.WaterRemindersEnabled {
		interval := timeutil.MinutesToMillis(p.WaterReminderIntervalMin)
		for at := sess.StartedAt + interval; at < sess.TargetEndAt; at += interval {
			entries = append(entries, models.PlanEntry{
				FiresAt: at,
				Kind:    models.NotifWater,
				Message: "Time for a glass of water.",
			})
		}
	}

	return entries
}

// nextFastEntry suggests when to start the next fast: the eating window
// after the last completion, or after now when there is no history yet.
// The suggestion is rolled forward in 24h steps so it is always in the
// future relative to when the plan was generated.
func nextFastEntry(p models.Profile, nowMs int64, lastCompletedAt *int64) models.PlanEntry {
	anchor := nowMs
	if lastCompletedAt != nil {
		anchor = *lastCompletedAt
	}

	const dayMs = 24 * int64(time.Hour/time.Millisecond)
	next := anchor + timeutil.HoursToMillis(float64(p.EatingWindowHours))
	for next <= nowMs {
		next += dayMs
	}

	return models.PlanEntry{
		FiresAt: next,
		Kind:    models.NotifNextFast,
		Message: fmt.Sprintf("Your eating window is closing. Ready to start a %s fast?", p.DefaultProtocol),
	}
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
