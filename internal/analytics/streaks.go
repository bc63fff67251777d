// Package analytics derives behavioral statistics from completed fasting
// sessions. Everything here is a pure function over explicit inputs; "now"
// is always passed in, never read from a clock.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/fastward/fastward/internal/constants"
	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/timeutil"
)

// CalculateStreaks computes streak and completion metrics from completed
// sessions. Streak days are distinct UTC calendar dates with at least one
// completion; a fast ending at 23:59 and another at 00:01 the next UTC day
// are two streak days even two minutes apart.
//
// The completion rate counts sessions (not distinct days) completed in the
// trailing 30 days, so a day with two completions counts twice. That
// over-count is part of the product's observed behavior and is preserved.
func CalculateStreaks(completed []models.FastingSession, now time.Time) models.StreakResult {
	if len(completed) == 0 {
		return models.StreakResult{}
	}

	days := make(map[string]bool)
	total := 0
	recent := 0
	windowStart := timeutil.ToMillis(now) - int64(constants.CompletionRateWindowDays)*24*int64(time.Hour/time.Millisecond)

	for _, sess := range completed {
		if sess.Status != models.SessionCompleted || sess.ActualEndAt == nil {
			continue
		}
		total++
		days[timeutil.DayKey(*sess.ActualEndAt)] = true
		if *sess.ActualEndAt >= windowStart {
			recent++
		}
	}

	if total == 0 {
		return models.StreakResult{}
	}

	return models.StreakResult{
		CurrentStreak:  currentStreak(days, now),
		LongestStreak:  longestStreak(days),
		TotalCompleted: total,
		CompletionRate: int(math.Round(100 * float64(recent) / float64(constants.CompletionRateWindowDays))),
	}
}

// currentStreak walks backward from today, counting consecutive days with
// a completion. A fast still in progress today should not break the
// streak, so when today has no completion the walk starts from yesterday.
func currentStreak(days map[string]bool, now time.Time) int {
	cursor := timeutil.StartOfDay(now)
	if !days[timeutil.DayKeyTime(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[timeutil.DayKeyTime(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak scans the sorted distinct dates for the longest run of
// exactly-one-day gaps.
func longestStreak(days map[string]bool) int {
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	longest := 0
	run := 0
	var prev time.Time

	for i, key := range keys {
		day, err := timeutil.ParseDayKey(key)
		if err != nil {
			continue
		}
		if i == 0 || day.Sub(prev) != 24*time.Hour {
			run = 1
		} else {
			run++
		}
		if run > longest {
			longest = run
		}
		prev = day
	}
	return longest
}
