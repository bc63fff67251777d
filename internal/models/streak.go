package models

// StreakResult is the derived behavioral summary over a user's completed
// fasts. It is recomputed from history on each query and never persisted,
// so it cannot drift from the session records.
type StreakResult struct {
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	TotalCompleted int `json:"total_completed"`
	CompletionRate int `json:"completion_rate"` // rounded percent over the trailing 30 days
}
