package models

// NotificationKind identifies what a planned reminder is about.
type NotificationKind string

const (
	// NotifHalfway fires at 50% of the fasting window.
	NotifHalfway NotificationKind = "halfway"
	// NotifAlmostDone fires at 75% of the fasting window.
	NotifAlmostDone NotificationKind = "almost_done"
	// NotifFastEnd fires when the fasting window closes.
	NotifFastEnd NotificationKind = "fast_end"
	// NotifWater is a periodic hydration reminder during the fast.
	NotifWater NotificationKind = "water"
	// NotifNextFast suggests when to start the next fast.
	NotifNextFast NotificationKind = "next_fast"
)

// PlanEntry is one future reminder instant. FiresAt is UTC milliseconds
// and is always strictly after the "now" the plan was generated for.
type PlanEntry struct {
	FiresAt int64            `json:"fires_at"`
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// NotificationPlan is an ordered (ascending FiresAt) sequence of future
// reminders. It is ephemeral: recomputed on every query, never persisted.
type NotificationPlan []PlanEntry
