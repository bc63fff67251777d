package models

import "github.com/fastward/fastward/internal/constants"

// Profile carries a user's notification preferences and timezone. The
// planner treats it as read-only and never fails on missing fields; zero
// values degrade to the documented defaults via WithDefaults.
type Profile struct {
	UserID                     string `json:"user_id"`
	Timezone                   string `json:"timezone"` // IANA name, or "Local" for the system timezone
	NotificationsEnabled       bool   `json:"notifications_enabled"`
	NotifyHalfway              bool   `json:"notify_halfway"`
	NotifyFastEnd              bool   `json:"notify_fast_end"`
	NotifyNextFast             bool   `json:"notify_next_fast"`
	WaterRemindersEnabled      bool   `json:"water_reminders_enabled"`
	WaterReminderIntervalMin   int    `json:"water_reminder_interval_min"`
	EatingWindowHours          int    `json:"eating_window_hours"`
	DefaultProtocol            string `json:"default_protocol"`
	NotificationGracePeriodMin int    `json:"notification_grace_period_min"`
}

// DefaultProfile returns the profile a fresh install starts with.
func DefaultProfile(userID string) Profile {
	return Profile{
		UserID:                     userID,
		Timezone:                   constants.DefaultTimezone,
		NotificationsEnabled:       constants.DefaultNotificationsEnabled,
		NotifyHalfway:              constants.DefaultNotifyHalfway,
		NotifyFastEnd:              constants.DefaultNotifyFastEnd,
		NotifyNextFast:             constants.DefaultNotifyNextFast,
		WaterRemindersEnabled:      constants.DefaultWaterRemindersEnabled,
		WaterReminderIntervalMin:   constants.DefaultWaterReminderIntervalMin,
		EatingWindowHours:          constants.DefaultEatingWindowHours,
		DefaultProtocol:            constants.DefaultProtocolName,
		NotificationGracePeriodMin: constants.DefaultNotificationGracePeriodMin,
	}
}

// WithDefaults fills missing or out-of-range fields with defaults. Boolean
// preferences are kept as stored; only fields whose zero value is not a
// meaningful choice are patched.
func (p Profile) WithDefaults() Profile {
	if p.Timezone == "" {
		p.Timezone = constants.DefaultTimezone
	}
	if p.WaterReminderIntervalMin <= 0 {
		p.WaterReminderIntervalMin = constants.DefaultWaterReminderIntervalMin
	}
	if p.EatingWindowHours <= 0 {
		p.EatingWindowHours = constants.DefaultEatingWindowHours
	}
	if p.DefaultProtocol == "" {
		p.DefaultProtocol = constants.DefaultProtocolName
	}
	if p.NotificationGracePeriodMin <= 0 {
		p.NotificationGracePeriodMin = constants.DefaultNotificationGracePeriodMin
	}
	return p
}
