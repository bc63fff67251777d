package sqlite

import (
	"github.com/fastward/fastward/internal/models"
)

func (s *Store) GetProfile(userID string) (models.Profile, error) {
	row := s.db.QueryRow(`
		SELECT user_id, timezone, notifications_enabled, notify_halfway,
		       notify_fast_end, notify_next_fast, water_reminders_enabled,
		       water_reminder_interval_min, eating_window_hours,
		       default_protocol, notification_grace_period_min
		FROM profiles WHERE user_id = ?`, userID)

	var p models.Profile
	err := row.Scan(
		&p.UserID, &p.Timezone, &p.NotificationsEnabled, &p.NotifyHalfway,
		&p.NotifyFastEnd, &p.NotifyNextFast, &p.WaterRemindersEnabled,
		&p.WaterReminderIntervalMin, &p.EatingWindowHours,
		&p.DefaultProtocol, &p.NotificationGracePeriodMin,
	)
	if err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (s *Store) SaveProfile(p models.Profile) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO profiles (
			user_id, timezone, notifications_enabled, notify_halfway,
			notify_fast_end, notify_next_fast, water_reminders_enabled,
			water_reminder_interval_min, eating_window_hours,
			default_protocol, notification_grace_period_min
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Timezone, p.NotificationsEnabled, p.NotifyHalfway,
		p.NotifyFastEnd, p.NotifyNextFast, p.WaterRemindersEnabled,
		p.WaterReminderIntervalMin, p.EatingWindowHours,
		p.DefaultProtocol, p.NotificationGracePeriodMin,
	)
	return err
}
