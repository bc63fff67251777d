package postgres

import (
	"github.com/fastward/fastward/internal/models"
)

func (s *Store) GetProfile(userID string) (models.Profile, error) {
	row := s.db.QueryRow(`
		SELECT user_id, timezone, notifications_enabled, notify_halfway,
		       notify_fast_end, notify_next_fast, water_reminders_enabled,
		       water_reminder_interval_min, eating_window_hours,
		       default_protocol, notification_grace_period_min
		FROM profiles WHERE user_id = $1`, userID)

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
		INSERT INTO profiles (
			user_id, timezone, notifications_enabled, notify_halfway,
			notify_fast_end, notify_next_fast, water_reminders_enabled,
			water_reminder_interval_min, eating_window_hours,
			default_protocol, notification_grace_period_min
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			notifications_enabled = EXCLUDED.notifications_enabled,
			notify_halfway = EXCLUDED.notify_halfway,
			notify_fast_end = EXCLUDED.notify_fast_end,
			notify_next_fast = EXCLUDED.notify_next_fast,
			water_reminders_enabled = EXCLUDED.water_reminders_enabled,
			water_reminder_interval_min = EXCLUDED.water_reminder_interval_min,
			eating_window_hours = EXCLUDED.eating_window_hours,
			default_protocol = EXCLUDED.default_protocol,
			notification_grace_period_min = EXCLUDED.notification_grace_period_min`,
		p.UserID, p.Timezone, p.NotificationsEnabled, p.NotifyHalfway,
		p.NotifyFastEnd, p.NotifyNextFast, p.WaterRemindersEnabled,
		p.WaterReminderIntervalMin, p.EatingWindowHours,
		p.DefaultProtocol, p.NotificationGracePeriodMin,
	)
	return err
}
