package sqlite

import (
	"github.com/fastward/fastward/internal/models"
)

func (s *Store) MarkNotificationSent(userID, anchor string, kind models.NotificationKind, firesAt int64, sentAt string) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO sent_notifications (user_id, anchor, kind, fires_at, sent_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, anchor, string(kind), firesAt, sentAt,
	)
	return err
}

func (s *Store) WasNotificationSent(userID, anchor string, kind models.NotificationKind, firesAt int64) (bool, error) {
	var count int
	row := s.db.QueryRow(`
		SELECT count(*) FROM sent_notifications
		WHERE user_id = ? AND anchor = ? AND kind = ? AND fires_at = ?`,
		userID, anchor, string(kind), firesAt,
	)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
