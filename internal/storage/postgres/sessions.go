package postgres

import (
	"database/sql"
	"errors"

	"github.com/fastward/fastward/internal/models"
)

const sessionColumns = `id, user_id, protocol, status, started_at, target_end_at, actual_end_at, fasting_hours, water_count`

func scanSession(row interface{ Scan(...any) error }) (models.FastingSession, error) {
	var sess models.FastingSession
	var status string
	var actualEnd sql.NullInt64

	err := row.Scan(
		&sess.ID, &sess.UserID, &sess.Protocol, &status,
		&sess.StartedAt, &sess.TargetEndAt, &actualEnd,
		&sess.FastingHours, &sess.WaterCount,
	)
	if err != nil {
		return models.FastingSession{}, err
	}

	sess.Status = models.SessionStatus(status)
	if actualEnd.Valid {
		sess.ActualEndAt = &actualEnd.Int64
	}
	return sess, nil
}

func (s *Store) InsertSession(sess models.FastingSession) error {
	var actualEnd sql.NullInt64
	if sess.ActualEndAt != nil {
		actualEnd = sql.NullInt64{Int64: *sess.ActualEndAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sess.ID, sess.UserID, sess.Protocol, string(sess.Status),
		sess.StartedAt, sess.TargetEndAt, actualEnd,
		sess.FastingHours, sess.WaterCount,
	)
	return err
}

func (s *Store) UpdateSession(sess models.FastingSession) error {
	var actualEnd sql.NullInt64
	if sess.ActualEndAt != nil {
		actualEnd = sql.NullInt64{Int64: *sess.ActualEndAt, Valid: true}
	}

	res, err := s.db.Exec(`
		UPDATE sessions
		SET protocol = $1, status = $2, started_at = $3, target_end_at = $4,
		    actual_end_at = $5, fasting_hours = $6, water_count = $7
		WHERE id = $8 AND user_id = $9`,
		sess.Protocol, string(sess.Status), sess.StartedAt, sess.TargetEndAt,
		actualEnd, sess.FastingHours, sess.WaterCount,
		sess.ID, sess.UserID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) FindActiveSession(userID string) (*models.FastingSession, error) {
	row := s.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM sessions WHERE user_id = $1 AND status = 'active'`, userID)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

func (s *Store) FindSessionByID(userID, id string) (models.FastingSession, error) {
	row := s.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM sessions WHERE id = $1 AND user_id = $2`, id, userID)

	return scanSession(row)
}

func (s *Store) ListFinishedSessions(userID string, limit, offset int) ([]models.FastingSession, error) {
	rows, err := s.db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE user_id = $1 AND status != 'active'
		ORDER BY actual_end_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.FastingSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *Store) FindLastCompletedSession(userID string) (*models.FastingSession, error) {
	row := s.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE user_id = $1 AND status = 'completed'
		ORDER BY actual_end_at DESC
		LIMIT 1`, userID)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}
