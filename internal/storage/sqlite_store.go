package storage

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to the Provider interface, translating
// driver-level errors into the storage sentinels the core checks against.
type SQLiteStore struct {
	store *sqlite.Store
}

// NewSQLiteStore creates a new SQLite-backed provider
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

func (s *SQLiteStore) Init() error          { return s.store.Init() }
func (s *SQLiteStore) Load() error          { return s.store.Load() }
func (s *SQLiteStore) Close() error         { return s.store.Close() }
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }

// GetDB exposes the underlying connection for backup and diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB { return s.store.GetDB() }

func (s *SQLiteStore) GetProfile(userID string) (models.Profile, error) {
	p, err := s.store.GetProfile(userID)
	return p, mapSQLiteErr(err)
}

func (s *SQLiteStore) SaveProfile(p models.Profile) error {
	return mapSQLiteErr(s.store.SaveProfile(p))
}

func (s *SQLiteStore) InsertSession(sess models.FastingSession) error {
	return mapSQLiteErr(s.store.InsertSession(sess))
}

func (s *SQLiteStore) UpdateSession(sess models.FastingSession) error {
	return mapSQLiteErr(s.store.UpdateSession(sess))
}

func (s *SQLiteStore) FindActiveSession(userID string) (*models.FastingSession, error) {
	sess, err := s.store.FindActiveSession(userID)
	return sess, mapSQLiteErr(err)
}

func (s *SQLiteStore) FindSessionByID(userID, id string) (models.FastingSession, error) {
	sess, err := s.store.FindSessionByID(userID, id)
	return sess, mapSQLiteErr(err)
}

func (s *SQLiteStore) ListFinishedSessions(userID string, limit, offset int) ([]models.FastingSession, error) {
	sessions, err := s.store.ListFinishedSessions(userID, limit, offset)
	return sessions, mapSQLiteErr(err)
}

func (s *SQLiteStore) FindLastCompletedSession(userID string) (*models.FastingSession, error) {
	sess, err := s.store.FindLastCompletedSession(userID)
	return sess, mapSQLiteErr(err)
}

func (s *SQLiteStore) MarkNotificationSent(userID, anchor string, kind models.NotificationKind, firesAt int64, sentAt string) error {
	return mapSQLiteErr(s.store.MarkNotificationSent(userID, anchor, kind, firesAt, sentAt))
}

func (s *SQLiteStore) WasNotificationSent(userID, anchor string, kind models.NotificationKind, firesAt int64) (bool, error) {
	sent, err := s.store.WasNotificationSent(userID, anchor, kind, firesAt)
	return sent, mapSQLiteErr(err)
}

// mapSQLiteErr translates modernc.org/sqlite errors to storage sentinels.
// The driver reports constraint violations as plain error strings, so the
// unique-index check is a substring match.
func mapSQLiteErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateActiveSession
	}
	return err
}
