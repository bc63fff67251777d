package storage

import (
	"database/sql"
	"errors"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/storage/postgres"
)

// PostgresStore adapts postgres.Store to the Provider interface.
type PostgresStore struct {
	store *postgres.Store
}

// NewPostgresStore creates a new PostgreSQL-backed provider
func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{store: postgres.New(connStr)}
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password. Credentials must come from the environment, .pgpass, or the
// OS keyring instead.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			_, isSet := u.User.Password()
			return isSet
		}
		return false
	}

	for _, pair := range strings.Fields(connStr) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return true
		}
	}
	return false
}

func (s *PostgresStore) Init() error           { return s.store.Init() }
func (s *PostgresStore) Load() error           { return s.store.Load() }
func (s *PostgresStore) Close() error          { return s.store.Close() }
func (s *PostgresStore) GetConfigPath() string { return s.store.GetConfigPath() }

func (s *PostgresStore) GetProfile(userID string) (models.Profile, error) {
	p, err := s.store.GetProfile(userID)
	return p, mapPostgresErr(err)
}

func (s *PostgresStore) SaveProfile(p models.Profile) error {
	return mapPostgresErr(s.store.SaveProfile(p))
}

func (s *PostgresStore) InsertSession(sess models.FastingSession) error {
	return mapPostgresErr(s.store.InsertSession(sess))
}

func (s *PostgresStore) UpdateSession(sess models.FastingSession) error {
	return mapPostgresErr(s.store.UpdateSession(sess))
}

func (s *PostgresStore) FindActiveSession(userID string) (*models.FastingSession, error) {
	sess, err := s.store.FindActiveSession(userID)
	return sess, mapPostgresErr(err)
}

func (s *PostgresStore) FindSessionByID(userID, id string) (models.FastingSession, error) {
	sess, err := s.store.FindSessionByID(userID, id)
	return sess, mapPostgresErr(err)
}

func (s *PostgresStore) ListFinishedSessions(userID string, limit, offset int) ([]models.FastingSession, error) {
	sessions, err := s.store.ListFinishedSessions(userID, limit, offset)
	return sessions, mapPostgresErr(err)
}

func (s *PostgresStore) FindLastCompletedSession(userID string) (*models.FastingSession, error) {
	sess, err := s.store.FindLastCompletedSession(userID)
	return sess, mapPostgresErr(err)
}

func (s *PostgresStore) MarkNotificationSent(userID, anchor string, kind models.NotificationKind, firesAt int64, sentAt string) error {
	return mapPostgresErr(s.store.MarkNotificationSent(userID, anchor, kind, firesAt, sentAt))
}

func (s *PostgresStore) WasNotificationSent(userID, anchor string, kind models.NotificationKind, firesAt int64) (bool, error) {
	sent, err := s.store.WasNotificationSent(userID, anchor, kind, firesAt)
	return sent, mapPostgresErr(err)
}

// mapPostgresErr translates lib/pq errors to storage sentinels.
func mapPostgresErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
		return ErrDuplicateActiveSession
	}
	return err
}
