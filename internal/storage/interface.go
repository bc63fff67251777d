package storage

import (
	"errors"

	"github.com/fastward/fastward/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist or
	// does not belong to the given user.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateActiveSession is returned by InsertSession when the user
	// already has an active session. Backends map their unique-index
	// violation to this sentinel so the check-and-insert is atomic.
	ErrDuplicateActiveSession = errors.New("user already has an active session")
)

// Provider is the durable storage interface the fasting core depends on.
// Implementations exist for sqlite (default) and postgres.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profiles
	GetProfile(userID string) (models.Profile, error)
	SaveProfile(models.Profile) error

	// Sessions
	InsertSession(models.FastingSession) error
	UpdateSession(models.FastingSession) error
	FindActiveSession(userID string) (*models.FastingSession, error)
	FindSessionByID(userID, id string) (models.FastingSession, error)
	// ListFinishedSessions returns terminal sessions most-recent-first by
	// actual end time. Callers clamp limit/offset before calling.
	ListFinishedSessions(userID string, limit, offset int) ([]models.FastingSession, error)
	FindLastCompletedSession(userID string) (*models.FastingSession, error)

	// Sent-notification log (delivery idempotence for the notify command)
	MarkNotificationSent(userID, anchor string, kind models.NotificationKind, firesAt int64, sentAt string) error
	WasNotificationSent(userID, anchor string, kind models.NotificationKind, firesAt int64) (bool, error)

	// Utils
	GetConfigPath() string
}
