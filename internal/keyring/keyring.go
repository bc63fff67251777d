// Package keyring stores the PostgreSQL connection string in the OS
// credential store so it never has to appear on the command line. The
// entry is keyed by app name plus a fixed account label.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/fastward/fastward/internal/constants"
)

var (
	// ErrNotFound means no connection string has been stored yet.
	ErrNotFound = errors.New("no connection string stored in keyring")

	// ErrKeyringUnavailable means the OS credential store could not be
	// reached (headless session, missing dbus, locked keychain).
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func translate(err error) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
}

// GetConnectionString reads the stored connection string.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		return "", translate(err)
	}
	return connStr, nil
}

// SetConnectionString stores or replaces the connection string.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string. Returns
// ErrNotFound when nothing was stored.
func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		return translate(err)
	}
	return nil
}

// IsAvailable probes the credential store with a read. A missing entry
// still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
