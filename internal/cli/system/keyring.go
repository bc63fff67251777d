package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fastward/fastward/internal/cli"
	"github.com/fastward/fastward/internal/keyring"
	"github.com/fastward/fastward/internal/storage/postgres"
)

// KeyringSetCmd stores a PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	connStr := cmd.ConnectionString
	if !looksLikePostgres(connStr) {
		return errors.New("expected a PostgreSQL connection string (postgres:// URL or key=value DSN)")
	}

	if _, err := postgres.ValidateConnString(connStr); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring itself is encrypted storage, so an embedded password
		// is acceptable here, unlike on the command line.
		fmt.Println("Note: the connection string contains a password. The keyring stores it encrypted;")
		fmt.Println("use .pgpass or PGPASSWORD if you prefer to keep it out of the connection string entirely.")
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return err
	}

	fmt.Println("✓ Connection string stored in OS keyring")
	fmt.Println("  Use it with: fastward --config keyring <command>")
	return nil
}

// KeyringGetCmd prints the stored connection string with the password
// masked.
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("nothing stored yet; run 'fastward keyring set' first")
		}
		return err
	}

	fmt.Println(maskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes the stored connection string.
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("nothing stored in the keyring")
		}
		return err
	}

	fmt.Println("✓ Connection string removed from OS keyring")
	return nil
}

// KeyringStatusCmd reports keyring availability and whether a connection
// string is stored.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("✗ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}

	fmt.Println("✓ OS keyring is available")
	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("✓ A connection string is stored")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("  No connection string stored")
	}
	return nil
}

func looksLikePostgres(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") ||
		strings.HasPrefix(connStr, "postgresql://") ||
		strings.Contains(connStr, "host=")
}

// maskPassword replaces any password in the connection string with ****
// for display.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "****")
			// url.String escapes * so substitute after rendering.
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, field := range fields {
		if strings.HasPrefix(strings.ToLower(field), "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
