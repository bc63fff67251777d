package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fastward/fastward/internal/cli"
	"github.com/fastward/fastward/internal/constants"
	"github.com/fastward/fastward/internal/storage"
	"github.com/fastward/fastward/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues, then delete.
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized fastward storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	// Determine source store type and instantiate it
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = storage.NewPostgresStore(sourcePath)
	} else {
		// Default to SQLite for file paths
		sourceStore = storage.NewSQLiteStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	userID := ctx.UserID

	// Migrate profile
	fmt.Println("  Migrating profile...")
	profile, err := sourceStore.GetProfile(userID)
	if err == nil {
		if err := ctx.Store.SaveProfile(profile); err != nil {
			return fmt.Errorf("failed to save profile to destination: %w", err)
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to get profile from source: %w", err)
	}

	// Migrate finished sessions
	fmt.Println("  Migrating sessions...")
	migrated := 0
	offset := 0
	for {
		batch, err := sourceStore.ListFinishedSessions(userID, constants.HistoryMaxLimit, offset)
		if err != nil {
			return fmt.Errorf("failed to list sessions from source: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for _, sess := range batch {
			if err := ctx.Store.InsertSession(sess); err != nil {
				return fmt.Errorf("failed to insert session %s: %w", sess.ID, err)
			}
			migrated++
		}
		offset += len(batch)
	}

	// Migrate the active session, if any
	active, err := sourceStore.FindActiveSession(userID)
	if err != nil {
		return fmt.Errorf("failed to find active session in source: %w", err)
	}
	if active != nil {
		if err := ctx.Store.InsertSession(*active); err != nil {
			return fmt.Errorf("failed to insert active session: %w", err)
		}
		migrated++
	}
	fmt.Printf("    Migrated %d sessions\n", migrated)

	return nil
}
