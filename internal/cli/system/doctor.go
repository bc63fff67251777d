package system

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/fastward/fastward/internal/backup"
	"github.com/fastward/fastward/internal/cli"
	"github.com/fastward/fastward/internal/migration"
	"github.com/fastward/fastward/internal/storage"
	"github.com/fastward/fastward/internal/timeutil"
	"github.com/fastward/fastward/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: Session integrity (only if DB is reachable)
	if dbReachable {
		if err := checkSessionIntegrity(ctx); err != nil {
			fmt.Printf("❌ Session integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Session integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Session integrity: SKIPPED (database not reachable)\n")
	}

	// Check 6: Profile timezone (only if DB is reachable)
	if dbReachable {
		if err := checkProfileTimezone(ctx); err != nil {
			fmt.Printf("❌ Profile timezone: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Profile timezone: OK\n")
		}
	} else {
		fmt.Printf("⊘ Profile timezone: SKIPPED (database not reachable)\n")
	}

	// Check 7: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func newSQLiteRunner(ctx *cli.Context) (*migration.Runner, error) {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return nil, nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	return migration.NewRunner(db, subFS), nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := newSQLiteRunner(ctx)
	if err != nil || runner == nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}

	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := newSQLiteRunner(ctx)
	if err != nil || runner == nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", currentVersion, latestVersion)
	}

	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'fastward backup create'")
	}

	return nil
}

// checkSessionIntegrity verifies the stored sessions honor the lifecycle
// invariants: one active session at most, terminal sessions carry an end
// time, active ones do not, and windows and counters are well formed.
func checkSessionIntegrity(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var multiActive int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT user_id FROM sessions WHERE status = 'active'
			GROUP BY user_id HAVING COUNT(*) > 1
		)
	`).Scan(&multiActive)
	if err != nil {
		return fmt.Errorf("failed to check active session uniqueness: %w", err)
	}
	if multiActive > 0 {
		return fmt.Errorf("%d user(s) have more than one active session", multiActive)
	}

	var badTerminal int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM sessions
		WHERE (status != 'active' AND actual_end_at IS NULL)
		   OR (status = 'active' AND actual_end_at IS NOT NULL)
	`).Scan(&badTerminal)
	if err != nil {
		return fmt.Errorf("failed to check end-time consistency: %w", err)
	}
	if badTerminal > 0 {
		return fmt.Errorf("%d session(s) have inconsistent status and end time", badTerminal)
	}

	var badWindow int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM sessions
		WHERE target_end_at <= started_at OR water_count < 0 OR fasting_hours <= 0
	`).Scan(&badWindow)
	if err != nil {
		return fmt.Errorf("failed to check session windows: %w", err)
	}
	if badWindow > 0 {
		return fmt.Errorf("%d session(s) have a malformed fasting window", badWindow)
	}

	return nil
}

func checkProfileTimezone(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile(ctx.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil // defaults apply
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if !timeutil.ValidateTimezone(profile.Timezone) {
		return fmt.Errorf("profile timezone %q is not a valid IANA zone", profile.Timezone)
	}
	return nil
}

func checkClockTimezone() error {
	// Check if system time is reasonable
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}
