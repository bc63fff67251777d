package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fastward/fastward/internal/backup"
	"github.com/fastward/fastward/internal/constants"
	"github.com/fastward/fastward/internal/fasting"
	"github.com/fastward/fastward/internal/logger"
	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/storage"
	"github.com/fastward/fastward/internal/timeutil"
)

type Context struct {
	Store   storage.Provider
	Fasting *fasting.Service
	UserID  string
}

// PerformAutomaticBackup snapshots the sqlite database before a mutating
// command. Failures are logged, never surfaced; a postgres backend has no
// file to copy and is skipped.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*storage.SQLiteStore); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseProtocol resolves a protocol argument: a builtin name ("16:8"),
// or a custom hour count given as "20h" or a bare number.
func ParseProtocol(s string) (models.Protocol, error) {
	s = strings.TrimSpace(s)
	if proto, ok := models.ProtocolByName(s); ok {
		return proto, nil
	}

	raw := strings.TrimSuffix(strings.ToLower(s), "h")
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		names := make([]string, 0, len(models.BuiltinProtocols))
		for _, p := range models.BuiltinProtocols {
			names = append(names, p.Name)
		}
		return models.Protocol{}, fmt.Errorf("unknown protocol %q (builtin: %s, or a custom hour count like \"20h\")", s, strings.Join(names, ", "))
	}

	return models.CustomProtocol(hours), nil
}

// FormatSession renders a one-line summary of a session for command output.
func FormatSession(sess models.FastingSession, timezone string, now time.Time) string {
	switch sess.Status {
	case models.SessionActive:
		remaining := sess.Remaining(now)
		pct := int(sess.Progress(now) * 100)
		return fmt.Sprintf("%s fast, %d%% done, %s remaining (ends %s)",
			sess.Protocol, pct, timeutil.FormatDuration(remaining), timeutil.FormatClock(sess.TargetEndAt, timezone))
	case models.SessionCompleted:
		return fmt.Sprintf("%s fast, completed %s", sess.Protocol, formatEnd(sess, timezone))
	case models.SessionCancelled:
		return fmt.Sprintf("%s fast, cancelled %s", sess.Protocol, formatEnd(sess, timezone))
	default:
		return fmt.Sprintf("%s fast (%s)", sess.Protocol, sess.Status)
	}
}

func formatEnd(sess models.FastingSession, timezone string) string {
	if sess.ActualEndAt == nil {
		return "at an unknown time"
	}
	return timeutil.FormatClock(*sess.ActualEndAt, timezone)
}

// FormatPlanEntry renders one reminder line for schedule output.
func FormatPlanEntry(entry models.PlanEntry, timezone string) string {
	return fmt.Sprintf("%-11s %s  %s", entry.Kind, timeutil.FormatClock(entry.FiresAt, timezone), entry.Message)
}

// SessionDate renders the calendar date a session finished (or started,
// while still active) for history output.
func SessionDate(sess models.FastingSession) string {
	at := sess.StartedAt
	if sess.ActualEndAt != nil {
		at = *sess.ActualEndAt
	}
	return timeutil.FromMillis(at).Format(constants.DateFormat)
}
