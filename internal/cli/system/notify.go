package system

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/fastward/fastward/internal/cli"
	"github.com/fastward/fastward/internal/logger"
	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/notifier"
	"github.com/fastward/fastward/internal/timeutil"
)

// NotifyCmd delivers due reminders. It is meant to be run periodically
// (cron or the tray app's timer); the sent-notification log makes
// repeated runs idempotent, so overlapping invocations never double-fire.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profile, err := ctx.Fasting.Profile(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if !profile.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in the profile.")
		}
		return nil
	}

	now := time.Now()
	nowMs := timeutil.ToMillis(now)
	grace := timeutil.MinutesToMillis(profile.NotificationGracePeriodMin)

	// The plan only contains future entries; shift the generation instant
	// back by the grace period so entries due within the window surface.
	planNow := now.Add(-time.Duration(profile.NotificationGracePeriodMin) * time.Minute)

	// Read the stored session directly: finalize-on-read must not run
	// before the plan is generated, or a just-elapsed fast would lose its
	// fast-end reminder.
	active, err := ctx.Store.FindActiveSession(ctx.UserID)
	if err != nil {
		return err
	}

	plan, err := ctx.Fasting.PlanAt(ctx.UserID, planNow)
	if err != nil {
		return err
	}

	if fingerprint, err := hashstructure.Hash(plan, hashstructure.FormatV2, nil); err == nil {
		logger.Debug("Generated notification plan", "entries", len(plan), "fingerprint", fingerprint)
	}

	// Anchor the sent-notification log to the session for in-fast
	// reminders, and to the fire instant for next-fast suggestions so a
	// new completion re-arms the suggestion.
	anchor := "idle"
	if active != nil {
		anchor = active.ID
	}

	n := notifier.New()
	delivered := 0

	for _, entry := range plan {
		if entry.FiresAt > nowMs {
			continue // not due yet
		}
		if nowMs-entry.FiresAt > grace {
			continue // stale, never fire retroactively
		}

		entryAnchor := anchor
		if entry.Kind == models.NotifNextFast {
			entryAnchor = fmt.Sprintf("next-%d", entry.FiresAt)
		}

		sent, err := ctx.Store.WasNotificationSent(ctx.UserID, entryAnchor, entry.Kind, entry.FiresAt)
		if err != nil {
			return fmt.Errorf("failed to check notification log: %w", err)
		}
		if sent {
			continue
		}

		// A dry run must leave the sent-notification log untouched so the
		// next real run still fires everything previewed here.
		if c.DryRun {
			fmt.Println("[DryRun] " + entry.Message)
			delivered++
			continue
		}

		if err := n.Notify(entry.Message); err != nil {
			// Keep trying the rest; an unsent entry stays eligible
			// until its grace window closes.
			fmt.Printf("Failed to send notification: %v\n", err)
			continue
		}

		sentAt := now.UTC().Format(time.RFC3339)
		if err := ctx.Store.MarkNotificationSent(ctx.UserID, entryAnchor, entry.Kind, entry.FiresAt, sentAt); err != nil {
			return fmt.Errorf("failed to record notification: %w", err)
		}
		delivered++
	}

	if c.DryRun && delivered == 0 {
		fmt.Println("Nothing due.")
	}
	return nil
}
