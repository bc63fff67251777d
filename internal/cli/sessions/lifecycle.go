package sessions

import (
	"errors"
	"fmt"

	"github.com/fastward/fastward/internal/cli"
	"github.com/fastward/fastward/internal/fasting"
	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/timeutil"
)

// requireActive fetches the running session; lifecycle commands all
// operate on it rather than taking a session id.
func requireActive(ctx *cli.Context) (*models.FastingSession, error) {
	sess, err := ctx.Fasting.GetActiveSession(ctx.UserID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("no fast is running; start one with 'fastward start'")
	}
	return sess, nil
}

type ExtendCmd struct {
	Hours float64 `arg:"" help:"Hours to add to the running fast (up to 24)."`
}

func (c *ExtendCmd) Run(ctx *cli.Context) error {
	sess, err := requireActive(ctx)
	if err != nil {
		return err
	}

	profile, err := ctx.Fasting.Profile(ctx.UserID)
	if err != nil {
		return err
	}

	extended, err := ctx.Fasting.ExtendFast(ctx.UserID, sess.ID, c.Hours)
	if err != nil {
		if errors.Is(err, fasting.ErrInvalidInput) {
			return fmt.Errorf("extension must be more than 0 and at most 24 hours")
		}
		return err
	}

	fmt.Printf("✓ Extended to %v hours. Now ends %s.\n", extended.FastingHours, timeutil.FormatClock(extended.TargetEndAt, profile.Timezone))
	return nil
}

type CancelCmd struct{}

func (c *CancelCmd) Run(ctx *cli.Context) error {
	sess, err := requireActive(ctx)
	if err != nil {
		return err
	}

	if _, err := ctx.Fasting.CancelFast(ctx.UserID, sess.ID); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	fmt.Println("Fast cancelled. It stays in your history but won't count toward streaks.")
	return nil
}

type CompleteCmd struct{}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	// Bypass finalize-on-read: fetch the stored session directly so an
	// elapsed fast can be completed explicitly.
	stored, err := ctx.Store.FindActiveSession(ctx.UserID)
	if err != nil {
		return err
	}
	if stored == nil {
		fmt.Println("No fast is running.")
		return nil
	}

	completed, err := ctx.Fasting.CompleteFast(ctx.UserID, stored.ID)
	if err != nil {
		if errors.Is(err, fasting.ErrInvalidInput) {
			return fmt.Errorf("the fast hasn't reached its target yet; cancel it instead if you want to stop early")
		}
		return err
	}

	ctx.PerformAutomaticBackup()
	fmt.Printf("✓ Completed your %s fast. Nice work!\n", completed.Protocol)
	return nil
}
