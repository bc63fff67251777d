package sessions

import (
	"fmt"
	"time"

	"github.com/fastward/fastward/internal/cli"
	"github.com/fastward/fastward/internal/timeutil"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Fasting.Profile(ctx.UserID)
	if err != nil {
		return err
	}

	sess, err := ctx.Fasting.GetActiveSession(ctx.UserID)
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Println("No fast is running.")
		printNextSuggestion(ctx, profile.Timezone)
		return nil
	}

	now := time.Now()
	fmt.Printf("Fasting: %s\n", cli.FormatSession(*sess, profile.Timezone, now))
	fmt.Printf("  Started  %s\n", timeutil.FormatClock(sess.StartedAt, profile.Timezone))
	fmt.Printf("  Water    %d glasses\n", sess.WaterCount)
	fmt.Printf("  Session  %s\n", sess.ID)
	return nil
}

func printNextSuggestion(ctx *cli.Context, timezone string) {
	plan, err := ctx.Fasting.Plan(ctx.UserID)
	if err != nil || len(plan) == 0 {
		return
	}
	fmt.Printf("Next fast suggested at %s.\n", timeutil.FormatClock(plan[0].FiresAt, timezone))
}
