package insights

import (
	"fmt"

	"github.com/fastward/fastward/internal/cli"
)

type ScheduleCmd struct{}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Fasting.Profile(ctx.UserID)
	if err != nil {
		return err
	}

	plan, err := ctx.Fasting.Plan(ctx.UserID)
	if err != nil {
		return err
	}

	if len(plan) == 0 {
		if !profile.NotificationsEnabled {
			fmt.Println("Notifications are disabled; enable them with 'fastward profile set --notifications'.")
			return nil
		}
		fmt.Println("Nothing scheduled.")
		return nil
	}

	fmt.Println("Upcoming reminders:")
	for _, entry := range plan {
		fmt.Printf("  %s\n", cli.FormatPlanEntry(entry, profile.Timezone))
	}
	return nil
}
