package insights

import (
	"fmt"

	"github.com/fastward/fastward/internal/cli"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	streaks, err := ctx.Fasting.Streaks(ctx.UserID)
	if err != nil {
		return err
	}

	fmt.Println("Fasting stats")
	fmt.Printf("  Current streak   %s\n", pluralDays(streaks.CurrentStreak))
	fmt.Printf("  Longest streak   %s\n", pluralDays(streaks.LongestStreak))
	fmt.Printf("  Total completed  %d\n", streaks.TotalCompleted)
	fmt.Printf("  30-day rate      %d%%\n", streaks.CompletionRate)
	return nil
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
