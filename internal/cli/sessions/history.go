package sessions

import (
	"fmt"
	"time"

	"github.com/fastward/fastward/internal/cli"
)

type HistoryCmd struct {
	Limit  int `help:"Number of sessions to show (1-200)." default:"50"`
	Offset int `help:"Number of sessions to skip." default:"0"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Fasting.Profile(ctx.UserID)
	if err != nil {
		return err
	}

	history, err := ctx.Fasting.GetSessionHistory(ctx.UserID, c.Limit, c.Offset)
	if err != nil {
		return err
	}

	if len(history) == 0 {
		fmt.Println("No finished fasts yet.")
		return nil
	}

	now := time.Now()
	for _, sess := range history {
		fmt.Printf("%s  %s\n", cli.SessionDate(sess), cli.FormatSession(sess, profile.Timezone, now))
	}
	return nil
}
