package sessions

import (
	"errors"
	"fmt"

	"github.com/fastward/fastward/internal/cli"
	"github.com/fastward/fastward/internal/fasting"
	"github.com/fastward/fastward/internal/timeutil"
)

type StartCmd struct {
	Protocol string `arg:"" optional:"" help:"Protocol name (13:11, 16:8, 18:6, 20:4, 36h) or a custom hour count like \"20h\". Defaults to the profile's protocol."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	name := c.Protocol
	profile, err := ctx.Fasting.Profile(ctx.UserID)
	if err != nil {
		return err
	}
	if name == "" {
		name = profile.DefaultProtocol
	}

	proto, err := cli.ParseProtocol(name)
	if err != nil {
		return err
	}

	sess, err := ctx.Fasting.StartFast(ctx.UserID, proto)
	if err != nil {
		if errors.Is(err, fasting.ErrSessionConflict) {
			return fmt.Errorf("a fast is already running; check 'fastward status' or cancel it first")
		}
		return err
	}

	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Started a %s fast (%v hours).\n", sess.Protocol, sess.FastingHours)
	fmt.Printf("  Ends %s.\n", timeutil.FormatClock(sess.TargetEndAt, profile.Timezone))
	return nil
}
