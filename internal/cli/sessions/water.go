package sessions

import (
	"fmt"

	"github.com/fastward/fastward/internal/cli"
)

type WaterAddCmd struct{}

func (c *WaterAddCmd) Run(ctx *cli.Context) error {
	sess, err := requireActive(ctx)
	if err != nil {
		return err
	}
	updated, err := ctx.Fasting.AddWater(ctx.UserID, sess.ID)
	if err != nil {
		return err
	}
	fmt.Printf("💧 Water logged (%d so far).\n", updated.WaterCount)
	return nil
}

type WaterRemoveCmd struct{}

func (c *WaterRemoveCmd) Run(ctx *cli.Context) error {
	sess, err := requireActive(ctx)
	if err != nil {
		return err
	}
	updated, err := ctx.Fasting.RemoveWater(ctx.UserID, sess.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Water count: %d.\n", updated.WaterCount)
	return nil
}
