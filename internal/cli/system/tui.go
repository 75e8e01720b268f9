package system

import (
	"github.com/momentum-app/momentum/internal/cli"
	"github.com/momentum-app/momentum/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return tui.Run(ctx.Habits, ctx.Reflections)
}
