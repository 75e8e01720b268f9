// Package system holds setup, diagnostics, session, and server commands.
package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/momentum-app/momentum/internal/cli"
	"github.com/momentum-app/momentum/internal/habit"
)

type InitCmd struct {
	Force bool `help:"Delete the existing store before initialization."`
	Seed  bool `help:"Populate the new store with example habits."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://") {
			return fmt.Errorf("--force is not supported for postgres stores")
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized momentum storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Seed {
		if err := ctx.Store.Load(); err != nil {
			return err
		}
		seeded := habit.NewStore(ctx.Store, habit.WithSeed())
		seeded.Load()
		fmt.Printf("Seeded %d example habits.\n", len(seeded.List()))
	}

	return nil
}
