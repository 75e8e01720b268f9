package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/momentum-app/momentum/internal/constants"
)

type ReflectCmd struct {
	New     ReflectNewCmd     `cmd:"" help:"Record a reflection for today." default:"1"`
	History ReflectHistoryCmd `cmd:"" help:"Show past reflections."`
}

type ReflectNewCmd struct {
	Successes    string `help:"What went well today."`
	Improvements string `help:"What could be better."`
	Journal      string `help:"Free-form notes."`
}

func (c *ReflectNewCmd) Run(ctx *Context) error {
	// Fall back to an interactive form when any field is missing.
	if c.Successes == "" || c.Improvements == "" || c.Journal == "" {
		if err := c.runForm(); err != nil {
			return err
		}
	}

	r, err := ctx.Reflections.Create(context.Background(), c.Successes, c.Improvements, c.Journal)
	if err != nil {
		return err
	}

	fmt.Printf("Reflection recorded for %s\n", r.Date.Format(constants.DateFormat))
	return nil
}

func (c *ReflectNewCmd) runForm() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What went well today?").
				Value(&c.Successes).
				Validate(requireText),
			huh.NewText().
				Title("What could be better?").
				Value(&c.Improvements).
				Validate(requireText),
			huh.NewText().
				Title("Journal").
				Value(&c.Journal).
				Validate(requireText),
		),
	).WithTheme(huh.ThemeDracula())
	return form.Run()
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

type ReflectHistoryCmd struct {
	Limit int `help:"Maximum number of reflections to show." default:"10"`
}

func (c *ReflectHistoryCmd) Run(ctx *Context) error {
	reflections, err := ctx.Reflections.List(context.Background())
	if err != nil {
		return err
	}

	if len(reflections) == 0 {
		fmt.Println("No reflections yet. Record one with 'momentum reflect new'.")
		return nil
	}

	if c.Limit > 0 && len(reflections) > c.Limit {
		reflections = reflections[:c.Limit]
	}

	for i, r := range reflections {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s\n", r.Date.Format(constants.DateFormat))
		fmt.Printf("  Went well:    %s\n", r.Successes)
		fmt.Printf("  Could improve: %s\n", r.Improvements)
		fmt.Printf("  Journal:      %s\n", r.Journal)
	}
	return nil
}
