package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List all habits."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for today."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Sync   HabitSyncCmd   `cmd:"" help:"Upload the habit collection to the backend."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Category  string `help:"Category: Health, Learning, Mindfulness, Productivity, Other." default:"Other"`
	Cue       string `help:"The trigger that starts the habit." required:""`
	Reward    string `help:"The reward after completing it." required:""`
	Frequency string `help:"Frequency: Daily, Weekly, Custom." default:"Daily"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit, err := ctx.Habits.Add(models.HabitInput{
		Name:      c.Name,
		Category:  models.Category(c.Category),
		Cue:       c.Cue,
		Reward:    c.Reward,
		Frequency: models.Frequency(c.Frequency),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Name, habit.Category)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits := ctx.Habits.List()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'momentum habit add'.")
		return nil
	}

	for _, h := range habits {
		mark := " "
		if h.Completed() {
			mark = "x"
		}
		fmt.Printf("[%s] %-24s %-12s streak %-3d %3.0f%%\n", mark, h.Name, h.Category, h.Streak, h.Progress*100)
	}
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	id, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	habit, err := ctx.Habits.Toggle(id)
	if err != nil {
		return err
	}

	if habit.Completed() {
		fmt.Printf("Completed %q (streak %d)\n", habit.Name, habit.Streak)
	} else {
		fmt.Printf("Unmarked %q (streak %d)\n", habit.Name, habit.Streak)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	id, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Habits.Remove(id); err != nil {
		return err
	}
	fmt.Println("Habit deleted.")
	return nil
}

type HabitSyncCmd struct{}

func (c *HabitSyncCmd) Run(ctx *Context) error {
	userID, err := ctx.Identity.UserID()
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			return fmt.Errorf("not logged in, run 'momentum login' first")
		}
		return err
	}

	habits := ctx.Habits.List()
	if err := ctx.API.SyncHabits(context.Background(), userID, habits); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("Synced %d habits for %s\n", len(habits), userID)
	return nil
}

// resolveHabit matches the argument against habit ids, then exact names.
func resolveHabit(ctx *Context, arg string) (string, error) {
	habits := ctx.Habits.List()
	for _, h := range habits {
		if h.ID == arg {
			return h.ID, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, arg) {
			return h.ID, nil
		}
	}
	return "", fmt.Errorf("habit %q not found", arg)
}
