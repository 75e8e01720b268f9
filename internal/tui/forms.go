package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/momentum-app/momentum/internal/models"
)

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

// NewHabitForm walks the habit loop: cue, action, reward, then schedule.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	categoryOptions := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		categoryOptions[i] = huh.NewOption(string(c), c)
	}
	frequencyOptions := make([]huh.Option[models.Frequency], len(models.Frequencies))
	for i, f := range models.Frequencies {
		frequencyOptions[i] = huh.NewOption(string(f), f)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cue").
				Description("What triggers this habit?").
				Value(&fm.Cue).
				Validate(requireText),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Action").
				Description("The habit itself.").
				Value(&fm.Name).
				Validate(requireText),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Reward").
				Description("What do you get out of it?").
				Value(&fm.Reward).
				Validate(requireText),
		),
		huh.NewGroup(
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categoryOptions...).
				Value(&fm.Category),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(frequencyOptions...).
				Value(&fm.Frequency),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewReflectionForm(fm *ReflectionFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What went well today?").
				Value(&fm.Successes).
				Validate(requireText),
			huh.NewText().
				Title("What could be better?").
				Value(&fm.Improvements).
				Validate(requireText),
			huh.NewText().
				Title("Journal").
				Value(&fm.Journal).
				Validate(requireText),
		),
	).WithTheme(huh.ThemeDracula())
}
