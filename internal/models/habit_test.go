package models

import "testing"

func TestCategoryColorMapping(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryHealth, "#45B7D1"},
		{CategoryLearning, "#4ECDC4"},
		{CategoryMindfulness, "#FF6B6B"},
		{CategoryProductivity, "#96CEB4"},
		{CategoryOther, "#FFEEAD"},
	}

	for _, tt := range tests {
		if got := tt.category.Color(); got != tt.want {
			t.Errorf("%s.Color() = %s, want %s", tt.category, got, tt.want)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("expected category %q to be valid", c)
		}
	}
	if Category("Fitness").Valid() {
		t.Error("unknown category should not be valid")
	}
}

func TestFrequencyValid(t *testing.T) {
	for _, f := range Frequencies {
		if !f.Valid() {
			t.Errorf("expected frequency %q to be valid", f)
		}
	}
	if Frequency("Hourly").Valid() {
		t.Error("unknown frequency should not be valid")
	}
}

func TestHabitCompleted(t *testing.T) {
	h := Habit{Progress: 0}
	if h.Completed() {
		t.Error("habit with progress 0 should not be completed")
	}
	h.Progress = 1
	if !h.Completed() {
		t.Error("habit with progress 1 should be completed")
	}
}
