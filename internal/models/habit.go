package models

// Category classifies a habit for display and grouping
type Category string

const (
	CategoryHealth       Category = "Health"
	CategoryLearning     Category = "Learning"
	CategoryMindfulness  Category = "Mindfulness"
	CategoryProductivity Category = "Productivity"
	CategoryOther        Category = "Other"
)

// Categories lists all valid categories in display order
var Categories = []Category{
	CategoryHealth,
	CategoryLearning,
	CategoryMindfulness,
	CategoryProductivity,
	CategoryOther,
}

// Valid reports whether the category is one of the known values
func (c Category) Valid() bool {
	switch c {
	case CategoryHealth, CategoryLearning, CategoryMindfulness, CategoryProductivity, CategoryOther:
		return true
	}
	return false
}

// Color returns the display color for the category as a hex string
func (c Category) Color() string {
	switch c {
	case CategoryHealth:
		return "#45B7D1"
	case CategoryLearning:
		return "#4ECDC4"
	case CategoryMindfulness:
		return "#FF6B6B"
	case CategoryProductivity:
		return "#96CEB4"
	default:
		return "#FFEEAD"
	}
}

// Frequency describes how often a habit repeats
type Frequency string

const (
	FrequencyDaily  Frequency = "Daily"
	FrequencyWeekly Frequency = "Weekly"
	FrequencyCustom Frequency = "Custom"
)

// Frequencies lists all valid frequencies in display order
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyCustom}

// Valid reports whether the frequency is one of the known values
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return true
	}
	return false
}

// Habit represents a recurring practice built around a cue/action/reward loop.
// Progress is a completion fraction in [0,1]; the toggle operation only ever
// moves it between the two endpoints. Streak counts consecutive completions.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Color     string    `json:"color"`
	Cue       string    `json:"cue"`
	Reward    string    `json:"reward"`
	Frequency Frequency `json:"frequency"`
	Progress  float64   `json:"progress"`
	Streak    int       `json:"streak"`
}

// Completed reports whether the habit is marked done
func (h Habit) Completed() bool {
	return h.Progress == 1
}

// HabitInput holds the user-supplied fields for creating a habit
type HabitInput struct {
	Name      string
	Category  Category
	Cue       string
	Reward    string
	Frequency Frequency
}
