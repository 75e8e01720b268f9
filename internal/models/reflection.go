package models

import "time"

// Reflection is a single daily reflection entry. Entries are immutable once
// created and stored most-recent-first.
type Reflection struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Successes    string    `json:"successes"`
	Improvements string    `json:"improvements"`
	Journal      string    `json:"journal"`
}
