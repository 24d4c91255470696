package storage

import "time"

// Record keys shared by every engine.
const (
	KeyAssignments = "assignments"
	KeyActivities  = "completed_activities"
)

// AssignmentRecord is the persisted form of one backlog item. CompletionDate
// is nil while the item is pending.
type AssignmentRecord struct {
	ID             string  `json:"id"`
	Subject        string  `json:"subject"`
	Name           string  `json:"name"`
	XP             int     `json:"xp"`
	CompletionDate *string `json:"completionDate"`
}

// ActivityRecord maps a YYYY-MM-DD key to the activity ids logged that day.
type ActivityRecord map[string][]string

// Event is one entry of the completion history.
type Event struct {
	ID     int64     `json:"id"`
	At     time.Time `json:"at"`
	Kind   string    `json:"kind"`
	ItemID string    `json:"itemId"`
	Day    string    `json:"day"`
	Done   bool      `json:"done"`
	XP     int       `json:"xp"`
}
