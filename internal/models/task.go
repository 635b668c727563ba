package models

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Task is a to-do scheduled on a calendar date
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title" validate:"nonblank"`
	Time      string   `json:"time" validate:"omitempty,timeofday"` // HH:MM or h:mm AM/PM
	Duration  *int     `json:"duration,omitempty" validate:"omitempty,min=0"`
	Priority  Priority `json:"priority" validate:"oneof=high medium low"`
	Completed bool     `json:"completed"`
	Notes     string   `json:"notes,omitempty"`
}

// TaskMap maps a local calendar date to that day's tasks in insertion order.
type TaskMap map[string][]Task

// TaskPatch holds the fields to merge into an existing task. Nil fields are left untouched.
type TaskPatch struct {
	Title     *string
	Time      *string
	Duration  *int
	Priority  *Priority
	Completed *bool
	Notes     *string
}

// Apply returns a copy of t with the non-nil patch fields merged in.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.Duration != nil {
		d := *p.Duration
		t.Duration = &d
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	return t
}
