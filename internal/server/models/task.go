package models

// Priority ranks a task from low (1) to high (3).
type Priority int16

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Status tracks task progress from pending (1) to completed (3).
type Status int16

const (
	StatusPending    Status = 1
	StatusInProgress Status = 2
	StatusCompleted  Status = 3
)

// Task is a single todo item owned by a user.
type Task struct {
	ID       string
	UserID   string
	Content  string
	Priority Priority
	Status   Status
}
