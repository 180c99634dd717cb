package model

import "time"

// TaskStatus is the lifecycle state of a task. Approved and rejected tasks
// are terminal and immutable.
type TaskStatus string

const (
	TaskStatusNew             TaskStatus = "new"
	TaskStatusPendingApproval TaskStatus = "pending_approval"
	TaskStatusApproved        TaskStatus = "approved"
	TaskStatusRejected        TaskStatus = "rejected"
)

// IsValid reports whether the status is a known variant.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNew, TaskStatusPendingApproval, TaskStatusApproved, TaskStatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is legal.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusApproved || s == TaskStatusRejected
}

// TaskType tags how often a task recurs. Purely informational for listing
// and filtering; recurrence expansion is the caller's concern.
type TaskType string

const (
	TaskTypeOneTime TaskType = "one_time"
	TaskTypeDaily   TaskType = "daily"
	TaskTypeWeekly  TaskType = "weekly"
)

// IsValid reports whether the type is a known variant.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeOneTime, TaskTypeDaily, TaskTypeWeekly:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	Points      int        `json:"points"`
	Type        TaskType   `json:"type"`
	ChildID     string     `json:"child_id"`
	Status      TaskStatus `json:"status"`
	// Rating is set exactly once, when the task is approved.
	Rating       *float64  `json:"rating,omitempty"`
	AssignedByID string    `json:"assigned_by_id"`
	AssignedBy   string    `json:"assigned_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
