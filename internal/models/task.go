package models

import "time"

// TaskDB represents a task record with its assignee eagerly resolved.
// The nested AssignedToUser is scanned from aliased "assigned_to_user.*"
// columns of the join query.
type TaskDB struct {
	ID               int64      `json:"id" db:"id"`                                // Primary key
	Title            string     `json:"title" db:"title"`                          // Required, non-empty
	Description      *string    `json:"description,omitempty" db:"description"`    // Optional
	DueDate          *time.Time `json:"dueDate,omitempty" db:"due_date"`           // Optional
	IsCompleted      bool       `json:"isCompleted" db:"is_completed"`             // Defaults to false
	AssignedToUserID int64      `json:"assignedToUserId" db:"assigned_to_user_id"` // FK to users.id
	AssignedToUser   UserDB     `json:"assignedToUser" db:"assigned_to_user"`      // Resolved assignee
}

// TaskCandidate carries the fields of a task before it is persisted.
type TaskCandidate struct {
	Title            string
	Description      *string
	DueDate          *time.Time
	AssignedToUserID int64
}
