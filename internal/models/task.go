package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo        TaskStatus = "todo"
	TaskStatusInProgress  TaskStatus = "in_progress"
	TaskStatusReview      TaskStatus = "review"
	TaskStatusReadyToTest TaskStatus = "ready_to_test"
	TaskStatusInTest      TaskStatus = "in_test"
	TaskStatusClosed      TaskStatus = "closed"

	// TaskStatusCompleted is accepted on input and stored as TaskStatusClosed.
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskStatuses lists the stored status vocabulary in workflow order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusReview,
	TaskStatusReadyToTest,
	TaskStatusInTest,
	TaskStatusClosed,
}

// Normalize maps input aliases onto the stored vocabulary.
func (s TaskStatus) Normalize() TaskStatus {
	if s == TaskStatusCompleted {
		return TaskStatusClosed
	}
	return s
}

// Valid reports whether s (after normalisation) is a known status.
func (s TaskStatus) Valid() bool {
	n := s.Normalize()
	for _, status := range TaskStatuses {
		if n == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status closes the task.
func (s TaskStatus) IsTerminal() bool {
	return s.Normalize() == TaskStatusClosed
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         TaskStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority       TaskPriority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	EstimatedHours *float64       `json:"estimated_hours"`
	ActualHours    float64        `gorm:"not null;default:0" json:"actual_hours"`
	DueDate        *time.Time     `json:"due_date"`
	ProjectID      uint64         `gorm:"not null" json:"project_id"`
	AssigneeID     *uint64        `json:"assignee_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	TimeLogs []TimeLog `gorm:"foreignKey:TaskID" json:"time_logs,omitempty"`
}
