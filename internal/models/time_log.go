package models

import "time"

// TimeLog is an append-only record of hours spent on a task.
type TimeLog struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"not null" json:"task_id"`
	UserID      uint64    `gorm:"not null" json:"user_id"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
