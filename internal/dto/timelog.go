package dto

import (
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

// TimeLogDTO represents a time log in API responses
type TimeLogDTO struct {
	ID          uint64          `json:"id"`
	TaskID      uint64          `json:"task_id"`
	UserID      uint64          `json:"user_id"`
	User        *UserSummaryDTO `json:"user,omitempty"`
	Hours       float64         `json:"hours"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateTimeLogRequest is the body of POST /tasks/:id/time-logs
type CreateTimeLogRequest struct {
	Hours       float64    `json:"hours"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
}

// TaskHoursDTO is one task row of a time summary
type TaskHoursDTO struct {
	TaskID  uint64  `json:"task_id"`
	Hours   float64 `json:"hours"`
	Entries int64   `json:"entries"`
}

// TimeLogSummaryDTO is the response of GET /timelog/summary/user/:id
type TimeLogSummaryDTO struct {
	UserID       uint64         `json:"user_id"`
	StartDate    *time.Time     `json:"start_date"`
	EndDate      *time.Time     `json:"end_date"`
	TotalHours   float64        `json:"total_hours"`
	TotalEntries int64          `json:"total_entries"`
	Tasks        []TaskHoursDTO `json:"tasks"`
}

// ToTimeLogDTO converts a TimeLog model to TimeLogDTO
func ToTimeLogDTO(log models.TimeLog) TimeLogDTO {
	return TimeLogDTO{
		ID:          log.ID,
		TaskID:      log.TaskID,
		UserID:      log.UserID,
		User:        ToUserSummaryDTO(&log.User),
		Hours:       log.Hours,
		Description: log.Description,
		Date:        log.Date,
		CreatedAt:   log.CreatedAt,
	}
}

// ToTimeLogDTOs converts a slice of time logs
func ToTimeLogDTOs(logs []models.TimeLog) []TimeLogDTO {
	out := make([]TimeLogDTO, len(logs))
	for i, l := range logs {
		out[i] = ToTimeLogDTO(l)
	}
	return out
}

// ToTimeLogSummaryDTO converts a time summary
func ToTimeLogSummaryDTO(s *services.TimeLogSummary) TimeLogSummaryDTO {
	tasks := make([]TaskHoursDTO, len(s.Tasks))
	for i, t := range s.Tasks {
		tasks[i] = TaskHoursDTO{TaskID: t.TaskID, Hours: t.Hours, Entries: t.Entries}
	}
	return TimeLogSummaryDTO{
		UserID:       s.UserID,
		StartDate:    s.From,
		EndDate:      s.To,
		TotalHours:   s.TotalHours,
		TotalEntries: s.TotalEntries,
		Tasks:        tasks,
	}
}
