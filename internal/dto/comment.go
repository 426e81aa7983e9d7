package dto

import (
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64          `json:"id"`
	Content   string          `json:"content"`
	TaskID    *uint64         `json:"task_id"`
	ProjectID *uint64         `json:"project_id"`
	AuthorID  uint64          `json:"author_id"`
	Author    *UserSummaryDTO `json:"author,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateCommentRequest is the body of POST /comments
type CreateCommentRequest struct {
	Content   string  `json:"content" binding:"required"`
	TaskID    *uint64 `json:"task_id"`
	ProjectID *uint64 `json:"project_id"`
}

// UpdateCommentRequest is the body of PUT /comments/:id
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		TaskID:    comment.TaskID,
		ProjectID: comment.ProjectID,
		AuthorID:  comment.AuthorID,
		Author:    ToUserSummaryDTO(&comment.Author),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = ToCommentDTO(c)
	}
	return out
}
