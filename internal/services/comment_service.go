package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound         = errors.New("comment not found")
	ErrCommentPermissionDenied = errors.New("only the author can modify this comment")
)

// CommentService handles comments on tasks and projects
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateCommentInput represents input for creating a comment. Exactly one of
// TaskID and ProjectID must be set.
type CreateCommentInput struct {
	Content   string
	TaskID    *uint64
	ProjectID *uint64
}

// CreateComment adds a comment by actor to an existing task or project
func (s *CommentService) CreateComment(ctx context.Context, actor *models.User, input CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(input.Content)

	verr := &ValidationError{}
	if content == "" {
		verr.Add("content", "is required")
	}
	hasTask := input.TaskID != nil && *input.TaskID != 0
	hasProject := input.ProjectID != nil && *input.ProjectID != 0
	if hasTask == hasProject {
		verr.Add("task_id", "exactly one of task_id or project_id is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  content,
		AuthorID: actor.ID,
	}
	if hasTask {
		if err := s.ensureTask(ctx, *input.TaskID); err != nil {
			return nil, err
		}
		comment.TaskID = input.TaskID
	} else {
		if err := s.ensureProject(ctx, *input.ProjectID); err != nil {
			return nil, err
		}
		comment.ProjectID = input.ProjectID
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Author = *actor

	return comment, nil
}

// ListTaskComments returns the comments of a task, oldest first
func (s *CommentService) ListTaskComments(ctx context.Context, taskID uint64) ([]models.Comment, error) {
	if err := s.ensureTask(ctx, taskID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ListProjectComments returns the comments of a project, oldest first
func (s *CommentService) ListProjectComments(ctx context.Context, projectID uint64) ([]models.Comment, error) {
	if err := s.ensureProject(ctx, projectID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment replaces the content of a comment written by actor
func (s *CommentService) UpdateComment(ctx context.Context, actor *models.User, id uint64, content string) (*models.Comment, error) {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModifyComment(actor, comment) {
		return nil, ErrCommentPermissionDenied
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewValidationError("content", "cannot be empty")
	}

	if err := s.commentRepo.UpdateContent(ctx, id, content); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return s.findComment(ctx, id)
}

// DeleteComment removes a comment written by actor
func (s *CommentService) DeleteComment(ctx context.Context, actor *models.User, id uint64) error {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return err
	}
	if !CanModifyComment(actor, comment) {
		return ErrCommentPermissionDenied
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *CommentService) findComment(ctx context.Context, id uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) ensureTask(ctx context.Context, id uint64) error {
	if _, err := s.taskRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	return nil
}

func (s *CommentService) ensureProject(ctx context.Context, id uint64) error {
	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}
