package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-dashboard-api/internal/constants"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles the user directory
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput represents the fields a user may change on their own account
type UpdateUserInput struct {
	FullName *string
	Password *string
	IsActive *bool
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns users ordered by ID
func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateMe applies a partial update to actor's own account
func (s *UserService) UpdateMe(ctx context.Context, actor *models.User, input UpdateUserInput) (*models.User, error) {
	fields := make(map[string]interface{})

	if input.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, NewValidationError("password", fmt.Sprintf("must be at least %d characters", constants.MinPasswordLength))
		}
		hashed, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hashed
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}

	if err := s.userRepo.UpdateFields(ctx, actor.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.GetUser(ctx, actor.ID)
}
