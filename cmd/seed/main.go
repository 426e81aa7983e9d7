package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/auth"
	"github.com/yukikurage/project-dashboard-api/internal/config"
	"github.com/yukikurage/project-dashboard-api/internal/database"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedUser struct {
	username string
	email    string
	fullName string
	password string
}

type seedProject struct {
	title       string
	description string
	status      models.ProjectStatus
}

type seedTask struct {
	title          string
	description    string
	status         models.TaskStatus
	priority       models.TaskPriority
	estimatedHours float64
	project        int
	assignee       int
}

var sampleUsers = []seedUser{
	{"alice", "alice@example.com", "Alice Carter", "alice123"},
	{"testuser", "testuser@example.com", "Test User", "testuser"},
	{"developer1", "developer1@example.com", "Developer One", "password123"},
	{"manager1", "manager1@example.com", "Manager One", "password123"},
}

var sampleProjects = []seedProject{
	{"E-Commerce Platform Development", "Build a modern e-commerce platform with a web frontend and an API backend", models.ProjectStatusActive},
	{"Mobile App for Task Management", "Develop a cross-platform mobile application for task and project management", models.ProjectStatusActive},
	{"Analytics Dashboard", "Create an analytics dashboard with reporting and forecasting", models.ProjectStatusOnHold},
}

var sampleTasks = []seedTask{
	{"Design User Interface", "Create wireframes and mockups for the e-commerce platform", models.TaskStatusClosed, models.TaskPriorityHigh, 16, 0, 0},
	{"Implement User Authentication", "Set up JWT-based authentication", models.TaskStatusInProgress, models.TaskPriorityHigh, 12, 0, 1},
	{"Create Product Catalog", "Build product listing and search", models.TaskStatusTodo, models.TaskPriorityMedium, 20, 0, 2},
	{"Payment Integration", "Integrate the payment gateway", models.TaskStatusTodo, models.TaskPriorityHigh, 24, 0, 3},
	{"Setup Mobile Project", "Initialize the mobile project skeleton", models.TaskStatusClosed, models.TaskPriorityMedium, 8, 1, 0},
	{"Design Mobile UI Components", "Create reusable UI components for the mobile app", models.TaskStatusInProgress, models.TaskPriorityHigh, 16, 1, 1},
	{"Implement Task CRUD Operations", "Create task creation, editing and deletion", models.TaskStatusReview, models.TaskPriorityHigh, 20, 1, 2},
	{"Add Push Notifications", "Implement push notifications for task reminders", models.TaskStatusTodo, models.TaskPriorityMedium, 12, 1, 3},
	{"Research Forecasting Models", "Select forecasting approaches for the dashboard", models.TaskStatusInProgress, models.TaskPriorityHigh, 24, 2, 0},
	{"Design Dashboard Layout", "Create a responsive layout with charts", models.TaskStatusReadyToTest, models.TaskPriorityMedium, 16, 2, 1},
	{"Implement Data Processing Pipeline", "Build the ETL pipeline", models.TaskStatusInTest, models.TaskPriorityHigh, 32, 2, 2},
	{"Create Reporting Exports", "Export reports as CSV and PDF", models.TaskStatusTodo, models.TaskPriorityLow, 40, 2, 3},
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.MigrateDatabase(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	s := newSeeder(db, cfg)
	if err := s.run(context.Background()); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("database seeding completed")
}

type seeder struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	auth     *services.AuthService
	projects *services.ProjectService
	tasks    *services.TaskService
	timeLogs *services.TimeLogService
}

func newSeeder(db *gorm.DB, cfg *config.Config) *seeder {
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	timeLogRepo := repository.NewTimeLogRepository(db)
	tokens := auth.NewJWTService(cfg.JWTSecret, time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute)

	return &seeder{
		db:       db,
		userRepo: userRepo,
		auth:     services.NewAuthService(userRepo, tokens),
		projects: services.NewProjectService(projectRepo, taskRepo),
		// Seeding does not send notifications.
		tasks:    services.NewTaskService(taskRepo, projectRepo, userRepo, nil),
		timeLogs: services.NewTimeLogService(timeLogRepo, taskRepo, userRepo),
	}
}

func (s *seeder) run(ctx context.Context) error {
	users, err := s.seedUsers(ctx)
	if err != nil {
		return err
	}

	var projectCount int64
	if err := s.db.WithContext(ctx).Model(&models.Project{}).Count(&projectCount).Error; err != nil {
		return fmt.Errorf("count projects: %w", err)
	}
	if projectCount > 0 {
		zap.L().Info("projects already present, skipping sample data", zap.Int64("projects", projectCount))
		return nil
	}

	owner := users[0]
	projects := make([]*models.Project, 0, len(sampleProjects))
	for _, p := range sampleProjects {
		project, err := s.projects.CreateProject(ctx, owner, services.CreateProjectInput{
			Title:       p.title,
			Description: p.description,
			Status:      p.status,
		})
		if err != nil {
			return fmt.Errorf("create project %q: %w", p.title, err)
		}
		projects = append(projects, project)
	}
	zap.L().Info("sample projects created", zap.Int("count", len(projects)))

	tasks := make([]*models.Task, 0, len(sampleTasks))
	for _, t := range sampleTasks {
		estimated := t.estimatedHours
		assigneeID := users[t.assignee].ID
		task, err := s.tasks.CreateTask(ctx, owner, services.CreateTaskInput{
			Title:          t.title,
			Description:    t.description,
			Status:         t.status,
			Priority:       t.priority,
			EstimatedHours: &estimated,
			ProjectID:      projects[t.project].ID,
			AssigneeID:     &assigneeID,
		})
		if err != nil {
			return fmt.Errorf("create task %q: %w", t.title, err)
		}
		tasks = append(tasks, task)
	}
	zap.L().Info("sample tasks created", zap.Int("count", len(tasks)))

	return s.seedTimeLogs(ctx, users, tasks)
}

func (s *seeder) seedUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(sampleUsers))
	for _, u := range sampleUsers {
		existing, err := s.userRepo.FindByUsername(ctx, u.username)
		if err == nil {
			users = append(users, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("look up user %q: %w", u.username, err)
		}

		user, err := s.auth.Register(ctx, services.RegisterInput{
			Username: u.username,
			Email:    u.email,
			FullName: u.fullName,
			Password: u.password,
		})
		if err != nil {
			return nil, fmt.Errorf("register user %q: %w", u.username, err)
		}
		users = append(users, user)
	}
	zap.L().Info("sample users ready", zap.Int("count", len(users)))
	return users, nil
}

// seedTimeLogs logs two or three entries against the first five tasks,
// each by the task's assignee on one of the previous seven days.
func (s *seeder) seedTimeLogs(ctx context.Context, users []*models.User, tasks []*models.Task) error {
	byID := make(map[uint64]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	now := time.Now().UTC()
	entries := 0
	for i, task := range tasks {
		if i >= 5 {
			break
		}
		logger := users[0]
		if task.AssigneeID != nil {
			if u, ok := byID[*task.AssigneeID]; ok {
				logger = u
			}
		}

		for day := 0; day < 2+i%2; day++ {
			date := now.AddDate(0, 0, -(1 + (i+day)%7))
			_, err := s.timeLogs.LogTime(ctx, logger, task.ID, services.LogTimeInput{
				Hours:       float64(2 + (i*3+day)%7),
				Description: fmt.Sprintf("Work on %s - day %d", task.Title, day+1),
				Date:        &date,
			})
			if err != nil {
				return fmt.Errorf("log time on task %d: %w", task.ID, err)
			}
			entries++
		}
	}
	zap.L().Info("sample time logs created", zap.Int("count", entries))
	return nil
}
