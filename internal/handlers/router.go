package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/auth"
	"github.com/yukikurage/project-dashboard-api/internal/middleware"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"github.com/yukikurage/project-dashboard-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RouterConfig holds everything the HTTP surface needs
type RouterConfig struct {
	DB          *gorm.DB
	Tokens      *auth.JWTService
	Notifier    services.Notifier
	Logger      *zap.Logger
	CORSOrigins []string
}

// NewRouter wires repositories, services and handlers onto a gin engine
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if err := validation.RegisterGinRules(); err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(cfg.DB)
	projectRepo := repository.NewProjectRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	timeLogRepo := repository.NewTimeLogRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)

	authService := services.NewAuthService(userRepo, cfg.Tokens)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, cfg.Notifier)
	statsService := services.NewStatsService(projectRepo, taskRepo)
	timeLogService := services.NewTimeLogService(timeLogRepo, taskRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo, projectRepo)

	healthHandler := NewHealthHandler(cfg.DB)
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	projectHandler := NewProjectHandler(projectService, statsService)
	taskHandler := NewTaskHandler(taskService, statsService, timeLogService)
	timeLogHandler := NewTimeLogHandler(timeLogService)
	commentHandler := NewCommentHandler(commentService)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.GinZapMiddleware(logger), middleware.CORS(cfg.CORSOrigins))

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	// Auth routes (public)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	requireAuth := middleware.RequireAuth(authService)

	users := r.Group("/users", requireAuth)
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/me", userHandler.GetMe)
		users.PUT("/me", userHandler.UpdateMe)
	}

	projects := r.Group("/projects", requireAuth)
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.GET("/:id/tasks", projectHandler.ListProjectTasks)
		projects.GET("/:id/summary", projectHandler.GetProjectSummary)
	}

	tasks := r.Group("/tasks", requireAuth)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/my-tasks", taskHandler.ListMyTasks)
		tasks.GET("/my-tasks/stats", taskHandler.GetMyTaskStats)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.POST("/:id/time-logs", taskHandler.CreateTimeLog)
		tasks.GET("/:id/time-logs", taskHandler.ListTimeLogs)
	}

	timeLogs := r.Group("/timelog", requireAuth)
	{
		timeLogs.GET("", timeLogHandler.ListTimeLogs)
		timeLogs.GET("/summary/user/:id", timeLogHandler.GetUserSummary)
	}

	comments := r.Group("/comments", requireAuth)
	{
		comments.POST("", commentHandler.CreateComment)
		comments.GET("/task/:id", commentHandler.ListTaskComments)
		comments.GET("/project/:id", commentHandler.ListProjectComments)
		comments.PUT("/:id", commentHandler.UpdateComment)
		comments.DELETE("/:id", commentHandler.DeleteComment)
	}

	return r, nil
}
