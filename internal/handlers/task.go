package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"github.com/yukikurage/project-dashboard-api/internal/utils"
	"github.com/yukikurage/project-dashboard-api/internal/validation"
)

type TaskHandler struct {
	taskService    *services.TaskService
	statsService   *services.StatsService
	timeLogService *services.TimeLogService
}

func NewTaskHandler(taskService *services.TaskService, statsService *services.StatsService, timeLogService *services.TimeLogService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		statsService:   statsService,
		timeLogService: timeLogService,
	}
}

// ListTasks returns all tasks, optionally filtered by project_id, assignee_id
// and status
func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID, err := utils.ParseOptionalUint(c, "project_id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project_id")
		return
	}
	assigneeID, err := utils.ParseOptionalUint(c, "assignee_id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignee_id")
		return
	}
	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		ProjectID:  zeroAsNil(projectID),
		AssigneeID: zeroAsNil(assigneeID),
		Skip:       params.Skip,
		Limit:      params.Limit,
	}
	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		input.Status = &s
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a task in any existing project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), user, services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.TaskStatus(req.Status),
		Priority:       models.TaskPriority(req.Priority),
		EstimatedHours: req.EstimatedHours,
		DueDate:        req.DueDate,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update (project owner or assignee)
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := validation.DecodePartial(c.Request.Body, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), user, taskID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task (project owner only)
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), user, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// ListMyTasks returns the tasks assigned to the current user
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	tasks, err := h.taskService.ListMyTasks(c.Request.Context(), user, params.Skip, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetMyTaskStats counts the current user's tasks by status
func (h *TaskHandler) GetMyTaskStats(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	stats, err := h.statsService.UserTaskStats(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserTaskStatsDTO(stats))
}

// CreateTimeLog logs time against a task. Any authenticated user may do so.
func (h *TaskHandler) CreateTimeLog(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	taskID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var req dto.CreateTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	log, err := h.timeLogService.LogTime(c.Request.Context(), user, taskID, services.LogTimeInput{
		Hours:       req.Hours,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeLogDTO(*log))
}

// ListTimeLogs returns the time logs of a task
func (h *TaskHandler) ListTimeLogs(c *gin.Context) {
	taskID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	logs, err := h.timeLogService.ListTaskTimeLogs(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeLogDTOs(logs))
}

// zeroAsNil treats an explicit 0 filter the same as an absent one.
func zeroAsNil(id *uint64) *uint64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}
