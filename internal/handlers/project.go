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

type ProjectHandler struct {
	projectService *services.ProjectService
	statsService   *services.StatsService
}

func NewProjectHandler(projectService *services.ProjectService, statsService *services.StatsService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		statsService:   statsService,
	}
}

// ListProjects returns every project
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, err := h.projectService.ListProjects(c.Request.Context(), params.Skip, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// CreateProject creates a project owned by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), user, services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ProjectStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// GetProject returns a single project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update (owner only)
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	var req dto.UpdateProjectRequest
	raw, err := validation.DecodePartial(c.Request.Body, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	input, err := validation.BuildUpdateProjectInput(req, raw)
	if err != nil {
		respondError(c, err)
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), user, projectID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project (owner only)
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), user, projectID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// ListProjectTasks returns the tasks of a project
func (h *ProjectHandler) ListProjectTasks(c *gin.Context) {
	projectID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}
	params := utils.GetPaginationParams(c)

	tasks, err := h.projectService.ListProjectTasks(c.Request.Context(), projectID, params.Skip, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetProjectSummary returns task statistics for a project the user owns
func (h *ProjectHandler) GetProjectSummary(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	summary, err := h.statsService.ProjectSummary(c.Request.Context(), user, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectSummaryDTO(summary))
}
