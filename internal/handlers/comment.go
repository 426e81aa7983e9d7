package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"github.com/yukikurage/project-dashboard-api/internal/utils"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment adds a comment to a task or a project
func (h *CommentHandler) CreateComment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), user, services.CreateCommentInput{
		Content:   req.Content,
		TaskID:    req.TaskID,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListTaskComments returns the comments on a task
func (h *CommentHandler) ListTaskComments(c *gin.Context) {
	taskID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	comments, err := h.commentService.ListTaskComments(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

// ListProjectComments returns the comments on a project
func (h *CommentHandler) ListProjectComments(c *gin.Context) {
	projectID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	comments, err := h.commentService.ListProjectComments(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

// UpdateComment edits a comment (author only)
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	commentID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid comment ID")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), user, commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment (author only)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	commentID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), user, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
