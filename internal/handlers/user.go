package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/dto"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"github.com/yukikurage/project-dashboard-api/internal/utils"
	"github.com/yukikurage/project-dashboard-api/internal/validation"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the authenticated user.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateMe changes the authenticated user's profile.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	raw, err := validation.DecodePartial(c.Request.Body, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	input, err := validation.BuildUpdateUserInput(req, raw)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.userService.UpdateMe(c.Request.Context(), user, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*updated))
}

// ListUsers returns every user.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, err := h.userService.ListUsers(c.Request.Context(), params.Skip, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}
