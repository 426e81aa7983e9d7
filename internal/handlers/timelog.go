package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"github.com/yukikurage/project-dashboard-api/internal/utils"
)

type TimeLogHandler struct {
	timeLogService *services.TimeLogService
}

func NewTimeLogHandler(timeLogService *services.TimeLogService) *TimeLogHandler {
	return &TimeLogHandler{timeLogService: timeLogService}
}

// ListTimeLogs returns time logs filtered by task_id, user_id and an optional
// start_date/end_date period
func (h *TimeLogHandler) ListTimeLogs(c *gin.Context) {
	taskID, err := utils.ParseOptionalUint(c, "task_id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task_id")
		return
	}
	userID, err := utils.ParseOptionalUint(c, "user_id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user_id")
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	logs, err := h.timeLogService.ListTimeLogs(c.Request.Context(), services.ListTimeLogsInput{
		TaskID: zeroAsNil(taskID),
		UserID: zeroAsNil(userID),
		From:   from,
		To:     to,
		Skip:   params.Skip,
		Limit:  params.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeLogDTOs(logs))
}

// GetUserSummary totals a user's logged hours per task
func (h *TimeLogHandler) GetUserSummary(c *gin.Context) {
	userID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	summary, err := h.timeLogService.TimeLogSummary(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeLogSummaryDTO(summary))
}

func parsePeriod(c *gin.Context) (from, to *time.Time, ok bool) {
	from, err := utils.ParseOptionalDate(c, "start_date", false)
	if err != nil {
		apierrors.BadRequest(c, "Invalid start_date")
		return nil, nil, false
	}
	to, err = utils.ParseOptionalDate(c, "end_date", true)
	if err != nil {
		apierrors.BadRequest(c, "Invalid end_date")
		return nil, nil, false
	}
	return from, to, true
}
