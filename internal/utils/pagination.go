package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/constants"
)

// PaginationParams holds the skip/limit pagination parameters
type PaginationParams struct {
	Skip  int
	Limit int
}

// GetPaginationParams extracts and validates skip/limit from the query string.
// Invalid values fall back to the defaults instead of failing the request.
func GetPaginationParams(c *gin.Context) PaginationParams {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageLimit)))
	if err != nil || limit < 1 {
		limit = constants.DefaultPageLimit
	}
	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}

	return PaginationParams{
		Skip:  skip,
		Limit: limit,
	}
}

// ParseOptionalUint parses an optional numeric query parameter.
func ParseOptionalUint(c *gin.Context, key string) (*uint64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// ParseIDParam parses a positive numeric path parameter.
func ParseIDParam(c *gin.Context, key string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
