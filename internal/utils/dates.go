package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// ParseOptionalDate parses a query parameter given as YYYY-MM-DD or RFC 3339.
// With inclusiveEnd set, a bare date is moved to the start of the next day so
// it can be used as an exclusive upper bound.
func ParseOptionalDate(c *gin.Context, key string, inclusiveEnd bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	if inclusiveEnd {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}
