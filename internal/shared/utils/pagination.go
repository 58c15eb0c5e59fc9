package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

// ParsePageFilter reads the 0-based "page" and "limit" query parameters.
// limit=-1 requests the full result set.
func ParsePageFilter(c *gin.Context, defaultLimit int) query.PageFilter {
	page := parseQueryInt(c, "page", 0)
	limit := parseQueryInt(c, "limit", defaultLimit)
	if limit == 0 {
		limit = defaultLimit
	}
	return query.NewPageFilter(page, limit)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// TotalPages returns 1 for empty or unlimited results.
func TotalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ParseUintParam reads a positive integer path parameter.
func ParseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError("Invalid "+key, raw)
	}
	return uint(n), nil
}
