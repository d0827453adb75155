package handler

import (
	"fmt"
	"strconv"

	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// parsePaginationParams reads page/per_page query parameters with defaults
func parsePaginationParams(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()

	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			params.Page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			params.PerPage = parsed
		}
	}

	return params
}

// parseCursorParams reads cursor/direction/limit query parameters
func parseCursorParams(c *gin.Context) *pagination.CursorParams {
	params := pagination.DefaultCursorParams()

	params.Cursor = c.Query("cursor")
	if d := c.Query("direction"); d == string(pagination.CursorDirectionPrev) {
		params.Direction = pagination.CursorDirectionPrev
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := parsePositiveInt(l); err == nil {
			params.Limit = parsed
		}
	}

	return params
}

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, fmt.Errorf("value must be positive")
	}
	return v, nil
}

func parseNonNegativeInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("value cannot be negative")
	}
	return v, nil
}
