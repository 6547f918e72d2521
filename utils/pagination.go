package authUtils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	minPage         = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// PaginationParams holds the offset-based pagination parameters, 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
	Skip  int64
}

// GetPaginationParams extracts and validates page/limit from the request.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))

	if page < minPage {
		page = minPage
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
		Skip:  int64((page - 1) * limit),
	}
}

// TotalPages returns ceil(totalCount / limit). A page beyond the last is a
// valid request answered with an empty item list, not an error.
func TotalPages(totalCount int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (totalCount + int64(limit) - 1) / int64(limit)
}
