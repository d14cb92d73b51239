package utils

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 6
	MaxPageSize     = 48
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// Pagination is the window of a listing query over total matching rows.
type Pagination struct {
	Page       int
	PageSize   int
	Skip       int
	Take       int
	Total      int64
	TotalPages int
}

// ClampPage normalizes requested page and page size. page < 1 becomes 1 and
// pageSize < 1 becomes DefaultPageSize, with pageSize capped at MaxPageSize.
// page is capped so that (page-1)*pageSize cannot overflow.
func ClampPage(page, pageSize int) (int, int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}
	return page, pageSize
}

// Paginate computes skip/take and the page count for total rows.
func Paginate(total int64, page, pageSize int) Pagination {
	page, pageSize = ClampPage(page, pageSize)

	totalPages := int(total / int64(pageSize))
	if total%int64(pageSize) > 0 {
		totalPages++
	}

	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Skip:       (page - 1) * pageSize,
		Take:       pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// GetPaginationParams extracts pagination parameters from request.
// Malformed values fall back to defaults.
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	page, pageSize = ClampPage(page, pageSize)

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}
