package constants

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldMessage    = "message"
	ResponseFieldData       = "data"
	ResponseFieldSuccess    = "success"
	ResponseFieldPagination = "pagination"
)

// PaginationParams holds the parsed list query.
type PaginationParams struct {
	Page   int    // Page number from user request (default: 1)
	Limit  int    // Limit per page from user request (default: 10)
	Offset int    // Calculated offset (page - 1) * limit
	Search string // Optional free-text filter
}

// PaginationMeta is the pagination block returned next to list data.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ParsePaginationParams reads page, limit and search from the query string.
// Unparseable or non-positive values fall back to the defaults.
func ParsePaginationParams(c *gin.Context) PaginationParams {
	page := parsePositiveInt(c.DefaultQuery(QueryParamPage, DefaultPage), DefaultPageInt)
	limit := parsePositiveInt(c.DefaultQuery(QueryParamLimit, DefaultLimit), DefaultLimitInt)

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
		Search: c.DefaultQuery(QueryParamSearch, DefaultSearch),
	}
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// NewPaginationMeta computes total pages for the given total row count.
func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Response Format Functions
func BuildListResponse(data any, meta PaginationMeta) map[string]any {
	return map[string]any{
		ResponseFieldData:       data,
		ResponseFieldPagination: meta,
		ResponseFieldSuccess:    true,
	}
}

func BuildDataResponse(message string, data any) map[string]any {
	response := map[string]any{
		ResponseFieldSuccess: true,
	}
	if message != "" {
		response[ResponseFieldMessage] = message
	}
	if data != nil {
		response[ResponseFieldData] = data
	}
	return response
}

func BuildErrorResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
		ResponseFieldSuccess: false,
	}
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
		ResponseFieldSuccess: true,
	}
}
