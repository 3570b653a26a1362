package params

import (
	"strconv"
	"strings"

	"taruf-api/core/constants"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams reads page_number, page_size and search, clamping paging to sane bounds.
func NewQueryParams(c echo.Context) *QueryParams {
	p := &QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}

	if n, err := strconv.Atoi(c.QueryParam("page_number")); err == nil && n > 0 {
		p.PageNumber = n
	}
	if n, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && n > 0 {
		p.PageSize = n
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}
	return p
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// PathInt64 parses a positive integer path parameter. ok is false when the
// value is missing, malformed or not positive.
func PathInt64(c echo.Context, name string) (int64, bool) {
	return positiveInt64(c.Param(name))
}

func QueryInt64(c echo.Context, name string) (int64, bool) {
	return positiveInt64(c.QueryParam(name))
}

func positiveInt64(raw string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
