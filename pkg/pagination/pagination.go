package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MinLimit     = 1
)

// Params holds validated pagination parameters.
// Skip is the offset the remote API expects.
type Params struct {
	Page  int
	Limit int
	Skip  int
}

// Parse extracts and validates skip/limit from query parameters.
// An explicit skip wins; otherwise it is derived from page.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	skip := (page - 1) * limit
	if raw, ok := c.GetQuery("skip"); ok {
		if s, err := strconv.Atoi(raw); err == nil && s >= 0 {
			skip = s
			page = s/limit + 1
		}
	}

	return Params{
		Page:  page,
		Limit: limit,
		Skip:  skip,
	}
}
