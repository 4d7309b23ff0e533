package listquery

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// FromQuery reads the standard list parameters from a request. filterFields
// names the query parameters that become equality filters (e.g. "status").
func FromQuery(c *gin.Context, defaultSort string, filterFields ...string) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	filters := make(map[string]string, len(filterFields))
	for _, f := range filterFields {
		if v := strings.TrimSpace(c.Query(f)); v != "" {
			filters[f] = v
		}
	}

	sortDir := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_dir", "asc")))
	if sortDir != "desc" {
		sortDir = "asc"
	}

	return Params{
		Search:   strings.TrimSpace(c.Query("q")),
		Filters:  filters,
		SortBy:   strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", defaultSort))),
		SortDir:  sortDir,
		Page:     page,
		PageSize: pageSize,
	}
}
