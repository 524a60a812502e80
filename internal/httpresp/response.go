package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page is the envelope of every paginated listing.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func Paged[T any](c *gin.Context, data []T, page, limit int, total int64) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, Page[T]{
		Data:  data,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}
