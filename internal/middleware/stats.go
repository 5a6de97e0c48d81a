package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shadowina/ecole-portal-api/internal/service"
)

// InvalidateStats drops cached dashboard entries after successful mutations
// so entity counts are not served stale until TTL expiry.
func InvalidateStats(stats *service.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if stats == nil {
			return
		}
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		stats.Invalidate(c.Request.Context())
	}
}
