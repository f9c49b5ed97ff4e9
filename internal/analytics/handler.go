package analytics

import (
	"net/http"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/member"
	sharedContext "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/context"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	registry *member.CacheRegistry
}

func NewAnalyticsHandler(registry *member.CacheRegistry) *AnalyticsHandler {
	return &AnalyticsHandler{
		registry: registry,
	}
}

// Summary GET /analytics, computed from the operator's member cache
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	operatorID, ok := sharedContext.RequireOperatorID(c)
	if !ok {
		return
	}

	cache := h.registry.ForOperator(c.Request.Context(), operatorID)
	c.JSON(http.StatusOK, Summarize(cache.Members()))
}
