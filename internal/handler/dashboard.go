package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardStats returns the point-in-time dashboard snapshot.
func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.dashboard.Compute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
