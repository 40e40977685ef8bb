package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"landlord/server/internal/cache"
	"landlord/server/internal/models"
)

// DashboardStats serves portfolio totals cache-aside. Writes never purge the
// entry, so figures may lag by up to the dashboard TTL.
func (h *Handler) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)
	key := cache.DashboardKey(user.ID)

	var stats models.DashboardStats
	if !refresh(c) && h.cache.Get(ctx, key, &stats) {
		c.JSON(http.StatusOK, stats)
		return
	}

	fresh, err := h.repo.DashboardStats(ctx, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.cache.Put(ctx, key, fresh, h.config.Cache.DashboardTTL)
	c.JSON(http.StatusOK, fresh)
}

func refresh(c *gin.Context) bool {
	return c.Query("refresh") == "true"
}
