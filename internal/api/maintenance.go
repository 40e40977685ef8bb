package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"landlord/server/internal/models"
)

func (h *Handler) ListMaintenanceRequests(c *gin.Context) {
	page, err := h.page(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	requests, err := h.repo.ListMaintenanceRequests(c.Request.Context(), currentUser(c).ID, page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) CreateMaintenanceRequest(c *gin.Context) {
	var in models.MaintenanceRequestCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondBindError(c, err)
		return
	}

	request, err := h.repo.CreateMaintenanceRequest(c.Request.Context(), currentUser(c).ID, &in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) GetMaintenanceRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	request, err := h.repo.GetMaintenanceRequest(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) UpdateMaintenanceRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var patch models.MaintenanceRequestUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.respondBindError(c, err)
		return
	}

	request, err := h.repo.UpdateMaintenanceRequest(c.Request.Context(), currentUser(c).ID, id, &patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) DeleteMaintenanceRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.repo.DeleteMaintenanceRequest(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance request deleted successfully"})
}
