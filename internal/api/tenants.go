package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"landlord/server/internal/models"
)

func (h *Handler) ListTenants(c *gin.Context) {
	page, err := h.page(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tenants, err := h.repo.ListTenants(c.Request.Context(), currentUser(c).ID, page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

func (h *Handler) CreateTenant(c *gin.Context) {
	var in models.TenantCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondBindError(c, err)
		return
	}

	tenant, err := h.repo.CreateTenant(c.Request.Context(), currentUser(c).ID, &in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (h *Handler) GetTenant(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	tenant, err := h.repo.GetTenant(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (h *Handler) UpdateTenant(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var patch models.TenantUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.respondBindError(c, err)
		return
	}

	tenant, err := h.repo.UpdateTenant(c.Request.Context(), currentUser(c).ID, id, &patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (h *Handler) DeleteTenant(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.repo.DeleteTenant(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tenant deleted successfully"})
}
