package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"landlord/server/internal/models"
)

func (h *Handler) ListProperties(c *gin.Context) {
	page, err := h.page(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	properties, err := h.repo.ListProperties(c.Request.Context(), currentUser(c).ID, page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var in models.PropertyCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondBindError(c, err)
		return
	}

	property, err := h.repo.CreateProperty(c.Request.Context(), currentUser(c).ID, &in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !property.HasCoordinates() {
		h.enqueueGeocode(property)
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	property, err := h.repo.GetProperty(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var patch models.PropertyUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.respondBindError(c, err)
		return
	}

	property, err := h.repo.UpdateProperty(c.Request.Context(), currentUser(c).ID, id, &patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	// A move without coordinates leaves them cleared; supplied ones win over a lookup.
	if patch.ChangesLocation() && !property.HasCoordinates() {
		h.enqueueGeocode(property)
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.repo.DeleteProperty(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

func (h *Handler) enqueueGeocode(property *models.Property) {
	if h.geocoder != nil {
		h.geocoder.Enqueue(property)
	}
}
