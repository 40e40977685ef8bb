package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"landlord/server/internal/models"
)

func (h *Handler) ListRentPayments(c *gin.Context) {
	page, err := h.page(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	payments, err := h.repo.ListRentPayments(c.Request.Context(), currentUser(c).ID, page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) CreateRentPayment(c *gin.Context) {
	var in models.RentPaymentCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondBindError(c, err)
		return
	}

	payment, err := h.repo.CreateRentPayment(c.Request.Context(), currentUser(c).ID, &in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *Handler) GetRentPayment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	payment, err := h.repo.GetRentPayment(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *Handler) UpdateRentPayment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var patch models.RentPaymentUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.respondBindError(c, err)
		return
	}

	payment, err := h.repo.UpdateRentPayment(c.Request.Context(), currentUser(c).ID, id, &patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *Handler) DeleteRentPayment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.repo.DeleteRentPayment(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rent payment deleted successfully"})
}
