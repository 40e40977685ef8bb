package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"landlord/server/internal/ai"
	"landlord/server/internal/cache"
	"landlord/server/internal/geometry"
	"landlord/server/internal/models"
	"landlord/server/internal/repository"
)

// CommunicationRequest is accepted as a JSON body or as query parameters.
type CommunicationRequest struct {
	TenantID uint   `json:"tenant_id" form:"tenant_id" binding:"required"`
	Context  string `json:"context" form:"context" binding:"required"`
}

// aiFailure reports an error raised before the adapter was reached. Ownership
// misses stay 404; anything else is a 500 naming the cause.
func (h *Handler) aiFailure(c *gin.Context, action string, err error) {
	var invalid *models.ValidationError
	if errors.Is(err, repository.ErrNotFound) || errors.As(err, &invalid) {
		h.respondError(c, err)
		return
	}
	h.logger.WithError(err).WithFields(requestFields(c)).Errorf("Failed to generate %s", action)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Failed to generate %s: %v", action, err)})
}

// summarizeCached serves key from the cache unless ?refresh=true, otherwise
// calls generate. Only success envelopes are stored.
func (h *Handler) summarizeCached(c *gin.Context, action, key string, ttl time.Duration, generate func() (ai.Envelope, error)) {
	ctx := c.Request.Context()

	var cached ai.Envelope
	if !refresh(c) && h.cache.Get(ctx, key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	envelope, err := generate()
	if err != nil {
		h.aiFailure(c, action, err)
		return
	}
	if envelope.OK() {
		h.cache.Put(ctx, key, envelope, ttl)
	}
	c.JSON(http.StatusOK, envelope)
}

func (h *Handler) Insights(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	h.summarizeCached(c, "insights", cache.InsightsKey(user.ID), h.config.Cache.DashboardTTL, func() (ai.Envelope, error) {
		properties, err := h.repo.AllProperties(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		snapshots := make([]models.PropertySnapshot, 0, len(properties))
		for i := range properties {
			snapshots = append(snapshots, properties[i].Snapshot())
		}
		return h.ai.PropertyInsights(ctx, snapshots), nil
	})
}

func (h *Handler) MaintenanceRecommendations(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	id, err := pathID(c, "property_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	// Ownership is checked before the cache so a foreign id never reads a cached entry.
	property, err := h.repo.GetProperty(ctx, user.ID, id)
	if err != nil {
		h.aiFailure(c, "maintenance recommendations", err)
		return
	}

	h.summarizeCached(c, "maintenance recommendations", cache.PropertyKey(id, "maintenance"), h.config.Cache.PropertyTTL, func() (ai.Envelope, error) {
		requests, err := h.repo.MaintenanceHistory(ctx, user.ID, id)
		if err != nil {
			return nil, err
		}
		history := make([]models.MaintenanceSnapshot, 0, len(requests))
		for i := range requests {
			history = append(history, requests[i].Snapshot())
		}
		return h.ai.MaintenanceRecommendations(ctx, property.Snapshot(), history), nil
	})
}

func (h *Handler) RentAnalysis(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	id, err := pathID(c, "property_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	property, err := h.repo.GetProperty(ctx, user.ID, id)
	if err != nil {
		h.aiFailure(c, "rent analysis", err)
		return
	}

	h.summarizeCached(c, "rent analysis", cache.PropertyKey(id, "rent-analysis"), h.config.Cache.PropertyTTL, func() (ai.Envelope, error) {
		comparables, err := h.repo.ComparableProperties(ctx, user.ID, property)
		if err != nil {
			return nil, err
		}
		market := geometry.MarketSummary(property, comparables, h.config.Market.ComparableRadiusKm)
		return h.ai.RentAnalysis(ctx, property.Snapshot(), market), nil
	})
}

// GenerateCommunication drafts a tenant message. Drafts are never cached.
func (h *Handler) GenerateCommunication(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	var in CommunicationRequest
	if err := c.ShouldBind(&in); err != nil {
		h.respondBindError(c, err)
		return
	}

	tenant, err := h.repo.GetTenant(ctx, user.ID, in.TenantID)
	if err != nil {
		h.aiFailure(c, "communication", err)
		return
	}
	property, err := h.repo.GetProperty(ctx, user.ID, tenant.PropertyID)
	if err != nil {
		h.aiFailure(c, "communication", err)
		return
	}

	c.JSON(http.StatusOK, h.ai.TenantCommunication(ctx, tenant.Snapshot(property.Name), in.Context))
}
