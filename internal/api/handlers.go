package api

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"landlord/server/config"
	"landlord/server/internal/ai"
	"landlord/server/internal/auth"
	"landlord/server/internal/cache"
	"landlord/server/internal/models"
	"landlord/server/internal/repository"
)

// geocodeEnqueuer schedules background geocoding of a property address.
type geocodeEnqueuer interface {
	Enqueue(property *models.Property)
}

type Handler struct {
	repo     *repository.Repository
	cache    *cache.Cache
	ai       *ai.Adapter
	tokens   *auth.JWTManager
	geocoder geocodeEnqueuer
	paging   repository.Paging
	config   *config.Config
	logger   *logrus.Logger
}

// Dependencies are the long-lived handles a Handler is built from. Geocoder may be nil.
type Dependencies struct {
	Repo     *repository.Repository
	Cache    *cache.Cache
	AI       *ai.Adapter
	Tokens   *auth.JWTManager
	Geocoder geocodeEnqueuer
	Config   *config.Config
	Logger   *logrus.Logger
}

func NewHandler(deps Dependencies) *Handler {
	useJSONFieldNames()

	logger := deps.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		repo:     deps.Repo,
		cache:    deps.Cache,
		ai:       deps.AI,
		tokens:   deps.Tokens,
		geocoder: deps.Geocoder,
		paging: repository.Paging{
			DefaultLimit: deps.Config.Pagination.DefaultLimit,
			MaxLimit:     deps.Config.Pagination.MaxLimit,
		},
		config: deps.Config,
		logger: logger,
	}
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Landlord AI Assistant API"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Ready reports whether the entity store answers. The cache is best-effort and only reported.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	cacheStatus := "connected"
	if err := h.cache.HealthCheck(ctx); err != nil {
		cacheStatus = "unavailable"
	}
	if err := h.repo.Ping(ctx); err != nil {
		h.logger.WithError(err).Error("Readiness check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "database": "unavailable", "cache": cacheStatus})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "database": "connected", "cache": cacheStatus})
}

// page reads skip/limit query parameters, applying the server default and cap.
func (h *Handler) page(c *gin.Context) (repository.Page, error) {
	skip, err := intQuery(c, "skip", 0)
	if err != nil {
		return repository.Page{}, err
	}
	limit, err := intQuery(c, "limit", h.paging.DefaultLimit)
	if err != nil {
		return repository.Page{}, err
	}
	return h.paging.Page(skip, limit)
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError(name, "must be an integer")
	}
	return v, nil
}

func pathID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, models.NewValidationError(name, "must be a positive integer")
	}
	return uint(v), nil
}
