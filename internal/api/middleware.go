package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"landlord/server/internal/cache"
	"landlord/server/internal/models"
	"landlord/server/internal/repository"
)

const (
	requestIDKey   = "request_id"
	currentUserKey = "current_user"
)

// RequestID reuses an incoming X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := requestFields(c)
		fields["status"] = c.Writer.Status()
		fields["latency_ms"] = time.Since(start).Milliseconds()
		fields["client_ip"] = c.ClientIP()

		entry := logger.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("Request completed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request completed")
		default:
			entry.Info("Request completed")
		}
	}
}

func requestFields(c *gin.Context) logrus.Fields {
	fields := logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}
	if id, ok := c.Get(requestIDKey); ok {
		fields["request_id"] = id
	}
	if user, ok := c.Get(currentUserKey); ok {
		fields["user_id"] = user.(*models.User).ID
	}
	return fields
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
}

// RequireAuth resolves the bearer token to an active user, consulting the
// session cache before the user store.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			unauthorized(c)
			return
		}

		userID, err := h.tokens.ValidateToken(token)
		if err != nil {
			h.logger.WithError(err).Debug("Rejected bearer token")
			unauthorized(c)
			return
		}

		ctx := c.Request.Context()
		var session models.Session
		var user *models.User
		if h.cache.Get(ctx, cache.SessionKey(userID), &session) && session.UserID == userID {
			user = session.User()
		} else {
			user, err = h.repo.GetUserByID(ctx, userID)
			if errors.Is(err, repository.ErrNotFound) {
				unauthorized(c)
				return
			}
			if err != nil {
				h.respondError(c, err)
				c.Abort()
				return
			}
			h.cache.Put(ctx, cache.SessionKey(user.ID), user.Session(), h.config.Cache.SessionTTL)
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Inactive user"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(currentUserKey).(*models.User)
}
