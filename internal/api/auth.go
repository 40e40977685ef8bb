package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"landlord/server/internal/auth"
	"landlord/server/internal/cache"
	"landlord/server/internal/models"
	"landlord/server/internal/repository"
)

func (h *Handler) Register(c *gin.Context) {
	var in models.UserRegister
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondBindError(c, err)
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	user := &models.User{
		Email:          in.Email,
		FullName:       in.FullName,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := h.repo.CreateUser(c.Request.Context(), user); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithField("user_id", user.ID).Info("Registered user")
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Login(c *gin.Context) {
	var in models.UserLogin
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.repo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.respondError(c, err)
		return
	}
	if err != nil || !auth.VerifyPassword(in.Password, user.HashedPassword) {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.cache.Put(ctx, cache.SessionKey(user.ID), user.Session(), h.config.Cache.SessionTTL)
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// Me returns the stored account; the session snapshot lacks timestamps.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.repo.GetUserByID(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
