package handlers

import (
	"errors"
	"net/http"

	userRepo "horizon/database/repository/user"
	"horizon/middleware"
	"horizon/models"
	"horizon/services/user"
	"horizon/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	Service user.UserService
	Logger  *zap.Logger
}

func NewUserHandler(svc user.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Service: svc, Logger: logger}
}

// SyncProfile upserts the caller's profile mirror after sign-in.
func (h *UserHandler) SyncProfile(c *gin.Context) {
	uid := middleware.CallerUID(c)

	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Phone string `json:"phone,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid profile payload", err.Error())
		return
	}

	u := models.User{UID: uid, Name: input.Name, Email: input.Email, Phone: input.Phone}
	if err := h.Service.SyncProfile(c.Request.Context(), u); err != nil {
		h.Logger.Error("profile sync failed", zap.String("uid", uid), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to sync profile", "Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": uid})
}

// GetProfile returns the caller's profile mirror.
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := middleware.CallerUID(c)

	u, err := h.Service.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch profile", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateFCMToken registers the caller's device for push notifications.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
	uid := middleware.CallerUID(c)

	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid token payload", err.Error())
		return
	}

	if err := h.Service.UpdateFCMToken(c.Request.Context(), uid, input.Token); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": uid})
}
