package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Quangqueee/hanoi-residences/internal/dto"
	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/service"
)

// ProfileHandler serves the account-settings endpoints.
type ProfileHandler struct {
	auth *service.AuthService
}

func NewProfileHandler(auth *service.AuthService) *ProfileHandler {
	return &ProfileHandler{auth: auth}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	profile, err := h.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"profile": profile,
	})
}

// Update handles PUT /profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	dateOfBirth, err := req.ParseDateOfBirth()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "date_of_birth must be formatted YYYY-MM-DD"})
		return
	}

	profile := &models.Profile{
		UserID:            userID,
		DisplayName:       req.DisplayName,
		Phone:             req.Phone,
		DateOfBirth:       dateOfBirth,
		Gender:            req.Gender,
		Interests:         req.Interests,
		AvatarURL:         req.AvatarURL,
		PreferredDistrict: req.PreferredDistrict,
	}

	if err := h.auth.UpdateProfile(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
