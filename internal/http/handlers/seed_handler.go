package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Quangqueee/hanoi-residences/internal/dto"
	"github.com/Quangqueee/hanoi-residences/internal/service"
)

// SeedHandler fills a development database with demo data.
type SeedHandler struct {
	seedService *service.SeedService
}

func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// SeedRequest controls how much demo data is generated.
type SeedRequest struct {
	NumUsers    int `json:"num_users"`
	NumListings int `json:"num_listings"`
}

// Seed handles POST /seed. Only mounted outside production.
func (h *SeedHandler) Seed(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = SeedRequest{}
	}

	if req.NumUsers < 1 {
		req.NumUsers = 20
	}
	if req.NumListings < 1 {
		req.NumListings = 120
	}
	if req.NumUsers > 500 {
		req.NumUsers = 500
	}
	if req.NumListings > 2000 {
		req.NumListings = 2000
	}

	if err := h.seedService.SeedData(c.Request.Context(), req.NumUsers, req.NumListings); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "seed data generated",
		"num_users":    req.NumUsers,
		"num_listings": req.NumListings,
		"admin":        gin.H{"email": "admin@hanoiresidences.vn", "password": "Admin12345"},
	})
}
