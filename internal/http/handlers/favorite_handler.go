package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Quangqueee/hanoi-residences/internal/dto"
	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
	"github.com/Quangqueee/hanoi-residences/internal/service"
)

// FavoriteHandler exposes the saved-listings endpoints.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// Toggle handles POST /favorites/:listingId/toggle.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}

	listingID, err := uuid.Parse(c.Param("listingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid listing id"})
		return
	}

	saved, err := h.favorites.Toggle(c.Request.Context(), userID, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "listing not found"})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleFavoriteResponse{
		ListingID: listingID.String(),
		Saved:     saved,
	})
}

// List handles GET /favorites. Returns the saved listings with full
// records, newest saved first.
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}

	listings, err := h.favorites.ListListings(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	public := make([]models.Listing, len(listings))
	for i := range listings {
		public[i] = listings[i].PublicView()
	}

	c.JSON(http.StatusOK, dto.FavoritesResponse{
		Listings: public,
		Count:    len(public),
	})
}

// ListIDs handles GET /favorites/ids. A lightweight variant for
// rendering heart icons in the catalogue grid.
func (h *FavoriteHandler) ListIDs(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}

	ids, err := h.favorites.ListIDs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing_ids": ids})
}
