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

// ListingHandler is the public catalogue surface. Landlord contact
// fields never leave through these endpoints.
type ListingHandler struct {
	listings *service.ListingService
}

func NewListingHandler(listings *service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// Search handles GET /listings.
func (h *ListingHandler) Search(c *gin.Context) {
	var query dto.SearchListingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.listings.Search(c.Request.Context(), service.SearchParams{
		Query:      query.Text,
		District:   query.District,
		RoomType:   query.RoomType,
		PriceRange: query.PriceBucket,
		Page:       query.Page,
		Limit:      query.PageSize,
		SortBy:     query.SortBy,
		SearchBy:   query.SearchBy,
	})
	if err != nil {
		c.Error(err)
		return
	}

	public := make([]models.Listing, len(result.Listings))
	for i := range result.Listings {
		public[i] = result.Listings[i].PublicView()
	}

	c.JSON(http.StatusOK, service.SearchResult{
		Listings:     public,
		TotalResults: result.TotalResults,
	})
}

// GetByID handles GET /listings/:id.
func (h *ListingHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid listing id"})
		return
	}

	listing, err := h.listings.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "listing not found"})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, listing.PublicView())
}
