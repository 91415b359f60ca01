package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Quangqueee/hanoi-residences/internal/dto"
	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
	"github.com/Quangqueee/hanoi-residences/internal/service"
	"github.com/Quangqueee/hanoi-residences/internal/validation"
)

// SummaryGenerator produces a short marketing blurb for a listing.
type SummaryGenerator interface {
	GenerateListingSummary(ctx context.Context, listing *models.Listing) (string, error)
	Enabled() bool
}

// AdminHandler is the back-office surface: listing CRUD, the account
// directory and AI summaries.
type AdminHandler struct {
	listings  *service.ListingService
	auth      *service.AuthService
	summaries SummaryGenerator
}

func NewAdminHandler(listings *service.ListingService, auth *service.AuthService, summaries SummaryGenerator) *AdminHandler {
	return &AdminHandler{
		listings:  listings,
		auth:      auth,
		summaries: summaries,
	}
}

// CreateListing handles POST /admin/listings.
func (h *AdminHandler) CreateListing(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	listing := listingFromRequest(req.Title, req.Details, req.RoomType, req.District,
		req.Area, req.Price, req.SourceCode, req.Address, req.Phone, req.Images)

	if err := h.listings.Create(c.Request.Context(), listing); err != nil {
		h.writeListingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// GetListing handles GET /admin/listings/:id. Unlike the public
// endpoint, the full record including landlord contact is returned.
func (h *AdminHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid listing id"})
		return
	}

	listing, err := h.listings.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// UpdateListing handles PUT /admin/listings/:id.
func (h *AdminHandler) UpdateListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid listing id"})
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	existing, err := h.listings.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeListingError(c, err)
		return
	}

	listing := listingFromRequest(req.Title, req.Details, req.RoomType, req.District,
		req.Area, req.Price, req.SourceCode, req.Address, req.Phone, req.Images)
	listing.ID = existing.ID
	listing.AISummary = existing.AISummary
	listing.CreatedAt = existing.CreatedAt

	if err := h.listings.Update(c.Request.Context(), listing); err != nil {
		h.writeListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// DeleteListing handles DELETE /admin/listings/:id.
func (h *AdminHandler) DeleteListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid listing id"})
		return
	}

	if err := h.listings.Delete(c.Request.Context(), id); err != nil {
		h.writeListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "listing deleted"})
}

// GenerateSummary handles POST /admin/listings/:id/summary. The
// generated text is stored on the listing and returned.
func (h *AdminHandler) GenerateSummary(c *gin.Context) {
	if h.summaries == nil || !h.summaries.Enabled() {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "summary generation is not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid listing id"})
		return
	}

	listing, err := h.listings.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeListingError(c, err)
		return
	}

	summary, err := h.summaries.GenerateListingSummary(c.Request.Context(), listing)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "summary generation failed"})
		return
	}

	listing.AISummary = &summary
	if err := h.listings.Update(c.Request.Context(), listing); err != nil {
		h.writeListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{
		ListingID: id.String(),
		Summary:   summary,
	})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, total, err := h.auth.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.UserDirectoryResponse{
		Users: users,
		Total: total,
	})
}

// writeListingError maps service errors to HTTP responses. Validation
// failures carry the per-field map so the editor can highlight inputs.
func (h *AdminHandler) writeListingError(c *gin.Context, err error) {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: fieldErrs,
		})
		return
	}

	switch {
	case errors.Is(err, repository.ErrListingNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "listing not found"})
	case errors.Is(err, repository.ErrDuplicateListing):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "a listing with this source code already exists"})
	default:
		c.Error(err)
	}
}

func listingFromRequest(title, details, roomType, district string, area, price float64,
	sourceCode, address, phone string, images []string) *models.Listing {
	return &models.Listing{
		Title:      title,
		Details:    details,
		RoomType:   roomType,
		District:   district,
		Area:       area,
		Price:      price,
		SourceCode: sourceCode,
		Address:    address,
		Phone:      phone,
		Images:     pq.StringArray(images),
	}
}
