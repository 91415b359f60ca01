package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/service"
)

// fixedFavoriteStore serves a fixed set of saved listings.
type fixedFavoriteStore struct {
	listings []models.Listing
}

func (s *fixedFavoriteStore) Add(_ context.Context, _, _ uuid.UUID) (*models.Favorite, error) {
	return &models.Favorite{}, nil
}
func (s *fixedFavoriteStore) Remove(_ context.Context, _, _ uuid.UUID) error { return nil }
func (s *fixedFavoriteStore) Exists(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (s *fixedFavoriteStore) ListIDs(_ context.Context, _ uuid.UUID, limit int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(s.listings))
	for i := range s.listings {
		if len(ids) == limit {
			break
		}
		ids = append(ids, s.listings[i].ID)
	}
	return ids, nil
}

func (s *fixedFavoriteStore) ListListings(_ context.Context, _ uuid.UUID, limit int) ([]models.Listing, error) {
	if len(s.listings) > limit {
		return s.listings[:limit], nil
	}
	return s.listings, nil
}

func TestFavoriteHandler_Toggle_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &FavoriteHandler{favorites: nil}
	r.POST("/favorites/:listingId/toggle", handler.Toggle)

	listingID := uuid.New()
	req, _ := http.NewRequest("POST", "/favorites/"+listingID.String()+"/toggle", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFavoriteHandler_Toggle_InvalidListingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	handler := &FavoriteHandler{favorites: nil}
	r.POST("/favorites/:listingId/toggle", handler.Toggle)

	req, _ := http.NewRequest("POST", "/favorites/invalid-uuid/toggle", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoriteHandler_List_StripsContactFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})

	saved := catalogueListing()
	store := &fixedFavoriteStore{listings: []models.Listing{saved}}
	handler := NewFavoriteHandler(service.NewFavoriteService(store, &fixedListingStore{rows: []models.Listing{saved}}))
	r.GET("/favorites", handler.List)

	req, _ := http.NewRequest("GET", "/favorites", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, saved.Title)
	assert.Contains(t, body, `"count":1`)
	assert.NotContains(t, body, "landlord_phone")
	assert.NotContains(t, body, "0912345678")
	assert.NotContains(t, body, "Kim Mã")
}
