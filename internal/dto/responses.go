package dto

import (
	"github.com/Quangqueee/hanoi-residences/internal/models"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries a per-field error map for form editors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse represents the result of registration, login or refresh
type AuthResponse struct {
	User         *models.User    `json:"user,omitempty"`
	Profile      *models.Profile `json:"profile,omitempty"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
}

// ToggleFavoriteResponse reports the saved state after a toggle
type ToggleFavoriteResponse struct {
	ListingID string `json:"listing_id"`
	Saved     bool   `json:"saved"`
}

// FavoritesResponse is the saved-listings batch
type FavoritesResponse struct {
	Listings []models.Listing `json:"listings"`
	Count    int              `json:"count"`
}

// UserDirectoryResponse is a page of the admin account directory
type UserDirectoryResponse struct {
	Users []models.User `json:"users"`
	Total int           `json:"total"`
}

// MediaUploadResponse describes a stored photo
type MediaUploadResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// SummaryResponse carries a generated listing summary
type SummaryResponse struct {
	ListingID string `json:"listing_id"`
	Summary   string `json:"summary"`
}
