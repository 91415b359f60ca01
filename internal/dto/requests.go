package dto

import "time"

// RegisterRequest represents the sign-up payload
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token for rotation or logout
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SearchListingsQuery represents the catalogue search query string
type SearchListingsQuery struct {
	District    string `form:"district"`
	RoomType    string `form:"roomType"`
	PriceBucket string `form:"price"`
	Text        string `form:"q"`
	SearchBy    string `form:"searchBy"`
	SortBy      string `form:"sortBy"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

// CreateListingRequest represents the back-office payload to publish a listing
type CreateListingRequest struct {
	Title      string   `json:"title" binding:"required"`
	Details    string   `json:"details" binding:"required"`
	RoomType   string   `json:"room_type" binding:"required"`
	District   string   `json:"district" binding:"required"`
	Area       float64  `json:"area"`
	Price      float64  `json:"price"`
	SourceCode string   `json:"source_code" binding:"required"`
	Address    string   `json:"address" binding:"required"`
	Phone      string   `json:"landlord_phone" binding:"required"`
	Images     []string `json:"images"`
}

// UpdateListingRequest represents the back-office payload to edit a listing
type UpdateListingRequest struct {
	Title      string   `json:"title" binding:"required"`
	Details    string   `json:"details" binding:"required"`
	RoomType   string   `json:"room_type" binding:"required"`
	District   string   `json:"district" binding:"required"`
	Area       float64  `json:"area"`
	Price      float64  `json:"price"`
	SourceCode string   `json:"source_code" binding:"required"`
	Address    string   `json:"address" binding:"required"`
	Phone      string   `json:"landlord_phone" binding:"required"`
	Images     []string `json:"images"`
}

// UpdateProfileRequest represents the account-settings payload
type UpdateProfileRequest struct {
	DisplayName       string  `json:"display_name" binding:"required"`
	Phone             *string `json:"phone"`
	DateOfBirth       *string `json:"date_of_birth"`
	Gender            *string `json:"gender"`
	Interests         *string `json:"interests"`
	AvatarURL         *string `json:"avatar_url"`
	PreferredDistrict *string `json:"preferred_district"`
}

// ParseDateOfBirth converts the date string (YYYY-MM-DD) to a time.Time pointer
func (r *UpdateProfileRequest) ParseDateOfBirth() (*time.Time, error) {
	if r.DateOfBirth == nil || *r.DateOfBirth == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
