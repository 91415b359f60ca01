package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a per-user/per-listing row recording when the listing was
// saved. This is the single canonical representation of a favorite.
type Favorite struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ListingID uuid.UUID `db:"listing_id" json:"listing_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FavoriteBatchLimit caps how many favorited listings a single batch
// read returns.
const FavoriteBatchLimit = 30
