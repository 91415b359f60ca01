package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Quangqueee/hanoi-residences/internal/models"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoriteRepository owns the favorites table, one row per
// user/listing pair.
type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add saves a listing for a user. Adding an existing pair is a no-op
// that keeps the original added-at timestamp.
func (r *FavoriteRepository) Add(ctx context.Context, userID, listingID uuid.UUID) (*models.Favorite, error) {
	var f models.Favorite
	err := r.db.GetContext(ctx, &f, `
		INSERT INTO favorites (user_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, listing_id) DO UPDATE SET created_at = favorites.created_at
		RETURNING id, user_id, listing_id, created_at
	`, userID, listingID)
	if err != nil {
		return nil, fmt.Errorf("favorite repository: add %w", err)
	}
	return &f, nil
}

// Remove deletes the pair.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2
	`, userID, listingID)
	if err != nil {
		return fmt.Errorf("favorite repository: remove %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// Exists reports whether the user has saved the listing.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND listing_id = $2)
	`, userID, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("favorite repository: exists %w", err)
	}
	return exists, nil
}

// ListIDs returns the listing ids a user has saved, newest first.
func (r *FavoriteRepository) ListIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = models.FavoriteBatchLimit
	}
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `
		SELECT listing_id FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("favorite repository: list ids %w", err)
	}
	return ids, nil
}

// ListListings returns the saved listings themselves (capped batch),
// newest saved first.
func (r *FavoriteRepository) ListListings(ctx context.Context, userID uuid.UUID, limit int) ([]models.Listing, error) {
	if limit <= 0 || limit > models.FavoriteBatchLimit {
		limit = models.FavoriteBatchLimit
	}

	var rows []listingRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT l.id, l.title, l.details, l.ai_summary, l.room_type, l.district, l.area, l.price,
			l.source_code, l.address, l.landlord_phone, l.images, l.created_at, l.updated_at
		FROM favorites f
		JOIN listings l ON l.id = f.listing_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("favorite repository: list listings %w", err)
	}

	listings := make([]models.Listing, len(rows))
	for i, row := range rows {
		listings[i] = mapListingRow(row)
	}
	return listings, nil
}
