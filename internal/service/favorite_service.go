package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
)

// FavoriteStore is the persistence surface the favorite service needs.
type FavoriteStore interface {
	Add(ctx context.Context, userID, listingID uuid.UUID) (*models.Favorite, error)
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	ListIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
	ListListings(ctx context.Context, userID uuid.UUID, limit int) ([]models.Listing, error)
}

// ListingChecker confirms a listing exists before it can be favorited.
type ListingChecker interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

type FavoriteService struct {
	repo     FavoriteStore
	listings ListingChecker
}

func NewFavoriteService(repo FavoriteStore, listings ListingChecker) *FavoriteService {
	return &FavoriteService{repo: repo, listings: listings}
}

// Toggle flips the saved state of a listing for the user and returns
// the new state: true when the listing is now saved.
func (s *FavoriteService) Toggle(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return false, err
	}

	saved, err := s.repo.Exists(ctx, userID, listingID)
	if err != nil {
		return false, err
	}

	if saved {
		if err := s.repo.Remove(ctx, userID, listingID); err != nil {
			// Lost a race with another removal; the end state is the same.
			if errors.Is(err, repository.ErrFavoriteNotFound) {
				return false, nil
			}
			return false, err
		}
		return false, nil
	}

	if _, err := s.repo.Add(ctx, userID, listingID); err != nil {
		return false, err
	}
	return true, nil
}

// IsFavorite reports whether the user has saved the listing.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, userID, listingID)
}

// ListIDs returns the IDs of the user's saved listings, newest first.
func (s *FavoriteService) ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListIDs(ctx, userID, models.FavoriteBatchLimit)
}

// ListListings returns the user's saved listings with full records,
// capped at the favorites batch limit.
func (s *FavoriteService) ListListings(ctx context.Context, userID uuid.UUID) ([]models.Listing, error) {
	return s.repo.ListListings(ctx, userID, models.FavoriteBatchLimit)
}
