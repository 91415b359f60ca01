package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
)

// mockFavoriteStore keeps favorites in insertion order so batch reads
// can be asserted.
type mockFavoriteStore struct {
	rows []models.Favorite
}

func (m *mockFavoriteStore) find(userID, listingID uuid.UUID) int {
	for i, f := range m.rows {
		if f.UserID == userID && f.ListingID == listingID {
			return i
		}
	}
	return -1
}

func (m *mockFavoriteStore) Add(ctx context.Context, userID, listingID uuid.UUID) (*models.Favorite, error) {
	if i := m.find(userID, listingID); i >= 0 {
		return &m.rows[i], nil
	}
	fav := models.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}
	m.rows = append(m.rows, fav)
	return &fav, nil
}

func (m *mockFavoriteStore) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	i := m.find(userID, listingID)
	if i < 0 {
		return repository.ErrFavoriteNotFound
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

func (m *mockFavoriteStore) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	return m.find(userID, listingID) >= 0, nil
}

func (m *mockFavoriteStore) ListIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, f := range m.rows {
		if f.UserID == userID {
			ids = append(ids, f.ListingID)
		}
		if len(ids) == limit {
			break
		}
	}
	return ids, nil
}

func (m *mockFavoriteStore) ListListings(ctx context.Context, userID uuid.UUID, limit int) ([]models.Listing, error) {
	ids, _ := m.ListIDs(ctx, userID, limit)
	listings := make([]models.Listing, len(ids))
	for i, id := range ids {
		listings[i] = models.Listing{ID: id}
	}
	return listings, nil
}

func TestFavoriteService_ToggleFlipsState(t *testing.T) {
	listing := makeListing("Phòng", "Tây Hồ", models.RoomTypeStudio, "HN-00001", 5.0, 10)
	listingStore := &mockListingStore{listings: []models.Listing{listing}}
	favStore := &mockFavoriteStore{}
	svc := NewFavoriteService(favStore, listingStore)

	ctx := context.Background()
	userID := uuid.New()

	saved, err := svc.Toggle(ctx, userID, listing.ID)
	if err != nil {
		t.Fatalf("toggle returned error: %v", err)
	}
	if !saved {
		t.Fatalf("first toggle must save the listing")
	}

	saved, err = svc.Toggle(ctx, userID, listing.ID)
	if err != nil {
		t.Fatalf("toggle returned error: %v", err)
	}
	if saved {
		t.Fatalf("second toggle must remove the listing")
	}

	if exists, _ := favStore.Exists(ctx, userID, listing.ID); exists {
		t.Fatalf("favorite row must be gone after the second toggle")
	}
}

func TestFavoriteService_ToggleUnknownListing(t *testing.T) {
	svc := NewFavoriteService(&mockFavoriteStore{}, &mockListingStore{})

	if _, err := svc.Toggle(context.Background(), uuid.New(), uuid.New()); err == nil {
		t.Fatalf("toggling a missing listing must fail")
	}
}

func TestFavoriteService_BatchCap(t *testing.T) {
	listingStore := &mockListingStore{}
	favStore := &mockFavoriteStore{}
	svc := NewFavoriteService(favStore, listingStore)

	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < models.FavoriteBatchLimit+5; i++ {
		listing := makeListing("Phòng", "Tây Hồ", models.RoomTypeStudio, uuid.NewString(), 5.0, int64(i))
		listingStore.listings = append(listingStore.listings, listing)
		if _, err := svc.Toggle(ctx, userID, listing.ID); err != nil {
			t.Fatalf("toggle returned error: %v", err)
		}
	}

	listings, err := svc.ListListings(ctx, userID)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(listings) != models.FavoriteBatchLimit {
		t.Fatalf("saved batch must be capped at %d, got %d", models.FavoriteBatchLimit, len(listings))
	}
}
