package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
	"github.com/Quangqueee/hanoi-residences/internal/validation"
)

// mockListingStore answers facet queries from an in-memory slice.
type mockListingStore struct {
	listings []models.Listing
	created  []*models.Listing
}

func (m *mockListingStore) FindByFacets(ctx context.Context, district, roomType string) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range m.listings {
		if district != "" && l.District != district {
			continue
		}
		if roomType != "" && l.RoomType != roomType {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *mockListingStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	for i := range m.listings {
		if m.listings[i].ID == id {
			l := m.listings[i]
			return &l, nil
		}
	}
	return nil, repository.ErrListingNotFound
}

func (m *mockListingStore) GetBySourceCode(ctx context.Context, code string) (*models.Listing, error) {
	for i := range m.listings {
		if m.listings[i].SourceCode == code {
			l := m.listings[i]
			return &l, nil
		}
	}
	return nil, repository.ErrListingNotFound
}

func (m *mockListingStore) Create(ctx context.Context, listing *models.Listing) error {
	listing.ID = uuid.New()
	m.created = append(m.created, listing)
	m.listings = append(m.listings, *listing)
	return nil
}

func (m *mockListingStore) Update(ctx context.Context, listing *models.Listing) error {
	for i := range m.listings {
		if m.listings[i].ID == listing.ID {
			m.listings[i] = *listing
			return nil
		}
	}
	return repository.ErrListingNotFound
}

func (m *mockListingStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range m.listings {
		if m.listings[i].ID == id {
			m.listings = append(m.listings[:i], m.listings[i+1:]...)
			return nil
		}
	}
	return repository.ErrListingNotFound
}

type recordingNotifier struct {
	published []*models.Listing
}

func (n *recordingNotifier) ListingPublished(ctx context.Context, listing *models.Listing) {
	n.published = append(n.published, listing)
}

func makeListing(title, district, roomType, sourceCode string, price float64, createdSec int64) models.Listing {
	return models.Listing{
		ID:         uuid.New(),
		Title:      title,
		Details:    "Phòng sạch sẽ, thoáng mát, gần trung tâm.",
		RoomType:   roomType,
		District:   district,
		Area:       25,
		Price:      price,
		SourceCode: sourceCode,
		Address:    "Số 1 Kim Mã, " + district + ", Hà Nội",
		Phone:      "0912345678",
		Images:     pq.StringArray{"https://example.com/a.jpg"},
		CreatedAt:  models.Timestamp{Seconds: createdSec},
	}
}

func TestListingService_SearchPriceBucket(t *testing.T) {
	store := &mockListingStore{listings: []models.Listing{
		makeListing("Phòng A", "Tây Hồ", models.RoomTypeStudio, "HN-00001", 5.0, 100),
		makeListing("Phòng B", "Tây Hồ", models.RoomTypeStudio, "HN-00002", 6.9, 200),
		makeListing("Phòng C", "Tây Hồ", models.RoomTypeStudio, "HN-00003", 7.5, 300),
		makeListing("Phòng D", "Tây Hồ", models.RoomTypeStudio, "HN-00004", 4.9, 400),
		makeListing("Phòng E", "Tây Hồ", models.RoomTypeStudio, "HN-00005", 8.1, 500),
	}}
	svc := NewListingService(store, nil)

	res, err := svc.Search(context.Background(), SearchParams{PriceRange: "5-7"})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}

	// 5.0, 6.9 and 7.5 truncate to buckets 5..7; 4.9 and 8.1 fall outside.
	if res.TotalResults != 3 {
		t.Fatalf("expected 3 results in bucket 5-7, got %d", res.TotalResults)
	}
	for _, l := range res.Listings {
		if l.Price < 5.0 || l.Price >= 8.0 {
			t.Fatalf("listing with price %.1f must not be in bucket 5-7", l.Price)
		}
	}
}

func TestListingService_SearchOpenEndedPriceRange(t *testing.T) {
	store := &mockListingStore{listings: []models.Listing{
		makeListing("Phòng A", "Tây Hồ", models.RoomTypeStudio, "HN-00001", 3.0, 100),
		makeListing("Phòng B", "Tây Hồ", models.RoomTypeStudio, "HN-00002", 12.0, 200),
	}}
	svc := NewListingService(store, nil)

	res, err := svc.Search(context.Background(), SearchParams{PriceRange: "10-"})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if res.TotalResults != 1 || res.Listings[0].Price != 12.0 {
		t.Fatalf("open-ended range 10- should keep only the 12.0 listing, got %d results", res.TotalResults)
	}
}

func TestListingService_SearchDiacriticInsensitive(t *testing.T) {
	store := &mockListingStore{listings: []models.Listing{
		makeListing("Cho thuê studio Tây Hồ view hồ", "Tây Hồ", models.RoomTypeStudio, "HN-00001", 6.0, 100),
		makeListing("Phòng Đống Đa giá rẻ", "Đống Đa", models.RoomTypeOther, "HN-00002", 4.0, 200),
	}}
	svc := NewListingService(store, nil)

	res, err := svc.Search(context.Background(), SearchParams{Query: "tay ho", SearchBy: SearchByTitle})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if res.TotalResults != 1 {
		t.Fatalf("unaccented query must match the accented title, got %d results", res.TotalResults)
	}
	if res.Listings[0].SourceCode != "HN-00001" {
		t.Fatalf("wrong listing matched: %s", res.Listings[0].SourceCode)
	}

	// Accented query against the same records behaves identically.
	res2, err := svc.Search(context.Background(), SearchParams{Query: "Đống Đa", SearchBy: SearchByTitle})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if res2.TotalResults != 1 || res2.Listings[0].SourceCode != "HN-00002" {
		t.Fatalf("accented query must still match, got %d results", res2.TotalResults)
	}
}

func TestListingService_SearchBySelectors(t *testing.T) {
	store := &mockListingStore{listings: []models.Listing{
		makeListing("Phòng đẹp Cầu Giấy", "Cầu Giấy", models.RoomTypeStudio, "HN-11111", 6.0, 100),
	}}
	svc := NewListingService(store, nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		query    string
		searchBy string
		want     int
	}{
		{"title selector matches title", "cau giay", SearchByTitle, 1},
		{"title selector ignores code", "11111", SearchByTitle, 0},
		{"code selector matches code", "11111", SearchBySourceCode, 1},
		{"code selector ignores title", "cau giay", SearchBySourceCode, 0},
		{"code-or-address matches address", "kim ma", SearchBySourceCodeOrAddress, 1},
		{"default matches either title or code", "11111", "", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Search(ctx, SearchParams{Query: tc.query, SearchBy: tc.searchBy})
			if err != nil {
				t.Fatalf("search returned error: %v", err)
			}
			if res.TotalResults != tc.want {
				t.Fatalf("expected %d results, got %d", tc.want, res.TotalResults)
			}
		})
	}
}

func TestListingService_SortOrders(t *testing.T) {
	oldest := makeListing("Old", "Tây Hồ", models.RoomTypeStudio, "HN-00001", 9.0, 100)
	newest := makeListing("New", "Tây Hồ", models.RoomTypeStudio, "HN-00002", 3.0, 300)
	edited := makeListing("Edited", "Tây Hồ", models.RoomTypeStudio, "HN-00003", 6.0, 50)
	edited.UpdatedAt = models.Timestamp{Seconds: 500} // edits count as recency

	store := &mockListingStore{listings: []models.Listing{oldest, newest, edited}}
	svc := NewListingService(store, nil)
	ctx := context.Background()

	res, err := svc.Search(ctx, SearchParams{SortBy: SortNewest})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	got := []string{res.Listings[0].Title, res.Listings[1].Title, res.Listings[2].Title}
	want := []string{"Edited", "New", "Old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("newest order wrong: got %v, want %v", got, want)
		}
	}

	res, err = svc.Search(ctx, SearchParams{SortBy: SortPriceAsc})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if res.Listings[0].Price != 3.0 || res.Listings[2].Price != 9.0 {
		t.Fatalf("price-asc order wrong: %v", res.Listings)
	}

	res, err = svc.Search(ctx, SearchParams{SortBy: SortPriceDesc})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if res.Listings[0].Price != 9.0 || res.Listings[2].Price != 3.0 {
		t.Fatalf("price-desc order wrong: %v", res.Listings)
	}
}

func TestListingService_Pagination(t *testing.T) {
	store := &mockListingStore{}
	for i := 0; i < 12; i++ {
		store.listings = append(store.listings,
			makeListing("Phòng", "Tây Hồ", models.RoomTypeStudio, uuid.NewString(), 5.0, int64(i)))
	}
	svc := NewListingService(store, nil)
	ctx := context.Background()

	page1, err := svc.Search(ctx, SearchParams{Page: 1})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if len(page1.Listings) != DefaultPageSize || page1.TotalResults != 12 {
		t.Fatalf("page 1: got %d listings, total %d", len(page1.Listings), page1.TotalResults)
	}

	page2, err := svc.Search(ctx, SearchParams{Page: 2})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if len(page2.Listings) != 3 || page2.TotalResults != 12 {
		t.Fatalf("page 2: got %d listings, total %d", len(page2.Listings), page2.TotalResults)
	}

	// Pages never overlap.
	seen := map[uuid.UUID]bool{}
	for _, l := range append(page1.Listings, page2.Listings...) {
		if seen[l.ID] {
			t.Fatalf("listing %s appeared on both pages", l.ID)
		}
		seen[l.ID] = true
	}

	// A page past the end is empty but keeps the exact total.
	page9, err := svc.Search(ctx, SearchParams{Page: 9})
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if len(page9.Listings) != 0 || page9.TotalResults != 12 {
		t.Fatalf("out-of-range page: got %d listings, total %d", len(page9.Listings), page9.TotalResults)
	}
}

func TestListingService_CreateValidatesAndNotifies(t *testing.T) {
	store := &mockListingStore{}
	notifier := &recordingNotifier{}
	svc := NewListingService(store, notifier)
	ctx := context.Background()

	bad := makeListing("x", "Nowhere", "penthouse", "HN-00001", -1, 0)
	err := svc.Create(ctx, &bad)
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var fieldErrs validation.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	for _, field := range []string{"title", "district", "room_type", "price"} {
		if _, ok := fieldErrs[field]; !ok {
			t.Fatalf("expected error for field %q, got %v", field, fieldErrs)
		}
	}
	if len(notifier.published) != 0 {
		t.Fatalf("invalid listing must not be announced")
	}

	good := makeListing("Phòng đẹp Tây Hồ", "Tây Hồ", models.RoomTypeStudio, "HN-00001", 6.5, 0)
	if err := svc.Create(ctx, &good); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if len(notifier.published) != 1 || notifier.published[0].SourceCode != "HN-00001" {
		t.Fatalf("district watchers must be notified exactly once")
	}
}
