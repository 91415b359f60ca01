package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Quangqueee/hanoi-residences/internal/logger"
	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/normalize"
	"github.com/Quangqueee/hanoi-residences/internal/validation"
)

// Sort keys accepted by Search.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// Search-field selectors. The public catalog searches title and source
// code, the admin back office searches source code and exact address.
const (
	SearchByTitle               = "title"
	SearchBySourceCode          = "sourceCode"
	SearchBySourceCodeOrAddress = "sourceCodeOrAddress"
	SearchByTitleOrSourceCode   = "titleOrSourceCode"
)

// DefaultPageSize is the page size used when the request names none.
const DefaultPageSize = 9

// ListingStore is the persistence surface the listing service needs.
// FindByFacets only answers equality facets; the price, text, sort and
// pagination stages run in this service so they stay in one place
// regardless of what the store can push down.
type ListingStore interface {
	FindByFacets(ctx context.Context, district, roomType string) ([]models.Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	GetBySourceCode(ctx context.Context, code string) (*models.Listing, error)
	Create(ctx context.Context, listing *models.Listing) error
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListingPublishedNotifier is told when a new listing goes live.
type ListingPublishedNotifier interface {
	ListingPublished(ctx context.Context, listing *models.Listing)
}

// SearchParams is the filter/sort/paginate request.
type SearchParams struct {
	Query      string
	District   string
	RoomType   string
	PriceRange string // "min-max", either bound omittable
	Page       int    // 1-based
	Limit      int
	SortBy     string
	SearchBy   string
}

// SearchResult is a page of listings plus the size of the whole
// filtered set (what the UI reports as "Found N listings").
type SearchResult struct {
	Listings     []models.Listing `json:"listings"`
	TotalResults int              `json:"totalResults"`
}

// ListingService implements catalog search and admin CRUD.
type ListingService struct {
	store    ListingStore
	notifier ListingPublishedNotifier
}

// NewListingService creates the service. notifier may be nil.
func NewListingService(store ListingStore, notifier ListingPublishedNotifier) *ListingService {
	return &ListingService{store: store, notifier: notifier}
}

// Search answers "page N of listings matching these filters, sorted".
//
// The store executes only the equality facets; every matching record is
// loaded and the price-range, text, sort and paginate stages run in
// memory per request. That is O(total facet matches) each call, which
// is fine at catalog scale (hundreds of rows) and keeps the result
// count exact for the filtered set.
func (s *ListingService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	listings, err := s.store.FindByFacets(ctx, params.District, params.RoomType)
	if err != nil {
		return nil, err
	}

	if params.PriceRange != "" {
		min, max, hasMin, hasMax := parsePriceRange(params.PriceRange)
		filtered := listings[:0]
		for _, l := range listings {
			// Prices can carry fractions while range buckets are whole
			// units: truncation decides bucket membership.
			bucket := math.Floor(l.Price)
			if hasMin && bucket < min {
				continue
			}
			if hasMax && bucket > max {
				continue
			}
			filtered = append(filtered, l)
		}
		listings = filtered
	}

	if q := strings.TrimSpace(params.Query); q != "" {
		folded := normalize.Fold(q)
		filtered := listings[:0]
		for _, l := range listings {
			if strings.Contains(normalize.Fold(searchTarget(&l, params.SearchBy)), folded) {
				filtered = append(filtered, l)
			}
		}
		listings = filtered
	}

	switch params.SortBy {
	case SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Price < listings[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Price > listings[j].Price
		})
	default: // SortNewest
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].EffectiveRecency() > listings[j].EffectiveRecency()
		})
	}

	total := len(listings)

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &SearchResult{
		Listings:     listings[start:end],
		TotalResults: total,
	}, nil
}

// searchTarget returns the text the query is matched against for one
// listing under the given selector.
func searchTarget(l *models.Listing, searchBy string) string {
	switch searchBy {
	case SearchByTitle:
		return l.Title
	case SearchBySourceCode:
		return l.SourceCode
	case SearchBySourceCodeOrAddress:
		return l.SourceCode + " " + l.Address
	default: // SearchByTitleOrSourceCode
		return l.Title + " " + l.SourceCode
	}
}

// parsePriceRange splits a "min-max" token. An absent or unparseable
// bound is open: min falls back to 0, max to unbounded.
func parsePriceRange(token string) (min, max float64, hasMin, hasMax bool) {
	parts := strings.SplitN(token, "-", 2)

	if v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil {
		min, hasMin = v, true
	}
	if len(parts) == 2 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
			max, hasMax = v, true
		}
	}
	return min, max, hasMin, hasMax
}

// GetByID returns one listing.
func (s *ListingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return s.store.GetByID(ctx, id)
}

// Create validates and stores a new listing, then notifies users
// watching its district.
func (s *ListingService) Create(ctx context.Context, listing *models.Listing) error {
	if err := validation.ValidateListing(listing); err != nil {
		return err
	}

	if err := s.store.Create(ctx, listing); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.ListingPublished(ctx, listing)
	}

	if logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"listing_id":  listing.ID,
			"source_code": listing.SourceCode,
			"district":    listing.District,
		}).Info("listing created")
	}

	return nil
}

// Update validates and rewrites an existing listing.
func (s *ListingService) Update(ctx context.Context, listing *models.Listing) error {
	if err := validation.ValidateListing(listing); err != nil {
		return err
	}
	return s.store.Update(ctx, listing)
}

// Delete removes a listing.
func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}
