package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Quangqueee/hanoi-residences/internal/models"
)

// Repository-level errors.
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrDuplicateListing = errors.New("source code already in use")
)

const listingColumns = `id, title, details, ai_summary, room_type, district, area, price, source_code, address, landlord_phone, images, created_at, updated_at`

// ListingRepository owns the listings table.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a new instance.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// listingRow is the raw stored shape of a listing. updated_at is
// nullable: older records were written before updates were tracked.
type listingRow struct {
	ID         uuid.UUID      `db:"id"`
	Title      string         `db:"title"`
	Details    string         `db:"details"`
	AISummary  *string        `db:"ai_summary"`
	RoomType   string         `db:"room_type"`
	District   string         `db:"district"`
	Area       float64        `db:"area"`
	Price      float64        `db:"price"`
	SourceCode string         `db:"source_code"`
	Address    string         `db:"address"`
	Phone      string         `db:"landlord_phone"`
	Images     pq.StringArray `db:"images"`
	CreatedAt  sql.NullTime   `db:"created_at"`
	UpdatedAt  sql.NullTime   `db:"updated_at"`
}

// mapListingRow converts a raw row into a Listing with the uniform
// seconds/nanoseconds timestamp pair. Reads are permissive: fields are
// copied as stored and an absent timestamp becomes the zero pair,
// validation happens on the write path only.
func mapListingRow(row listingRow) models.Listing {
	l := models.Listing{
		ID:         row.ID,
		Title:      row.Title,
		Details:    row.Details,
		AISummary:  row.AISummary,
		RoomType:   row.RoomType,
		District:   row.District,
		Area:       row.Area,
		Price:      row.Price,
		SourceCode: row.SourceCode,
		Address:    row.Address,
		Phone:      row.Phone,
		Images:     row.Images,
	}
	if row.CreatedAt.Valid {
		l.CreatedAt = models.TimestampFromTime(row.CreatedAt.Time)
	}
	if row.UpdatedAt.Valid {
		l.UpdatedAt = models.TimestampFromTime(row.UpdatedAt.Time)
	}
	return l
}

// FindByFacets returns every listing matching the given equality facets.
// Empty district or roomType means the facet is not applied. No price or
// text filtering happens here: those stages run in memory in the search
// service, the store only answers the facet query.
func (r *ListingRepository) FindByFacets(ctx context.Context, district, roomType string) ([]models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if district != "" {
		query += fmt.Sprintf(" AND district = $%d", argIndex)
		args = append(args, district)
		argIndex++
	}
	if roomType != "" {
		query += fmt.Sprintf(" AND room_type = $%d", argIndex)
		args = append(args, roomType)
		argIndex++
	}

	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing repository: find by facets %w", err)
	}

	listings := make([]models.Listing, len(rows))
	for i, row := range rows {
		listings[i] = mapListingRow(row)
	}
	return listings, nil
}

// GetByID returns a listing by identifier.
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var row listingRow
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("listing repository: get by id %w", err)
	}
	listing := mapListingRow(row)
	return &listing, nil
}

// GetBySourceCode returns a listing by its internal source code.
func (r *ListingRepository) GetBySourceCode(ctx context.Context, code string) (*models.Listing, error) {
	var row listingRow
	query := `SELECT ` + listingColumns + ` FROM listings WHERE source_code = $1`
	if err := r.db.GetContext(ctx, &row, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("listing repository: get by source code %w", err)
	}
	listing := mapListingRow(row)
	return &listing, nil
}

// GetByIDs returns the listings for the given ids, at most limit rows.
func (r *ListingRepository) GetByIDs(ctx context.Context, ids []uuid.UUID, limit int) ([]models.Listing, error) {
	if len(ids) == 0 {
		return []models.Listing{}, nil
	}
	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}

	var rows []listingRow
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = ANY($1) LIMIT $2`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids), limit); err != nil {
		return nil, fmt.Errorf("listing repository: get by ids %w", err)
	}

	listings := make([]models.Listing, len(rows))
	for i, row := range rows {
		listings[i] = mapListingRow(row)
	}
	return listings, nil
}

// Create inserts a listing and fills in its id and created timestamp.
func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (title, details, ai_summary, room_type, district, area, price, source_code, address, landlord_phone, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	var id uuid.UUID
	var createdAt sql.NullTime
	err := r.db.QueryRowxContext(
		ctx, query,
		listing.Title, listing.Details, listing.AISummary,
		listing.RoomType, listing.District, listing.Area, listing.Price,
		listing.SourceCode, listing.Address, listing.Phone, listing.Images,
	).Scan(&id, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateListing
		}
		return fmt.Errorf("listing repository: create %w", err)
	}

	listing.ID = id
	if createdAt.Valid {
		listing.CreatedAt = models.TimestampFromTime(createdAt.Time)
	}
	listing.UpdatedAt = models.Timestamp{}
	return nil
}

// Update rewrites a listing's fields and bumps updated_at.
func (r *ListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	query := `
		UPDATE listings
		SET title = $2, details = $3, ai_summary = $4, room_type = $5, district = $6,
			area = $7, price = $8, source_code = $9, address = $10, landlord_phone = $11,
			images = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	var updatedAt sql.NullTime
	err := r.db.QueryRowxContext(
		ctx, query,
		listing.ID,
		listing.Title, listing.Details, listing.AISummary,
		listing.RoomType, listing.District, listing.Area, listing.Price,
		listing.SourceCode, listing.Address, listing.Phone, listing.Images,
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrListingNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicateListing
		}
		return fmt.Errorf("listing repository: update %w", err)
	}

	if updatedAt.Valid {
		listing.UpdatedAt = models.TimestampFromTime(updatedAt.Time)
	}
	return nil
}

// Delete removes a listing. Favorites referencing it are removed by the
// foreign key cascade.
func (r *ListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("listing repository: delete %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("listing repository: delete rows affected %w", err)
	}
	if n == 0 {
		return ErrListingNotFound
	}
	return nil
}

// isUniqueViolation reports a postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
