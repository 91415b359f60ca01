package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func TestMapListingRow(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)
	updated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	row := listingRow{
		ID:         uuid.New(),
		Title:      "Căn hộ studio Tây Hồ",
		RoomType:   "studio",
		District:   "Tây Hồ",
		Area:       32,
		Price:      6.5,
		SourceCode: "TH-0042",
		Images:     pq.StringArray{"https://img.example/a.jpg"},
		CreatedAt:  sql.NullTime{Time: created, Valid: true},
		UpdatedAt:  sql.NullTime{Time: updated, Valid: true},
	}

	l := mapListingRow(row)

	if l.CreatedAt.Seconds != created.Unix() || l.CreatedAt.Nanoseconds != 589000000 {
		t.Fatalf("created_at mapped to %+v", l.CreatedAt)
	}
	if l.UpdatedAt.Seconds != updated.Unix() {
		t.Fatalf("updated_at mapped to %+v", l.UpdatedAt)
	}
	if l.Title != row.Title || l.District != row.District || l.Price != row.Price {
		t.Fatalf("fields not copied verbatim: %+v", l)
	}
}

func TestMapListingRowAbsentUpdatedAt(t *testing.T) {
	row := listingRow{
		ID:        uuid.New(),
		CreatedAt: sql.NullTime{Time: time.Unix(1700000000, 0), Valid: true},
	}

	l := mapListingRow(row)

	if !l.UpdatedAt.IsZero() {
		t.Fatalf("absent updated_at must map to the zero pair, got %+v", l.UpdatedAt)
	}
	if l.EffectiveRecency() != 1700000000 {
		t.Fatalf("effective recency must fall back to created_at, got %d", l.EffectiveRecency())
	}
}

func TestMapListingRowUpdatedAtWins(t *testing.T) {
	row := listingRow{
		CreatedAt: sql.NullTime{Time: time.Unix(1700000000, 0), Valid: true},
		UpdatedAt: sql.NullTime{Time: time.Unix(1800000000, 0), Valid: true},
	}

	l := mapListingRow(row)

	if l.EffectiveRecency() != 1800000000 {
		t.Fatalf("effective recency must prefer updated_at, got %d", l.EffectiveRecency())
	}
}
