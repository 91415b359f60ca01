package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Room type values accepted for a listing.
const (
	RoomTypeStudio     = "studio"
	RoomTypeOneBedroom = "one-bedroom"
	RoomTypeTwoBedroom = "two-bedroom"
	RoomTypeOther      = "other"
)

// ValidRoomTypes enumerates the accepted room types.
var ValidRoomTypes = map[string]struct{}{
	RoomTypeStudio:     {},
	RoomTypeOneBedroom: {},
	RoomTypeTwoBedroom: {},
	RoomTypeOther:      {},
}

// Districts is the fixed set of Hanoi administrative districts a listing
// can belong to. The district doubles as the primary search facet.
var Districts = []string{
	"Ba Đình",
	"Hoàn Kiếm",
	"Tây Hồ",
	"Long Biên",
	"Cầu Giấy",
	"Đống Đa",
	"Hai Bà Trưng",
	"Hoàng Mai",
	"Thanh Xuân",
	"Nam Từ Liêm",
	"Bắc Từ Liêm",
	"Hà Đông",
}

// ValidDistricts indexes Districts for O(1) membership checks.
var ValidDistricts = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Districts))
	for _, d := range Districts {
		m[d] = struct{}{}
	}
	return m
}()

// Timestamp is the wire shape for listing timestamps: a seconds and
// nanoseconds pair. A zero pair means the timestamp is absent.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

// TimestampFromTime converts a time.Time into the wire pair.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{
		Seconds:     t.Unix(),
		Nanoseconds: int64(t.Nanosecond()),
	}
}

// IsZero reports whether the timestamp carries no value.
func (t Timestamp) IsZero() bool {
	return t.Seconds == 0 && t.Nanoseconds == 0
}

// Listing describes an apartment rental record.
//
// Address and LandlordPhone are administrative fields and must never be
// serialized on the public surface; PublicView strips them.
type Listing struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	Title      string         `db:"title" json:"title"`
	Details    string         `db:"details" json:"details"`
	AISummary  *string        `db:"ai_summary" json:"ai_summary,omitempty"`
	RoomType   string         `db:"room_type" json:"room_type"`
	District   string         `db:"district" json:"district"`
	Area       float64        `db:"area" json:"area"`
	Price      float64        `db:"price" json:"price"`
	SourceCode string         `db:"source_code" json:"source_code"`
	Address    string         `db:"address" json:"address,omitempty"`
	Phone      string         `db:"landlord_phone" json:"landlord_phone,omitempty"`
	Images     pq.StringArray `db:"images" json:"images"`
	CreatedAt  Timestamp      `db:"-" json:"created_at"`
	UpdatedAt  Timestamp      `db:"-" json:"updated_at"`
}

// CoverImage returns the primary image URL, or "" for a listing that
// somehow has none.
func (l *Listing) CoverImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// EffectiveRecency returns the seconds component used for "newest"
// ordering: updated-at when present, created-at otherwise.
func (l *Listing) EffectiveRecency() int64 {
	if l.UpdatedAt.Seconds > 0 {
		return l.UpdatedAt.Seconds
	}
	return l.CreatedAt.Seconds
}

// PublicView returns a copy with the admin-only fields blanked.
func (l Listing) PublicView() Listing {
	l.Address = ""
	l.Phone = ""
	return l
}
