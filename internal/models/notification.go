package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification event types.
const (
	NotificationListingPublished = "listing.published"
)

// Notification is a stored event for a user, mirrored over the
// websocket hub when the user is connected.
type Notification struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	Event     string          `db:"event" json:"event"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	IsRead    bool            `db:"is_read" json:"is_read"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
