package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Quangqueee/hanoi-residences/internal/goroutine"
	"github.com/Quangqueee/hanoi-residences/internal/logger"
	"github.com/Quangqueee/hanoi-residences/internal/models"
)

// NotificationRepository is the notification storage surface.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// DistrictWatchers resolves which users watch a district.
type DistrictWatchers interface {
	ListUserIDsByPreferredDistrict(ctx context.Context, district string) ([]uuid.UUID, error)
}

// NotificationPusher delivers a payload to a connected user, if any.
type NotificationPusher interface {
	Push(userID uuid.UUID, payload []byte)
}

// NotificationService persists notifications and fans them out over
// live connections.
type NotificationService struct {
	repo     NotificationRepository
	watchers DistrictWatchers
	pusher   NotificationPusher
}

func NewNotificationService(repo NotificationRepository, watchers DistrictWatchers, pusher NotificationPusher) *NotificationService {
	return &NotificationService{
		repo:     repo,
		watchers: watchers,
		pusher:   pusher,
	}
}

// ListingPublished notifies every user whose preferred district matches
// the new listing. The fan-out runs off the request goroutine so
// listing creation does not wait on it; delivery failures for
// individual users are logged and do not abort the fan-out.
func (s *NotificationService) ListingPublished(ctx context.Context, listing *models.Listing) {
	goroutine.SafeGoWithContext(context.WithoutCancel(ctx), func(ctx context.Context) {
		s.fanOut(ctx, listing)
	})
}

func (s *NotificationService) fanOut(ctx context.Context, listing *models.Listing) {
	userIDs, err := s.watchers.ListUserIDsByPreferredDistrict(ctx, listing.District)
	if err != nil {
		s.log().WithFields(logrus.Fields{
			"district": listing.District,
			"error":    err.Error(),
		}).Error("notification service: failed to resolve district watchers")
		return
	}
	if len(userIDs) == 0 {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event": models.NotificationListingPublished,
		"data": map[string]interface{}{
			"listing_id": listing.ID,
			"title":      listing.Title,
			"district":   listing.District,
			"room_type":  listing.RoomType,
			"price":      listing.Price,
			"cover":      listing.CoverImage(),
		},
	})
	if err != nil {
		s.log().WithField("error", err.Error()).Error("notification service: marshal payload")
		return
	}

	for _, userID := range userIDs {
		notification := &models.Notification{
			UserID:  userID,
			Event:   models.NotificationListingPublished,
			Payload: payload,
		}
		if err := s.repo.Create(ctx, notification); err != nil {
			s.log().WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("notification service: failed to store notification")
			continue
		}
		if s.pusher != nil {
			s.pusher.Push(userID, payload)
		}
	}
}

// List returns a page of the user's notifications.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, userID, limit, offset, unreadOnly)
}

// MarkAsRead marks one notification as read, scoped to its owner.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.MarkAsRead(ctx, id, userID); err != nil {
		return fmt.Errorf("notification service: %w", err)
	}
	return nil
}

// MarkAllAsRead marks every notification of the user as read.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// CountUnread returns the number of unread notifications.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationService) log() *logrus.Logger {
	if logger.Log != nil {
		return logger.Log
	}
	return logrus.StandardLogger()
}
