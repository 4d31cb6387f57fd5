package notifications

import (
	"database/sql"
	"errors"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Inbox returns the user's notifications, newest first, with the unread count.
func (s *Service) Inbox(userID int64, unreadOnly bool) ([]models.Notification, int, error) {
	list, err := s.store.ListForUser(userID, unreadOnly)
	if err != nil {
		return nil, 0, apperr.Database(err)
	}
	if list == nil {
		list = []models.Notification{}
	}
	unread, err := s.store.CountUnread(userID)
	if err != nil {
		return nil, 0, apperr.Database(err)
	}
	return list, unread, nil
}

// MarkRead marks a single notification as read. Users can only touch
// their own inbox.
func (s *Service) MarkRead(userID, notificationID int64) error {
	n, err := s.store.Get(notificationID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("NOTIFICATION_NOT_FOUND", "Notification not found")
	}
	if err != nil {
		return apperr.Database(err)
	}
	if n.UserID != userID {
		return apperr.Forbidden("NOT_OWNER", "Not your notification")
	}
	if err := s.store.MarkRead(notificationID); err != nil {
		return apperr.Database(err)
	}
	return nil
}

// MarkAllRead marks every unread notification in the user's inbox as read
// and returns how many were updated.
func (s *Service) MarkAllRead(userID int64) (int64, error) {
	n, err := s.store.MarkAllRead(userID)
	if err != nil {
		return 0, apperr.Database(err)
	}
	return n, nil
}
