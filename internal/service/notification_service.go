package service

import (
	"context"

	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/pagination"
	"github.com/niyati34/college-meme-page/internal/repository"
)

// NotificationService reads and updates a user's stored notifications.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NotificationPage is one page of notifications plus pagination metadata and
// the recipient's unread count.
type NotificationPage struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
	Pagination    pagination.Meta        `json:"pagination"`
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) ListNotifications(ctx context.Context, recipientID uint, page pagination.Params) (*NotificationPage, error) {
	notifications, total, err := s.notificationRepo.ListByRecipient(ctx, recipientID, page)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{
		Notifications: notifications,
		UnreadCount:   unread,
		Pagination:    pagination.NewMeta(page, total),
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, recipientID, id uint) error {
	return s.notificationRepo.MarkRead(ctx, recipientID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}
