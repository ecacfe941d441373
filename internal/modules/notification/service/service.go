package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/modules/notification/dto"
	"github.com/weavr-net/weavr-server/internal/modules/notification/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
)

type NotificationService interface {
	Notify(ctx context.Context, userID uuid.UUID, message string) error
	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.NotificationResponse, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{repo: repo, redisClient: redisClient}
}

// ChannelFor names the redis pub/sub channel carrying a user's live
// notifications.
func ChannelFor(userID string) string {
	return fmt.Sprintf("user_notifications:%s", userID)
}

// Notify persists the notification and publishes it for connected websocket
// clients. Publish failures are logged; the stored row is what matters.
func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	notification := &entity.Notification{
		UserID:  userID,
		Message: message,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(toNotificationResponse(notification))
		if err == nil {
			if err := s.redisClient.Publish(ctx, ChannelFor(userID.String()), payload).Err(); err != nil {
				log.Printf("failed to publish notification for %s: %v", userID, err)
			}
		}
	}
	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.NotificationResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	notifications, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, *toNotificationResponse(n))
	}
	return responses, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "notification not found")
		}
		return err
	}

	if notification.UserID != userID {
		return apperror.New(apperror.ErrForbidden, "notification belongs to another user")
	}

	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
