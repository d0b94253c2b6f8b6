package ports

import (
	"context"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/domain"
)

// CreateNotificationInput carries the fields accepted when recording a
// notification. An empty Type defaults to the general kind.
type CreateNotificationInput struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// BroadcastInput carries a message fanned out to every known recipient.
type BroadcastInput struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// UserStats aggregates a single user's notifications.
type UserStats struct {
	UserID int64          `json:"userId"`
	Total  int            `json:"total"`
	Unread int            `json:"unread"`
	Read   int            `json:"read"`
	ByType map[string]int `json:"byType"`
}

// Service exposes the notifications bounded context use cases.
type Service interface {
	Create(ctx context.Context, input CreateNotificationInput) (*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	List(ctx context.Context, filter Filter) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id int64) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, id int64) error
	StatsForUser(ctx context.Context, userID int64) (UserStats, error)
	Broadcast(ctx context.Context, input BroadcastInput) ([]*domain.Notification, error)
}
