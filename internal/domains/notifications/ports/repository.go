package ports

import (
	"context"
	"errors"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/domain"
)

// ErrNotFound is returned when no notification matches the requested id.
var ErrNotFound = errors.New("notification not found")

// Filter narrows List results. Nil fields match everything.
type Filter struct {
	UserID *int64
	Status *domain.Status
}

// Repository persists notifications. Save assigns an id on first insert.
type Repository interface {
	Save(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]*domain.Notification, error)
}
