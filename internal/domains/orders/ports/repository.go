package ports

import (
	"context"
	"errors"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Filter narrows order listings. Nil fields match everything; set fields
// are combined with AND.
type Filter struct {
	UserID *int64
	Status *domain.Status
}

// Repository persists orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]*domain.Order, error)
}
