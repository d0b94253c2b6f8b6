package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
)

// CreateOrderInput carries a placement request. Quantity defaults to one
// when left at zero.
type CreateOrderInput struct {
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

// Summary aggregates the full current order set. Revenue includes every
// order regardless of status, cancelled ones included.
type Summary struct {
	TotalOrders    int
	TotalRevenue   decimal.Decimal
	OrdersByStatus map[domain.Status]int
}

// Service exposes the orders bounded context use cases.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter Filter) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context) (*Summary, error)
}
