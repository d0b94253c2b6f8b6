package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/domain"
)

// CreateProductInput carries the fields accepted when cataloging a product.
type CreateProductInput struct {
	Name     string
	Price    decimal.Decimal
	Category string
	Stock    int32
}

// UpdateProductInput carries an optional patch; nil fields stay untouched.
type UpdateProductInput struct {
	Name     *string
	Price    *decimal.Decimal
	Category *string
	Stock    *int32
}

// Service exposes the products bounded context use cases.
type Service interface {
	List(ctx context.Context, category string) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta int32) (*domain.Product, error)
}
