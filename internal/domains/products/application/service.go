package application

import (
	"context"
	"errors"
	"strings"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/ports"
)

// Service implements the products bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the products service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// List returns catalog entries, optionally narrowed to one category
// (case-insensitive match).
func (s *Service) List(ctx context.Context, category string) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(category) == "" {
		return products, nil
	}
	filtered := make([]*domain.Product, 0, len(products))
	for _, product := range products {
		if product.InCategory(category) {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

// GetByID loads a single product.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create catalogs a new product. Name, price, and category are required;
// stock defaults to zero.
func (s *Service) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(input.Name, input.Price, input.Category, input.Stock)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update applies a shallow merge of the provided fields; the id is immutable.
func (s *Service) Update(ctx context.Context, id int64, input ports.UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := existing.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Price != nil {
		if err := existing.Reprice(*input.Price); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Category != nil {
		if err := existing.Recategorize(*input.Category); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Stock != nil {
		if err := existing.SetStock(*input.Stock); err != nil {
			return nil, mapError(err)
		}
	}
	existing.ID = id
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a product. Removing an unknown product succeeds, which is
// the behavior the catalog has always exposed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return nil
}

// AdjustStock applies a signed delta to the stock level, clamped at zero.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta int32) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.AdjustStock(delta)
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
