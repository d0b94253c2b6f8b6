package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// DefaultTTL bounds how long a cached product may serve reads.
const DefaultTTL = 60 * time.Second

// Repository is a read-through Redis cache in front of another product
// repository. Writes and deletes invalidate the cached entry; cache errors
// are logged and the underlying repository always stays authoritative.
type Repository struct {
	inner  ports.Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRepository decorates inner with a Redis cache.
func NewRepository(inner ports.Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Repository{inner: inner, client: client, ttl: ttl, logger: logger}
}

type cachedProduct struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Stock    int32  `json:"stock"`
}

func cacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	saved, err := r.inner.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, saved.ID)
	return saved, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if cached := r.lookup(ctx, id); cached != nil {
		return cached, nil
	}
	product, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, product)
	return product, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// List always hits the underlying repository; only point lookups are cached.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.inner.List(ctx)
}

func (r *Repository) lookup(ctx context.Context, id int64) *domain.Product {
	if r.client == nil {
		return nil
	}
	raw, err := r.client.Get(ctx, cacheKey(id)).Result()
	if err != nil {
		if err != redis.Nil {
			r.warn("product cache read failed", id, err)
		}
		return nil
	}
	var record cachedProduct
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		r.warn("product cache entry corrupt", id, err)
		return nil
	}
	price, err := decimal.NewFromString(record.Price)
	if err != nil {
		r.warn("product cache entry corrupt", id, err)
		return nil
	}
	return &domain.Product{
		ID:       record.ID,
		Name:     record.Name,
		Price:    price,
		Category: record.Category,
		Stock:    record.Stock,
	}
}

func (r *Repository) store(ctx context.Context, product *domain.Product) {
	if r.client == nil || product == nil {
		return
	}
	payload, err := json.Marshal(cachedProduct{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price.String(),
		Category: product.Category,
		Stock:    product.Stock,
	})
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, cacheKey(product.ID), payload, r.ttl).Err(); err != nil {
		r.warn("product cache write failed", product.ID, err)
	}
}

func (r *Repository) invalidate(ctx context.Context, id int64) {
	if r.client == nil {
		return
	}
	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		r.warn("product cache invalidation failed", id, err)
	}
}

func (r *Repository) warn(msg string, id int64, err error) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(msg, slog.Int64("product.id", id), slog.String("error", err.Error()))
}
