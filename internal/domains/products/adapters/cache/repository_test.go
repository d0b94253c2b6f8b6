package cache

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/adapters/memory"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/ports"
)

// Without a Redis client the decorator must behave exactly like the inner
// repository; cache behavior itself needs a live server and is covered by
// the integration environment.
func TestRepository_PassThroughWithoutClient(t *testing.T) {
	repo := NewRepository(memory.NewRepository(), nil, 0, nil)
	ctx := context.Background()

	product, err := domain.NewProduct("Laptop Dell XPS", decimal.NewFromFloat(1299.99), "Informatique", 15)
	require.NoError(t, err)

	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "Laptop Dell XPS", fetched.Name)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	_, err = repo.GetByID(ctx, saved.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
