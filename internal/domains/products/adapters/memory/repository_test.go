package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/products/ports"
)

func testProduct(name string) *domain.Product {
	product, _ := domain.NewProduct(name, decimal.NewFromFloat(9.99), "Informatique", 5)
	return product
}

func TestSave_AssignsMonotonicIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Save(ctx, testProduct("laptop"))
	require.NoError(t, err)
	second, err := repo.Save(ctx, testProduct("screen"))
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
}

func TestSave_NeverReusesDeletedIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Save(ctx, testProduct("laptop"))
	require.NoError(t, err)
	second, err := repo.Save(ctx, testProduct("screen"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, second.ID))
	third, err := repo.Save(ctx, testProduct("chair"))
	require.NoError(t, err)
	require.Greater(t, third.ID, second.ID, "a deleted id must not be reassigned")
	require.NotEqual(t, first.ID, third.ID)
}

func TestSave_ReturnsCloneIsolatedFromStore(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, testProduct("laptop"))
	require.NoError(t, err)
	saved.Stock = 0

	stored, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, int32(5), stored.Stock)
}

func TestList_InsertionOrder(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, name := range []string{"laptop", "screen", "chair"} {
		_, err := repo.Save(ctx, testProduct(name))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		require.Greater(t, all[i].ID, all[i-1].ID)
	}
}

func TestGetByID_Unknown(t *testing.T) {
	repo := NewRepository()

	_, err := repo.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
