package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
)

func testOrder(userID int64) *domain.Order {
	order, _ := domain.NewOrder(userID, 1, 1, decimal.NewFromFloat(9.99), time.Now().UTC())
	return order
}

func TestSave_AssignsMonotonicIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Save(ctx, testOrder(1))
	require.NoError(t, err)
	second, err := repo.Save(ctx, testOrder(2))
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
}

func TestSave_NeverReusesDeletedIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Save(ctx, testOrder(1))
	require.NoError(t, err)
	second, err := repo.Save(ctx, testOrder(2))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, second.ID))
	third, err := repo.Save(ctx, testOrder(3))
	require.NoError(t, err)
	require.Greater(t, third.ID, second.ID, "a deleted id must not be reassigned")
	require.NotEqual(t, first.ID, third.ID)
}

func TestSave_ReturnsCloneIsolatedFromStore(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, testOrder(1))
	require.NoError(t, err)
	saved.Status = domain.StatusCancelled

	stored, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, stored.Status)
}

func TestList_FilterAndInsertionOrder(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, userID := range []int64{1, 2, 1} {
		_, err := repo.Save(ctx, testOrder(userID))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, ports.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		require.Greater(t, all[i].ID, all[i-1].ID)
	}

	userID := int64(1)
	filtered, err := repo.List(ctx, ports.Filter{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
}

func TestGetByID_Unknown(t *testing.T) {
	repo := NewRepository()

	_, err := repo.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
