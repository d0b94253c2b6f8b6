package orders

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/activity"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
	orderports "github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
)

const (
	// CheckUserActivityName asks the user service whether a user exists.
	CheckUserActivityName = "orders.activities.CheckUser"
	// FetchProductActivityName loads product details from the catalog.
	FetchProductActivityName = "orders.activities.FetchProduct"
	// PersistOrderActivityName prices and stores the order aggregate.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// NotifyActivityName delivers the best-effort user notification.
	NotifyActivityName = "orders.activities.Notify"
)

// PersistOrderInput carries everything the persistence activity needs after
// the remote validations have run.
type PersistOrderInput struct {
	UserID    int64
	ProductID int64
	Quantity  int32
	UnitPrice decimal.Decimal
}

// Activities groups the order-creation activities. Each maps to one step
// of the inline workflow so durable and inline execution stay equivalent.
type Activities struct {
	repo     orderports.Repository
	users    orderports.UserDirectory
	catalog  orderports.ProductCatalog
	notifier orderports.Notifier
}

// NewActivities wires the order collaborators into the activity bundle.
func NewActivities(repo orderports.Repository, users orderports.UserDirectory, catalog orderports.ProductCatalog, notifier orderports.Notifier) *Activities {
	return &Activities{repo: repo, users: users, catalog: catalog, notifier: notifier}
}

// CheckUser reports whether the user exists. Transport failures surface as
// a negative answer so the workflow applies the same collapsed semantics
// as the inline path.
func (a *Activities) CheckUser(ctx context.Context, userID int64) (bool, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.users == nil {
		return false, errors.New("user directory not configured")
	}
	exists, err := a.users.Exists(ctx, userID)
	if err != nil {
		logger.Warn("user existence check failed", "userId", userID, "error", err)
		return false, nil
	}
	return exists, nil
}

// FetchProduct loads the product details, or nil when the product is
// missing or the catalog is unreachable.
func (a *Activities) FetchProduct(ctx context.Context, productID int64) (*orderports.ProductInfo, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.catalog == nil {
		return nil, errors.New("product catalog not configured")
	}
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		logger.Warn("product lookup failed", "productId", productID, "error", err)
		return nil, nil
	}
	return product, nil
}

// PersistOrder builds and stores the pending order aggregate.
func (a *Activities) PersistOrder(ctx context.Context, input PersistOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		return nil, errors.New("order repository not configured")
	}
	order, err := domain.NewOrder(input.UserID, input.ProductID, input.Quantity, input.UnitPrice, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	saved, err := a.repo.Save(ctx, order)
	if err != nil {
		logger.Error("order persistence failed", "userId", input.UserID, "error", err)
		return nil, err
	}
	logger.Info("order persisted", "orderId", saved.ID)
	return saved, nil
}

// Notify delivers the notification best-effort; failures are logged and
// swallowed so the workflow never fails after the order is persisted.
func (a *Activities) Notify(ctx context.Context, notification orderports.Notification) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.notifier == nil {
		return nil
	}
	if err := a.notifier.Send(ctx, notification); err != nil {
		logger.Warn("notification delivery failed", "userId", notification.UserID, "error", err)
	}
	return nil
}
