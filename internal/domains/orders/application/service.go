package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
)

// Service orchestrates the order workflow across the local store and the
// remote user, product, and notification collaborators.
type Service struct {
	repo     ports.Repository
	users    ports.UserDirectory
	catalog  ports.ProductCatalog
	notifier ports.Notifier
	logger   *slog.Logger
}

type Option func(*Service)

// WithLogger injects the slog logger used for the notification path.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService wires the orders service with its collaborators.
func NewService(repo ports.Repository, users ports.UserDirectory, catalog ports.ProductCatalog, notifier ports.Notifier, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		users:    users,
		catalog:  catalog,
		notifier: notifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create places an order: it validates the user and product remotely, checks
// advertised stock, prices the order, persists it, and notifies the user
// best-effort. No step is transactional and nothing compensates a late
// failure; stock is read but never reserved.
func (s *Service) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if input.UserID <= 0 {
		return nil, mapError(domain.ErrInvalidUserID)
	}
	if input.ProductID <= 0 {
		return nil, mapError(domain.ErrInvalidProductID)
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}

	// A transport failure and a negative answer collapse into the same
	// error: this boundary cannot tell "user missing" from "user service
	// down" and has never pretended to.
	exists, err := s.users.Exists(ctx, input.UserID)
	if err != nil || !exists {
		return nil, ErrUserNotFound
	}

	product, err := s.catalog.GetProduct(ctx, input.ProductID)
	if err != nil || product == nil {
		return nil, ErrProductNotFound
	}

	if product.Stock < quantity {
		return nil, ErrInsufficientStock
	}

	order, err := domain.NewOrder(input.UserID, input.ProductID, quantity, product.Price, time.Now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, saved.UserID,
		fmt.Sprintf("Your order #%d for %s has been created.", saved.ID, product.Name),
		"order_created")
	return saved, nil
}

// GetByID loads a single order.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns orders matching all set filter fields, insertion order.
func (s *Service) List(ctx context.Context, filter ports.Filter) ([]*domain.Order, error) {
	return s.repo.List(ctx, filter)
}

// UpdateStatus overwrites the order status unconditionally after validating
// the target value, then notifies the user best-effort.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	target := domain.Status(status)
	if !domain.IsValidStatus(target) {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.ChangeStatus(target, time.Now().UTC()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, saved.UserID,
		fmt.Sprintf("The status of your order #%d has been updated: %s", saved.ID, saved.Status),
		"order_status")
	return saved, nil
}

// Delete removes an order unconditionally.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Summary aggregates the full current order set, cancelled orders included.
func (s *Service) Summary(ctx context.Context) (*ports.Summary, error) {
	orders, err := s.repo.List(ctx, ports.Filter{})
	if err != nil {
		return nil, err
	}
	summary := &ports.Summary{
		TotalOrders:    len(orders),
		OrdersByStatus: map[domain.Status]int{},
	}
	for _, order := range orders {
		summary.TotalRevenue = summary.TotalRevenue.Add(order.TotalPrice)
		summary.OrdersByStatus[order.Status]++
	}
	return summary, nil
}

// notify delivers best-effort: a failure is logged and swallowed, never
// surfaced to the caller and never retried.
func (s *Service) notify(ctx context.Context, userID int64, message, kind string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, ports.Notification{UserID: userID, Message: message, Type: kind}); err != nil {
		s.logger.Warn("notification delivery failed",
			slog.Int64("user.id", userID),
			slog.String("notification.type", kind),
			slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
