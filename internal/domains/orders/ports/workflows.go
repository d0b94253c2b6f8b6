package ports

import (
	"context"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs the order creation sequence, either inline or
// on a durable workflow engine.
type WorkflowOrchestrator interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
}
