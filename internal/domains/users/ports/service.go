package ports

import (
	"context"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/domain"
)

// RegisterUserInput carries the fields accepted at registration time.
type RegisterUserInput struct {
	Name  string
	Email string
	Role  string
}

// UpdateUserInput carries an optional patch; nil fields are left untouched
// (shallow-merge semantics). The id is never updatable.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

// Service exposes the users bounded context use cases.
type Service interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.User, error)
}
