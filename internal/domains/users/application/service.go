package application

import (
	"context"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/users/ports"
)

// Service implements the users bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the users service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new user. Missing name or email is rejected; an absent
// role defaults to "user".
func (s *Service) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Name, input.Email, domain.Role(input.Role))
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single user.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a shallow merge of the provided fields onto the stored
// user. The path id always wins over any id present in the patch.
func (s *Service) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := existing.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Email != nil {
		if err := existing.ChangeEmail(*input.Email); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Role != nil {
		if err := existing.ChangeRole(domain.Role(*input.Role)); err != nil {
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

// Delete removes a user unconditionally. Orders referencing the user are
// owned by another service and are never touched.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List returns all users in insertion order.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
