package application

import (
	"errors"
	"fmt"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid notification input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyMessage) ||
		errors.Is(err, domain.ErrInvalidUserID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
