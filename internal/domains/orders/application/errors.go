package application

import (
	"errors"
	"fmt"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrUserNotFound covers both a missing user and an unreachable user
	// service; the two are indistinguishable at this boundary.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound covers a missing product and an unreachable
	// product service alike.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock rejects a quantity above the advertised stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidUserID) ||
		errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
