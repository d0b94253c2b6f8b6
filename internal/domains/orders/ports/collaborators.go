package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// UserDirectory consults the user service for existence checks.
type UserDirectory interface {
	// Exists reports whether the user is known. Callers treat transport
	// failures and negative answers identically.
	Exists(ctx context.Context, userID int64) (bool, error)
}

// ProductInfo is the slice of a catalog entry the order workflow needs.
type ProductInfo struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int32           `json:"stock"`
}

// ProductCatalog consults the product service for pricing and stock.
type ProductCatalog interface {
	GetProduct(ctx context.Context, productID int64) (*ProductInfo, error)
}

// Notification is a fire-and-forget message for a user.
type Notification struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Notifier delivers notifications best-effort. A delivery failure never
// fails the surrounding operation.
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}
