package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression. Transitions are unrestricted: any
// status may follow any other, including backward jumps.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidUserID    = errors.New("user id must be greater than zero")
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidStatus    = errors.New("order status is invalid")
)

// Order models a purchase. UserID and ProductID reference entities owned by
// other services; they are validated once at creation time and never again.
// TotalPrice is computed at creation and never recomputed.
type Order struct {
	ID         int64
	UserID     int64
	ProductID  int64
	Quantity   int32
	TotalPrice decimal.Decimal
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder builds a pending order, pricing it from the unit price at the
// moment of creation.
func NewOrder(userID, productID int64, quantity int32, unitPrice decimal.Decimal, now time.Time) (*Order, error) {
	order := &Order{
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt32(quantity)),
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// ChangeStatus overwrites the status unconditionally and bumps UpdatedAt.
// There is no transition graph.
func (o *Order) ChangeStatus(status Status, now time.Time) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	o.UpdatedAt = now
	return nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.UserID <= 0 {
		return ErrInvalidUserID
	}
	if o.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !IsValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsValidStatus reports whether status belongs to the fixed enum.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
