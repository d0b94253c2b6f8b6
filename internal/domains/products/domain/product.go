package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrEmptyCategory = errors.New("category is required")
	ErrInvalidPrice  = errors.New("price must be zero or greater")
	ErrInvalidStock  = errors.New("stock must be zero or greater")
)

// Product is a catalog entry. Stock is advisory only: order placement reads
// it but nothing ever reserves or decrements it.
type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Category string
	Stock    int32
}

// NewProduct builds a product enforcing required fields.
func NewProduct(name string, price decimal.Decimal, category string, stock int32) (*Product, error) {
	product := &Product{}
	if err := product.Rename(name); err != nil {
		return nil, err
	}
	if err := product.Reprice(price); err != nil {
		return nil, err
	}
	if err := product.Recategorize(category); err != nil {
		return nil, err
	}
	if err := product.SetStock(stock); err != nil {
		return nil, err
	}
	return product, nil
}

// Rename trims and validates the product name.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice validates and sets the unit price.
func (p *Product) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	p.Price = price
	return nil
}

// Recategorize trims and validates the category.
func (p *Product) Recategorize(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}
	p.Category = category
	return nil
}

// SetStock replaces the stock level.
func (p *Product) SetStock(stock int32) error {
	if stock < 0 {
		return ErrInvalidStock
	}
	p.Stock = stock
	return nil
}

// AdjustStock applies a signed delta, clamping the result at zero.
func (p *Product) AdjustStock(delta int32) {
	stock := p.Stock + delta
	if stock < 0 {
		stock = 0
	}
	p.Stock = stock
}

// InCategory reports whether the product belongs to the category,
// case-insensitively.
func (p *Product) InCategory(category string) bool {
	return strings.EqualFold(p.Category, strings.TrimSpace(category))
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	if err := p.Rename(p.Name); err != nil {
		return err
	}
	if err := p.Reprice(p.Price); err != nil {
		return err
	}
	if err := p.Recategorize(p.Category); err != nil {
		return err
	}
	return p.SetStock(p.Stock)
}
