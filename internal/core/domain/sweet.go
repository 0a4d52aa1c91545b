package domain

import (
	"errors"
	"time"
)

var ErrSweetNotFound = errors.New("sweet not found")
var ErrOutOfStock = errors.New("out of stock")
var ErrInvalidAmount = errors.New("invalid restock amount")

// Sweet is an inventory item. Quantity is a non-negative counter with exactly
// two external transitions: -1 via purchase (guarded by quantity > 0) and
// +amount via restock (guarded by amount > 0). Update may overwrite it freely.
type Sweet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InStock reports whether at least one unit can be purchased.
func (s *Sweet) InStock() bool {
	return s.Quantity > 0
}
