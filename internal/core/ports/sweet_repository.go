package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// SweetFilter carries the optional search criteria. Nil price bounds impose
// no constraint; an entirely empty filter matches everything.
type SweetFilter struct {
	Name     string   // case-insensitive substring match
	Category string   // exact match
	MinPrice *float64 // inclusive lower bound
	MaxPrice *float64 // inclusive upper bound
}

// SweetUpdate holds the partial fields of an update. Nil fields are left
// untouched on the stored record.
type SweetUpdate struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
	Image    *string
}

// IsEmpty reports whether no field is set.
func (u SweetUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Price == nil &&
		u.Quantity == nil && u.Image == nil
}

// SweetRepository defines persistence operations for sweets. The two stock
// mutations are single atomic conditional updates so quantity can never be
// driven below zero by concurrent purchases.
type SweetRepository interface {
	Insert(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	FindAll(ctx context.Context) ([]domain.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]domain.Sweet, error)
	// UpdateFields merges the non-nil fields into the record and returns the
	// post-update document. Returns domain.ErrSweetNotFound when id is absent.
	UpdateFields(ctx context.Context, id string, update SweetUpdate) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	// DecrementQuantity atomically decrements quantity by one, guarded by
	// quantity > 0. Returns domain.ErrOutOfStock when the record exists but
	// has no stock, domain.ErrSweetNotFound when it does not exist.
	DecrementQuantity(ctx context.Context, id string) (*domain.Sweet, error)
	// IncrementQuantity atomically adds amount to quantity.
	IncrementQuantity(ctx context.Context, id string, amount int) (*domain.Sweet, error)
}
