package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// CreateSweetInput carries the fields of a new sweet plus the acting identity.
type CreateSweetInput struct {
	Actor    domain.Identity
	Name     string
	Category string
	Price    float64
	Quantity int
	Image    string
}

// SweetService defines the inventory use cases. Access gating happens at the
// transport layer; the verified identity is passed in explicitly where the
// service logs or attributes the action.
type SweetService interface {
	Create(ctx context.Context, input CreateSweetInput) (*domain.Sweet, error)
	List(ctx context.Context) ([]domain.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]domain.Sweet, error)
	Update(ctx context.Context, actor domain.Identity, id string, update SweetUpdate) (*domain.Sweet, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
	Purchase(ctx context.Context, actor domain.Identity, id string) (*domain.Sweet, error)
	Restock(ctx context.Context, actor domain.Identity, id string, amount int) (*domain.Sweet, error)
}
