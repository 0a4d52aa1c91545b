package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// CatalogCache caches the full catalog listing. Implementations are best
// effort: the service treats every cache error as non-fatal and falls back to
// the primary store.
type CatalogCache interface {
	// Get returns the cached listing and whether it was present.
	Get(ctx context.Context) ([]domain.Sweet, bool, error)
	Set(ctx context.Context, sweets []domain.Sweet) error
	// Invalidate drops the cached listing after any catalog write.
	Invalidate(ctx context.Context) error
}
