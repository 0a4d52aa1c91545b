package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweetshop-api/internal/api/metrics"
	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
)

// SweetService implements the inventory use cases over a SweetRepository,
// with a best-effort catalog cache in front of List. Cache failures are
// logged and never fail the request.
type SweetService struct {
	repo  ports.SweetRepository
	cache ports.CatalogCache
	log   zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, cache ports.CatalogCache, log zerolog.Logger) *SweetService {
	if cache == nil {
		cache = NopCatalogCache{}
	}
	return &SweetService{repo: repo, cache: cache, log: log}
}

var _ ports.SweetService = (*SweetService)(nil)

// Create persists a new sweet. Names are not unique; two sweets may share one.
func (s *SweetService) Create(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
	now := time.Now().UTC()
	sweet := &domain.Sweet{
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		Image:     input.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, sweet)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create sweet")
		return nil, err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(created.Category).Inc()
	s.invalidateCatalog(ctx)

	s.log.Info().
		Str("sweet_id", created.ID).
		Str("name", created.Name).
		Str("user_id", input.Actor.UserID).
		Msg("sweet created")

	return created, nil
}

// List returns the full catalog in store-native order, served from the cache
// when a snapshot is present.
func (s *SweetService) List(ctx context.Context) ([]domain.Sweet, error) {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
	} else if ok {
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	} else {
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	sweets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, sweets); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache catalog listing")
	}
	return sweets, nil
}

// Search filters the catalog. An empty filter behaves like List but always
// hits the store.
func (s *SweetService) Search(ctx context.Context, filter ports.SweetFilter) ([]domain.Sweet, error) {
	return s.repo.Search(ctx, filter)
}

// Update merges the provided fields into the record; absent fields are left
// untouched.
func (s *SweetService) Update(ctx context.Context, actor domain.Identity, id string, update ports.SweetUpdate) (*domain.Sweet, error) {
	updated, err := s.repo.UpdateFields(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)

	s.log.Info().
		Str("sweet_id", id).
		Str("user_id", actor.UserID).
		Msg("sweet updated")

	return updated, nil
}

// Delete permanently removes the record.
func (s *SweetService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)

	s.log.Info().
		Str("sweet_id", id).
		Str("user_id", actor.UserID).
		Msg("sweet deleted")

	return nil
}

// Purchase decrements quantity by exactly one. The decrement is a single
// conditional update at the store (quantity > 0), so two concurrent
// purchases of the last unit cannot both succeed.
func (s *SweetService) Purchase(ctx context.Context, actor domain.Identity, id string) (*domain.Sweet, error) {
	sweet, err := s.repo.DecrementQuantity(ctx, id)
	if err != nil {
		if err == domain.ErrOutOfStock {
			metrics.OutOfStockTotal.Inc()
		}
		return nil, err
	}

	metrics.PurchasesTotal.WithLabelValues(sweet.Category).Inc()
	s.invalidateCatalog(ctx)

	s.log.Info().
		Str("sweet_id", sweet.ID).
		Str("user_id", actor.UserID).
		Int("remaining", sweet.Quantity).
		Msg("sweet purchased")

	return sweet, nil
}

// Restock adds a positive amount to quantity. The upper bound is unbounded.
func (s *SweetService) Restock(ctx context.Context, actor domain.Identity, id string, amount int) (*domain.Sweet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	sweet, err := s.repo.IncrementQuantity(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	metrics.RestocksTotal.WithLabelValues(sweet.Category).Inc()
	s.invalidateCatalog(ctx)

	s.log.Info().
		Str("sweet_id", sweet.ID).
		Str("user_id", actor.UserID).
		Int("amount", amount).
		Int("quantity", sweet.Quantity).
		Msg("sweet restocked")

	return sweet, nil
}

func (s *SweetService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}

// NopCatalogCache is the cache used when Redis is not configured: every read
// misses and writes are discarded.
type NopCatalogCache struct{}

func (NopCatalogCache) Get(context.Context) ([]domain.Sweet, bool, error) { return nil, false, nil }
func (NopCatalogCache) Set(context.Context, []domain.Sweet) error         { return nil }
func (NopCatalogCache) Invalidate(context.Context) error                  { return nil }
