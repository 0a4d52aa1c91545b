package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
)

type stubSweetRepo struct {
	sweets map[string]*domain.Sweet
	order  []string
	nextID int
}

func newStubSweetRepo() *stubSweetRepo {
	return &stubSweetRepo{sweets: make(map[string]*domain.Sweet)}
}

func cloneSweet(s *domain.Sweet) *domain.Sweet {
	c := *s
	return &c
}

func (r *stubSweetRepo) Insert(_ context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	r.nextID++
	created := cloneSweet(s)
	created.ID = fmt.Sprintf("sweet_%d", r.nextID)
	r.sweets[created.ID] = created
	r.order = append(r.order, created.ID)
	return cloneSweet(created), nil
}

func (r *stubSweetRepo) FindByID(_ context.Context, id string) (*domain.Sweet, error) {
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) FindAll(_ context.Context) ([]domain.Sweet, error) {
	out := make([]domain.Sweet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.sweets[id])
	}
	return out, nil
}

func (r *stubSweetRepo) Search(_ context.Context, filter ports.SweetFilter) ([]domain.Sweet, error) {
	out := []domain.Sweet{}
	for _, id := range r.order {
		s := r.sweets[id]
		if filter.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && s.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && s.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSweetRepo) UpdateFields(_ context.Context, id string, update ports.SweetUpdate) (*domain.Sweet, error) {
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if update.Name != nil {
		s.Name = *update.Name
	}
	if update.Category != nil {
		s.Category = *update.Category
	}
	if update.Price != nil {
		s.Price = *update.Price
	}
	if update.Quantity != nil {
		s.Quantity = *update.Quantity
	}
	if update.Image != nil {
		s.Image = *update.Image
	}
	s.UpdatedAt = time.Now().UTC()
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sweets[id]; !ok {
		return domain.ErrSweetNotFound
	}
	delete(r.sweets, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubSweetRepo) DecrementQuantity(_ context.Context, id string) (*domain.Sweet, error) {
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if s.Quantity <= 0 {
		return nil, domain.ErrOutOfStock
	}
	s.Quantity--
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) IncrementQuantity(_ context.Context, id string, amount int) (*domain.Sweet, error) {
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	s.Quantity += amount
	return cloneSweet(s), nil
}

// recordingCache counts calls so tests can assert the cache interplay.
type recordingCache struct {
	snapshot    []domain.Sweet
	hasSnapshot bool
	getErr      error

	sets        int
	invalidates int
}

func (c *recordingCache) Get(context.Context) ([]domain.Sweet, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.snapshot, c.hasSnapshot, nil
}

func (c *recordingCache) Set(_ context.Context, sweets []domain.Sweet) error {
	c.sets++
	c.snapshot = sweets
	c.hasSnapshot = true
	return nil
}

func (c *recordingCache) Invalidate(context.Context) error {
	c.invalidates++
	c.hasSnapshot = false
	return nil
}

func newSweetSvc() (*SweetService, *stubSweetRepo, *recordingCache) {
	repo := newStubSweetRepo()
	cache := &recordingCache{}
	return NewSweetService(repo, cache, zerolog.Nop()), repo, cache
}

func seedSweet(t *testing.T, svc *SweetService, name, category string, price float64, quantity int) *domain.Sweet {
	t.Helper()
	sweet, err := svc.Create(context.Background(), ports.CreateSweetInput{
		Actor:    domain.Identity{UserID: "user_1", Role: domain.RoleAdmin},
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return sweet
}

func TestSweetService_Create(t *testing.T) {
	svc, repo, cache := newSweetSvc()

	sweet := seedSweet(t, svc, "Gulab Jamun", "Milk-Based", 12.5, 10)

	if sweet.ID == "" {
		t.Fatal("expected assigned id")
	}
	if sweet.CreatedAt.IsZero() || sweet.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if _, err := repo.FindByID(context.Background(), sweet.ID); err != nil {
		t.Errorf("sweet not persisted: %v", err)
	}
	if cache.invalidates != 1 {
		t.Errorf("invalidates = %d, want 1", cache.invalidates)
	}
}

func TestSweetService_List_CacheMissThenHit(t *testing.T) {
	svc, _, cache := newSweetSvc()
	seedSweet(t, svc, "Rasgulla", "Milk-Based", 10, 5)

	first, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d sweets, want 1", len(first))
	}
	if cache.sets != 1 {
		t.Errorf("sets = %d, want 1 after miss", cache.sets)
	}

	// Second call must be served from the snapshot.
	cache.snapshot = []domain.Sweet{{ID: "cached", Name: "Cached"}}
	second, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(second) != 1 || second[0].ID != "cached" {
		t.Errorf("expected cached snapshot, got %+v", second)
	}
	if cache.sets != 1 {
		t.Errorf("sets = %d, want no second write on hit", cache.sets)
	}
}

func TestSweetService_List_CacheErrorFallsBack(t *testing.T) {
	svc, _, cache := newSweetSvc()
	seedSweet(t, svc, "Jalebi", "Fried", 8, 20)
	cache.getErr = errors.New("connection refused")

	sweets, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sweets) != 1 || sweets[0].Name != "Jalebi" {
		t.Errorf("expected store fallback, got %+v", sweets)
	}
}

func TestSweetService_Search(t *testing.T) {
	svc, _, _ := newSweetSvc()
	seedSweet(t, svc, "Gulab Jamun", "Milk-Based", 12.5, 10)
	seedSweet(t, svc, "Rasgulla", "Milk-Based", 10, 5)
	seedSweet(t, svc, "Jalebi", "Fried", 20, 20)

	ctx := context.Background()

	byName, err := svc.Search(ctx, ports.SweetFilter{Name: "gulab"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Gulab Jamun" {
		t.Errorf("name filter: got %+v", byName)
	}

	byCategory, err := svc.Search(ctx, ports.SweetFilter{Category: "Milk-Based"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byCategory) != 2 {
		t.Errorf("category filter: got %d sweets, want 2", len(byCategory))
	}

	price := 20.0
	byPrice, err := svc.Search(ctx, ports.SweetFilter{MinPrice: &price, MaxPrice: &price})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byPrice) != 1 || byPrice[0].Name != "Jalebi" {
		t.Errorf("price filter: got %+v", byPrice)
	}

	all, err := svc.Search(ctx, ports.SweetFilter{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("empty filter: got %d sweets, want 3", len(all))
	}
}

func TestSweetService_Update_PartialMerge(t *testing.T) {
	svc, _, cache := newSweetSvc()
	sweet := seedSweet(t, svc, "Barfi", "Milk-Based", 15, 8)
	invalidatesBefore := cache.invalidates

	newPrice := 18.0
	updated, err := svc.Update(context.Background(),
		domain.Identity{UserID: "user_1", Role: domain.RoleAdmin},
		sweet.ID, ports.SweetUpdate{Price: &newPrice})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Price != 18 {
		t.Errorf("Price = %v, want 18", updated.Price)
	}
	if updated.Name != "Barfi" || updated.Quantity != 8 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if cache.invalidates != invalidatesBefore+1 {
		t.Error("expected catalog invalidation on update")
	}
}

func TestSweetService_Update_NotFound(t *testing.T) {
	svc, _, _ := newSweetSvc()

	name := "Ghost"
	_, err := svc.Update(context.Background(),
		domain.Identity{UserID: "user_1", Role: domain.RoleAdmin},
		"missing", ports.SweetUpdate{Name: &name})
	if !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("err = %v, want ErrSweetNotFound", err)
	}
}

func TestSweetService_Delete(t *testing.T) {
	svc, repo, cache := newSweetSvc()
	sweet := seedSweet(t, svc, "Ladoo", "Festival", 5, 30)
	invalidatesBefore := cache.invalidates

	admin := domain.Identity{UserID: "user_1", Role: domain.RoleAdmin}
	if err := svc.Delete(context.Background(), admin, sweet.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), sweet.ID); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Error("sweet still present after delete")
	}
	if cache.invalidates != invalidatesBefore+1 {
		t.Error("expected catalog invalidation on delete")
	}

	if err := svc.Delete(context.Background(), admin, sweet.ID); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("second delete err = %v, want ErrSweetNotFound", err)
	}
}

func TestSweetService_Purchase(t *testing.T) {
	svc, repo, _ := newSweetSvc()
	sweet := seedSweet(t, svc, "Kaju Katli", "Nut-Based", 25, 10)
	buyer := domain.Identity{UserID: "user_2", Role: domain.RoleUser}

	bought, err := svc.Purchase(context.Background(), buyer, sweet.ID)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if bought.Quantity != 9 {
		t.Errorf("Quantity = %d, want 9", bought.Quantity)
	}

	stored, _ := repo.FindByID(context.Background(), sweet.ID)
	if stored.Quantity != 9 {
		t.Errorf("stored Quantity = %d, want 9", stored.Quantity)
	}
}

func TestSweetService_Purchase_DrainsToOutOfStock(t *testing.T) {
	svc, repo, _ := newSweetSvc()
	sweet := seedSweet(t, svc, "Peda", "Milk-Based", 6, 3)
	buyer := domain.Identity{UserID: "user_2", Role: domain.RoleUser}

	for i := 0; i < 3; i++ {
		if _, err := svc.Purchase(context.Background(), buyer, sweet.ID); err != nil {
			t.Fatalf("purchase %d: %v", i+1, err)
		}
	}

	_, err := svc.Purchase(context.Background(), buyer, sweet.ID)
	if !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}

	stored, _ := repo.FindByID(context.Background(), sweet.ID)
	if stored.Quantity != 0 {
		t.Errorf("stored Quantity = %d, want 0", stored.Quantity)
	}
}

func TestSweetService_Purchase_NotFound(t *testing.T) {
	svc, _, _ := newSweetSvc()

	_, err := svc.Purchase(context.Background(),
		domain.Identity{UserID: "user_2", Role: domain.RoleUser}, "missing")
	if !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("err = %v, want ErrSweetNotFound", err)
	}
}

func TestSweetService_Restock(t *testing.T) {
	svc, _, cache := newSweetSvc()
	sweet := seedSweet(t, svc, "Soan Papdi", "Flaky", 9, 0)
	invalidatesBefore := cache.invalidates
	admin := domain.Identity{UserID: "user_1", Role: domain.RoleAdmin}

	restocked, err := svc.Restock(context.Background(), admin, sweet.ID, 5)
	if err != nil {
		t.Fatalf("Restock: %v", err)
	}
	if restocked.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", restocked.Quantity)
	}
	if cache.invalidates != invalidatesBefore+1 {
		t.Error("expected catalog invalidation on restock")
	}
}

func TestSweetService_Restock_InvalidAmount(t *testing.T) {
	svc, repo, _ := newSweetSvc()
	sweet := seedSweet(t, svc, "Halwa", "Festival", 7, 4)
	admin := domain.Identity{UserID: "user_1", Role: domain.RoleAdmin}

	for _, amount := range []int{0, -3} {
		_, err := svc.Restock(context.Background(), admin, sweet.ID, amount)
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("amount %d: err = %v, want ErrInvalidAmount", amount, err)
		}
	}

	stored, _ := repo.FindByID(context.Background(), sweet.ID)
	if stored.Quantity != 4 {
		t.Errorf("stored Quantity = %d, want unchanged 4", stored.Quantity)
	}
}

func TestSweetService_Restock_NotFound(t *testing.T) {
	svc, _, _ := newSweetSvc()

	_, err := svc.Restock(context.Background(),
		domain.Identity{UserID: "user_1", Role: domain.RoleAdmin}, "missing", 5)
	if !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("err = %v, want ErrSweetNotFound", err)
	}
}
