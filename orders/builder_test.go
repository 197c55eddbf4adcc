package orders

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"greennest/catalog"
	"greennest/models"
)

// fakeCatalog is an in-memory stand-in for the plant store. Reserve does the
// same compare-and-decrement the real store does, just under a mutex, and
// every method honors context cancellation the way a real driver call would.
type fakeCatalog struct {
	mu              sync.Mutex
	plants          map[string]models.Plant
	failReserve     map[string]bool
	cancelOnReserve context.CancelFunc
}

func newFakeCatalog(plants ...models.Plant) *fakeCatalog {
	f := &fakeCatalog{
		plants:      make(map[string]models.Plant),
		failReserve: make(map[string]bool),
	}
	for _, p := range plants {
		f.plants[p.PlantID] = p
	}
	return f
}

func (f *fakeCatalog) Resolve(ctx context.Context, ref string) (models.Plant, error) {
	if err := ctx.Err(); err != nil {
		return models.Plant{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plants[ref]
	if !ok {
		return models.Plant{}, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) Reserve(ctx context.Context, plantID string, qty int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReserve[plantID] {
		return errors.New("reserve failed")
	}
	p, ok := f.plants[plantID]
	if !ok {
		return catalog.ErrNotFound
	}
	if p.Stock < qty {
		return &catalog.InsufficientStockError{Plant: plantID, Available: p.Stock}
	}
	p.Stock -= qty
	f.plants[plantID] = p
	if f.cancelOnReserve != nil {
		f.cancelOnReserve()
		f.cancelOnReserve = nil
	}
	return nil
}

func (f *fakeCatalog) Release(ctx context.Context, plantID string, qty int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.plants[plantID]
	p.Stock += qty
	f.plants[plantID] = p
	return nil
}

func (f *fakeCatalog) stock(plantID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plants[plantID].Stock
}

func snakePlant() models.Plant {
	return models.Plant{
		PlantID: "snake-plant",
		Name:    "Snake Plant",
		Price:   24.99,
		Stock:   15,
		Image:   "/images/snake-plant.jpg",
	}
}

func pothos() models.Plant {
	return models.Plant{
		PlantID: "pothos",
		Name:    "Golden Pothos",
		Price:   19.99,
		Stock:   20,
		Image:   "/images/pothos.jpg",
	}
}

func TestBuildComputesTotalAndSnapshot(t *testing.T) {
	cat := newFakeCatalog(snakePlant())
	builder := NewBuilder(cat)

	order, err := builder.Build(context.Background(), CreateOrderRequest{
		Items:         []RequestedItem{{Plant: "snake-plant", Quantity: 3}},
		PaymentMethod: "card",
	}, "u123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(order.TotalAmount-74.97) > 1e-9 {
		t.Errorf("expected total 74.97, got %v", order.TotalAmount)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 snapshot item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.Name != "Snake Plant" || item.Price != 24.99 || item.Quantity != 3 {
		t.Errorf("bad snapshot item: %+v", item)
	}
	if item.Plant != "snake-plant" || item.Image != "/images/snake-plant.jpg" {
		t.Errorf("bad snapshot reference: %+v", item)
	}
	if order.Status != models.OrderPending || order.IsPaid || order.IsDelivered {
		t.Errorf("new order should be pending/unpaid/undelivered: %+v", order)
	}
	if order.UserID != "u123" || order.OrderID == "" {
		t.Errorf("bad order identity: %+v", order)
	}
	if got := cat.stock("snake-plant"); got != 12 {
		t.Errorf("expected stock 12 after order, got %d", got)
	}
}

func TestBuildMultipleItems(t *testing.T) {
	cat := newFakeCatalog(snakePlant(), pothos())
	builder := NewBuilder(cat)

	order, err := builder.Build(context.Background(), CreateOrderRequest{
		Items: []RequestedItem{
			{Plant: "snake-plant", Quantity: 2},
			{Plant: "pothos", Quantity: 1},
		},
	}, "u123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 24.99*2 + 19.99
	if math.Abs(order.TotalAmount-want) > 1e-9 {
		t.Errorf("expected total %v, got %v", want, order.TotalAmount)
	}
	if cat.stock("snake-plant") != 13 || cat.stock("pothos") != 19 {
		t.Errorf("stock not decremented per item: snake=%d pothos=%d",
			cat.stock("snake-plant"), cat.stock("pothos"))
	}
}

func TestBuildEmptyOrder(t *testing.T) {
	builder := NewBuilder(newFakeCatalog())

	_, err := builder.Build(context.Background(), CreateOrderRequest{}, "u123")
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestBuildInvalidQuantity(t *testing.T) {
	cat := newFakeCatalog(snakePlant())
	builder := NewBuilder(cat)

	_, err := builder.Build(context.Background(), CreateOrderRequest{
		Items: []RequestedItem{{Plant: "snake-plant", Quantity: 0}},
	}, "u123")
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if cat.stock("snake-plant") != 15 {
		t.Errorf("stock must be untouched, got %d", cat.stock("snake-plant"))
	}
}

func TestBuildUnknownPlant(t *testing.T) {
	cat := newFakeCatalog(snakePlant())
	builder := NewBuilder(cat)

	_, err := builder.Build(context.Background(), CreateOrderRequest{
		Items: []RequestedItem{
			{Plant: "snake-plant", Quantity: 1},
			{Plant: "ghost-plant", Quantity: 1},
		},
	}, "u123")

	var notFound *PlantNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PlantNotFoundError, got %v", err)
	}
	if notFound.Ref != "ghost-plant" {
		t.Errorf("expected ref ghost-plant, got %s", notFound.Ref)
	}
	if cat.stock("snake-plant") != 15 {
		t.Errorf("no stock may be reserved on failure, got %d", cat.stock("snake-plant"))
	}
}

func TestBuildInsufficientStock(t *testing.T) {
	cat := newFakeCatalog(snakePlant())
	builder := NewBuilder(cat)

	_, err := builder.Build(context.Background(), CreateOrderRequest{
		Items: []RequestedItem{{Plant: "snake-plant", Quantity: 20}},
	}, "u123")

	var stockErr *catalog.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 15 {
		t.Errorf("expected available 15, got %d", stockErr.Available)
	}
	if cat.stock("snake-plant") != 15 {
		t.Errorf("stock must be untouched, got %d", cat.stock("snake-plant"))
	}
}

func TestBuildRollsBackOnReserveFailure(t *testing.T) {
	cat := newFakeCatalog(snakePlant(), pothos())
	cat.failReserve["pothos"] = true
	builder := NewBuilder(cat)

	_, err := builder.Build(context.Background(), CreateOrderRequest{
		Items: []RequestedItem{
			{Plant: "snake-plant", Quantity: 5},
			{Plant: "pothos", Quantity: 1},
		},
	}, "u123")
	if err == nil {
		t.Fatal("expected error when a reservation fails")
	}

	if got := cat.stock("snake-plant"); got != 15 {
		t.Errorf("earlier reservation must be released, stock=%d", got)
	}
	if got := cat.stock("pothos"); got != 20 {
		t.Errorf("failed reservation must not change stock, stock=%d", got)
	}
}

func TestBuildReleasesWhenRequestContextDies(t *testing.T) {
	cat := newFakeCatalog(snakePlant(), pothos())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cat.cancelOnReserve = cancel // request dies right after the first reservation commits

	builder := NewBuilder(cat)
	_, err := builder.Build(ctx, CreateOrderRequest{
		Items: []RequestedItem{
			{Plant: "snake-plant", Quantity: 3},
			{Plant: "pothos", Quantity: 1},
		},
	}, "u123")
	if err == nil {
		t.Fatal("expected error once the request context is canceled")
	}

	if got := cat.stock("snake-plant"); got != 15 {
		t.Errorf("committed reservation must be released even on a dead request context, stock=%d", got)
	}
	if got := cat.stock("pothos"); got != 20 {
		t.Errorf("unreserved stock must be untouched, stock=%d", got)
	}
}

func TestConcurrentOrdersLastUnit(t *testing.T) {
	plant := snakePlant()
	plant.Stock = 1
	cat := newFakeCatalog(plant)
	builder := NewBuilder(cat)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := builder.Build(context.Background(), CreateOrderRequest{
				Items: []RequestedItem{{Plant: "snake-plant", Quantity: 1}},
			}, "u123")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, stockFailures int
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		var stockErr *catalog.InsufficientStockError
		if errors.As(err, &stockErr) {
			stockFailures++
		} else {
			t.Errorf("unexpected error kind: %v", err)
		}
	}

	if wins != 1 || stockFailures != 1 {
		t.Errorf("expected exactly one winner and one stock failure, got %d/%d", wins, stockFailures)
	}
	if got := cat.stock("snake-plant"); got != 0 {
		t.Errorf("expected stock 0, got %d", got)
	}
}
