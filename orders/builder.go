package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"greennest/catalog"
	"greennest/models"
	"greennest/utils"
)

// Catalog is the slice of the plant store the order workflow needs. The
// storage-backed catalog.Store satisfies it; tests use an in-memory fake.
type Catalog interface {
	Resolve(ctx context.Context, ref string) (models.Plant, error)
	Reserve(ctx context.Context, plantID string, qty int) error
	Release(ctx context.Context, plantID string, qty int) error
}

type RequestedItem struct {
	Plant    string `json:"plant"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Items           []RequestedItem        `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// Builder turns a requested cart into an immutable order snapshot with
// server-side totals. Stock is only touched after every line has validated;
// a reservation that fails partway is compensated so no stock stays
// decremented for an order that was never created.
type Builder struct {
	Catalog Catalog
}

func NewBuilder(cat Catalog) *Builder {
	return &Builder{Catalog: cat}
}

func (b *Builder) Build(ctx context.Context, req CreateOrderRequest, userID string) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	// Pass one: resolve and validate everything, snapshot prices.
	var totalAmount float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, reqItem := range req.Items {
		if reqItem.Quantity <= 0 {
			return models.Order{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, reqItem.Plant)
		}

		plant, err := b.Catalog.Resolve(ctx, reqItem.Plant)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return models.Order{}, &PlantNotFoundError{Ref: reqItem.Plant}
			}
			return models.Order{}, err
		}

		if plant.Stock < reqItem.Quantity {
			return models.Order{}, &catalog.InsufficientStockError{Plant: plant.PlantID, Available: plant.Stock}
		}

		totalAmount += plant.Price * float64(reqItem.Quantity)
		items = append(items, models.OrderItem{
			Plant:    plant.PlantID,
			Name:     plant.Name,
			Price:    plant.Price,
			Quantity: reqItem.Quantity,
			Image:    plant.Image,
		})
	}

	// Pass two: reserve all. Each reservation is an atomic conditional
	// decrement, so a concurrent order can still win the last unit; if that
	// happens, release what this order already took.
	for i, item := range items {
		if err := b.Catalog.Reserve(ctx, item.Plant, item.Quantity); err != nil {
			b.ReleaseItems(ctx, items[:i])
			return models.Order{}, err
		}
	}

	return models.Order{
		OrderID:         utils.GenerateID(14),
		UserID:          userID,
		Items:           items,
		TotalAmount:     utils.RoundCents(totalAmount),
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderPending,
		PaymentStatus:   "pending",
		CreatedAt:       time.Now(),
	}, nil
}

// ReleaseItems returns reserved stock, best effort. A failed release is only
// logged: the order no longer exists, and the catalog can be reconciled.
func (b *Builder) ReleaseItems(ctx context.Context, items []models.OrderItem) {
	// The caller's context may already be dead; its timeout firing mid-reserve
	// is one of the ways we end up here. Compensation must still run.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	for _, item := range items {
		if err := b.Catalog.Release(ctx, item.Plant, item.Quantity); err != nil {
			log.Printf("Failed to release %d x %s: %v", item.Quantity, item.Plant, err)
		}
	}
}
