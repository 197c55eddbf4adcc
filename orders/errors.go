package orders

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyOrder        = errors.New("no order items")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrNotFound          = errors.New("order not found")
	ErrForbidden         = errors.New("not authorized")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("illegal status transition")
)

// PlantNotFoundError identifies which requested reference failed to resolve.
type PlantNotFoundError struct {
	Ref string
}

func (e *PlantNotFoundError) Error() string {
	return fmt.Sprintf("plant not found: %s", e.Ref)
}
