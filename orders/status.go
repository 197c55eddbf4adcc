package orders

import "greennest/models"

// statusRank orders the delivery pipeline; cancelled sits outside it.
var statusRank = map[string]int{
	models.OrderPending:    0,
	models.OrderProcessing: 1,
	models.OrderShipped:    2,
	models.OrderDelivered:  3,
}

func ValidStatus(status string) bool {
	if status == models.OrderCancelled {
		return true
	}
	_, ok := statusRank[status]
	return ok
}

func terminal(status string) bool {
	return status == models.OrderDelivered || status == models.OrderCancelled
}

// CanTransition allows strictly forward moves along
// pending -> processing -> shipped -> delivered, and cancellation from any
// non-terminal state. Delivered and cancelled orders never change again.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if terminal(from) {
		return false
	}
	if to == models.OrderCancelled {
		return true
	}
	return statusRank[to] > statusRank[from]
}
