package orders

import (
	"testing"

	"greennest/models"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		models.OrderPending, models.OrderProcessing, models.OrderShipped,
		models.OrderDelivered, models.OrderCancelled,
	} {
		if !ValidStatus(s) {
			t.Errorf("%s should be a valid status", s)
		}
	}
	for _, s := range []string{"", "Pending", "returned", "paid"} {
		if ValidStatus(s) {
			t.Errorf("%s should not be a valid status", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.OrderPending, models.OrderProcessing, true},
		{models.OrderPending, models.OrderShipped, true},
		{models.OrderProcessing, models.OrderShipped, true},
		{models.OrderShipped, models.OrderDelivered, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderProcessing, models.OrderCancelled, true},
		{models.OrderShipped, models.OrderCancelled, true},

		// no moving backwards
		{models.OrderProcessing, models.OrderPending, false},
		{models.OrderShipped, models.OrderProcessing, false},
		{models.OrderDelivered, models.OrderShipped, false},

		// terminal states stay terminal
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderPending, false},
		{models.OrderCancelled, models.OrderProcessing, false},

		// no self-transitions
		{models.OrderPending, models.OrderPending, false},
		{models.OrderDelivered, models.OrderDelivered, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
