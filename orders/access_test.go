package orders

import (
	"testing"

	"greennest/models"
)

func TestCanView(t *testing.T) {
	order := models.Order{OrderID: "ord1", UserID: "u123"}

	if !CanView(order, "u123", false) {
		t.Error("owner must be able to view their order")
	}
	if !CanView(order, "admin1", true) {
		t.Error("admin must be able to view any order")
	}
	if CanView(order, "u456", false) {
		t.Error("a stranger must not see someone else's order")
	}
	if CanView(order, "", false) {
		t.Error("anonymous must not see any order")
	}
}
