package orders

import (
	"testing"
	"time"

	"greennest/models"
)

func TestStatusUpdateDocument(t *testing.T) {
	now := time.Now()

	set := statusUpdate(models.OrderShipped, now)
	if set["status"] != models.OrderShipped {
		t.Errorf("expected status shipped, got %v", set["status"])
	}
	if _, ok := set["isdelivered"]; ok {
		t.Error("non-delivered status must not touch the delivery flag")
	}
	if _, ok := set["deliveredat"]; ok {
		t.Error("non-delivered status must not stamp a delivery time")
	}

	set = statusUpdate(models.OrderDelivered, now)
	if set["status"] != models.OrderDelivered {
		t.Errorf("expected status delivered, got %v", set["status"])
	}
	if set["isdelivered"] != true {
		t.Error("delivered must set isdelivered")
	}
	if ts, ok := set["deliveredat"].(time.Time); !ok || !ts.Equal(now) {
		t.Errorf("delivered must stamp the delivery time, got %v", set["deliveredat"])
	}
}

func TestPaymentUpdateDocument(t *testing.T) {
	now := time.Now()

	set := paymentUpdate("refunded", now)
	if set["paymentstatus"] != "refunded" {
		t.Errorf("expected paymentstatus refunded, got %v", set["paymentstatus"])
	}
	if _, ok := set["ispaid"]; ok {
		t.Error("non-paid status must not touch the paid flag")
	}

	set = paymentUpdate("paid", now)
	if set["paymentstatus"] != "paid" {
		t.Errorf("expected paymentstatus paid, got %v", set["paymentstatus"])
	}
	if set["ispaid"] != true {
		t.Error("paid must set ispaid")
	}
	if ts, ok := set["paidat"].(time.Time); !ok || !ts.Equal(now) {
		t.Errorf("paid must stamp the payment time, got %v", set["paidat"])
	}
}
