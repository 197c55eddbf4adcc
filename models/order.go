package models

import "time"

// Order statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderItem is the snapshot of a catalog entry taken at purchase time.
// Later catalog edits never change it.
type OrderItem struct {
	Plant    string  `json:"plant" bson:"plant"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Image    string  `json:"image" bson:"image"`
}

type ShippingAddress struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Zip     string `json:"zip" bson:"zip"`
	Country string `json:"country" bson:"country"`
}

type Order struct {
	OrderID         string          `json:"orderid" bson:"orderid"`
	UserID          string          `json:"userid" bson:"userid"`
	Items           []OrderItem     `json:"items" bson:"items"`
	TotalAmount     float64         `json:"totalAmount" bson:"totalamount"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingaddress"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentmethod"`
	Status          string          `json:"status" bson:"status"`
	PaymentStatus   string          `json:"paymentStatus" bson:"paymentstatus"`
	IsPaid          bool            `json:"isPaid" bson:"ispaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" bson:"paidat,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"isdelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredat,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" bson:"created_at"`
}
