package models

import "time"

// CartItem is a pre-checkout line; prices here are advisory only, the order
// builder recomputes totals from the live catalog.
type CartItem struct {
	UserID   string    `json:"userId" bson:"userId"`
	Plant    string    `json:"plant" bson:"plant"`
	Name     string    `json:"name" bson:"name"`
	Price    float64   `json:"price" bson:"price"`
	Quantity int       `json:"quantity" bson:"quantity"`
	Image    string    `json:"image,omitempty" bson:"image,omitempty"`
	AddedAt  time.Time `json:"addedAt" bson:"addedAt"`
}
