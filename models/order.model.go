package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. An order starts as pending, becomes confirmed once
// the ordered product has been resolved, and failed if it never resolves.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderFailed    = "failed"
)

// OrderItem is the snapshot of the product taken at order time. Historical
// orders keep this copy even if the product is later deleted.
type OrderItem struct {
	ProductID    string  `bson:"productId" json:"productId"`
	Name         string  `bson:"name" json:"name"`
	PriceAtOrder float64 `bson:"priceAtOrder" json:"priceAtOrder"`
}

// Order represents a placed order.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Email     string             `bson:"email" json:"email"`
	Address   string             `bson:"address" json:"address"`
	Item      OrderItem          `bson:"item" json:"item"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
