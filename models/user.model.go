package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account, either a buyer ("user") or a
// seller ("admin").
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"password,omitempty"`
	City      string             `bson:"city" json:"city"`
	Role      string             `bson:"role" json:"role"` // "user" or "admin"
	AccountID string             `bson:"accountId" json:"accountId"`
}
