package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude] —
// the 2dsphere index depends on that axis order.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a latitude/longitude pair.
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Product represents a listing created by an admin.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Cost       float64            `bson:"cost" json:"cost"`
	Store      string             `bson:"store" json:"store"`
	Stock      string             `bson:"stock" json:"stock"`
	Src        string             `bson:"src" json:"src"` // image URL in object storage
	Category   string             `bson:"category" json:"category"`
	AdminEmail string             `bson:"adminEmail" json:"adminEmail"`
	AdminName  string             `bson:"adminName" json:"adminName"`
	City       string             `bson:"city" json:"city"`
	Unit       string             `bson:"unit" json:"unit"`
	Location   GeoPoint           `bson:"location" json:"location"`
}
