package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-marketplace/models"
	"go-marketplace/storage"
	"go-marketplace/utils"
)

const maxImageUploadBytes = 10 << 20

// Multipart fields a listing must carry besides the image itself.
var requiredProductFields = []string{
	"name", "cost", "store", "stock", "category", "adminEmail", "adminName", "city", "unit",
}

// ProductController handles product listing and discovery.
type ProductController struct {
	Collection *mongo.Collection
	Images     *storage.ImageStore
	Logger     *logrus.Logger
}

// NewProductController creates a ProductController over the products
// collection.
func NewProductController(db *mongo.Database, images *storage.ImageStore, logger *logrus.Logger) *ProductController {
	return &ProductController{
		Collection: db.Collection("products"),
		Images:     images,
		Logger:     logger,
	}
}

// parseCoord parses an optional coordinate form value; absence means 0.
func parseCoord(value string) (float64, bool) {
	if value == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// AddProduct creates a listing from a multipart form, storing the image in
// object storage and the geolocation as a GeoJSON point.
func (pc *ProductController) AddProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	for _, field := range requiredProductFields {
		if r.FormValue(field) == "" {
			writeFailure(w, http.StatusBadRequest, "Missing required field: "+field)
			return
		}
	}

	cost, err := strconv.ParseFloat(r.FormValue("cost"), 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid cost")
		return
	}

	lat, ok := parseCoord(r.FormValue("lat"))
	if !ok {
		writeFailure(w, http.StatusBadRequest, "Invalid lat")
		return
	}
	lng, ok := parseCoord(r.FormValue("lng"))
	if !ok {
		writeFailure(w, http.StatusBadRequest, "Invalid lng")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Image upload failed")
		return
	}
	defer file.Close()

	if !storage.AllowedImageExt(header.Filename) {
		writeFailure(w, http.StatusBadRequest, "Unsupported image format")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	src, err := pc.Images.UploadImage(ctx, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		pc.Logger.WithField("error", err.Error()).Error("image upload failed")
		writeFailure(w, http.StatusInternalServerError, "Failed to add product")
		return
	}

	product := models.Product{
		Name:       r.FormValue("name"),
		Cost:       cost,
		Store:      r.FormValue("store"),
		Stock:      r.FormValue("stock"),
		Src:        src,
		Category:   r.FormValue("category"),
		AdminEmail: r.FormValue("adminEmail"),
		AdminName:  r.FormValue("adminName"),
		City:       r.FormValue("city"),
		Unit:       r.FormValue("unit"),
		Location:   models.NewGeoPoint(lat, lng),
	}

	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Failed to add product")
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product added successfully",
		"product": product,
	})
}

// cityFilter builds the product filter for a discovery request. A non-empty
// "cities" parameter always filters by set membership — even when every
// token is blank, which matches nothing — so a malformed list never leaks
// the full catalog. With neither parameter the filter is empty and the full
// set is returned.
func cityFilter(city, cities string) bson.M {
	filter := bson.M{}
	if cities != "" {
		filter["city"] = bson.M{"$in": utils.ParseCityList(cities)}
	} else if city != "" {
		filter["city"] = city
	}
	return filter
}

// GetProducts returns products filtered by city. "cities" (a comma list,
// matched as a set) takes precedence over "city"; with neither present the
// full product set is returned.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	pc.findAndRespond(w, cityFilter(params.Get("city"), params.Get("cities")))
}

// GetNearbyProducts returns products within the requested radius of a
// point, using the 2dsphere index. Result order is whatever the store
// returns (nearest first with $nearSphere).
func (pc *ProductController) GetNearbyProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q, err := utils.ParseNearbyQuery(params.Get("lat"), params.Get("lng"), params.Get("radius"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := bson.M{
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type": "Point",
					// [lng, lat] — GeoJSON axis order
					"coordinates": []float64{q.Lng, q.Lat},
				},
				"$maxDistance": q.RadiusMeters(),
			},
		},
	}

	pc.findAndRespond(w, filter)
}

// findAndRespond runs a product query and writes the match set as a JSON
// array (empty array, never null).
func (pc *ProductController) findAndRespond(w http.ResponseWriter, filter bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := pc.Collection.Find(ctx, filter)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error fetching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error fetching products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}
