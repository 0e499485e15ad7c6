package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-marketplace/models"
	"go-marketplace/utils"
)

// OrderController handles order placement and retrieval.
type OrderController struct {
	OrderCollection   *mongo.Collection
	ProductCollection *mongo.Collection
	UserCollection    *mongo.Collection
	EmailService      EmailSender
	Logger            *logrus.Logger
}

// NewOrderController creates an OrderController over the orders, products
// and users collections.
func NewOrderController(db *mongo.Database, emailService EmailSender, logger *logrus.Logger) *OrderController {
	return &OrderController{
		OrderCollection:   db.Collection("orders"),
		ProductCollection: db.Collection("products"),
		UserCollection:    db.Collection("users"),
		EmailService:      emailService,
		Logger:            logger,
	}
}

type bookOrderItem struct {
	ProductID    string  `json:"productId" validate:"required"`
	Name         string  `json:"name"`
	PriceAtOrder float64 `json:"priceAtOrder"`
}

type bookOrderRequest struct {
	Name    string        `json:"name" validate:"required"`
	Phone   string        `json:"phone" validate:"required"`
	Email   string        `json:"email" validate:"required,email"`
	Address string        `json:"address" validate:"required"`
	Item    bookOrderItem `json:"item"`
}

// BookOrder places an order and notifies both parties. The order is
// persisted as pending before the product is resolved, marked failed when
// the product does not exist (the record is kept), and confirmed otherwise.
// Notification failures after confirmation surface as 500 even though the
// order is already durable.
func (oc *OrderController) BookOrder(w http.ResponseWriter, r *http.Request) {
	var req bookOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.Item.ProductID)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order := models.Order{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Item: models.OrderItem{
			ProductID:    req.Item.ProductID,
			Name:         req.Item.Name,
			PriceAtOrder: req.Item.PriceAtOrder,
		},
		Status:    models.OrderPending,
		CreatedAt: time.Now().UTC(),
	}

	result, err := oc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Order failed")
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	var product models.Product
	err = oc.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// The pending record is kept on purpose so the attempt stays
		// queryable by the buyer's email.
		oc.setOrderStatus(ctx, order.ID, models.OrderFailed)
		writeFailure(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Order failed")
		return
	}

	if order.Item.Name == "" {
		order.Item.Name = product.Name
	}
	if order.Item.PriceAtOrder == 0 {
		order.Item.PriceAtOrder = product.Cost
	}

	if err := oc.confirmOrder(ctx, order); err != nil {
		writeFailure(w, http.StatusInternalServerError, "Order failed")
		return
	}

	subject, body := utils.ComposeOrderConfirmation(order)
	buyerErr := oc.EmailService.Send(context.Background(), order.Name, order.Email, subject, body)

	subject, body = utils.ComposeFulfillmentRequest(order, product)
	sellerErr := oc.EmailService.Send(context.Background(), product.AdminName, product.AdminEmail, subject, body)

	if buyerErr != nil || sellerErr != nil {
		oc.Logger.WithFields(logrus.Fields{
			"orderId":     order.ID.Hex(),
			"buyerError":  errString(buyerErr),
			"sellerError": errString(sellerErr),
		}).Error("order notification failed")
		writeFailure(w, http.StatusInternalServerError, "Order failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order placed and emails sent",
	})
}

// confirmOrder marks the order confirmed and persists the backfilled item
// snapshot, so the stored record matches what the notification emails say.
func (oc *OrderController) confirmOrder(ctx context.Context, order models.Order) error {
	_, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{
		"$set": bson.M{"status": models.OrderConfirmed, "item": order.Item},
	})
	if err != nil {
		oc.Logger.WithFields(logrus.Fields{
			"orderId": order.ID.Hex(),
			"error":   err.Error(),
		}).Error("failed to confirm order")
	}
	return err
}

func (oc *OrderController) setOrderStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		oc.Logger.WithFields(logrus.Fields{
			"orderId": id.Hex(),
			"status":  status,
			"error":   err.Error(),
		}).Error("failed to update order status")
	}
	return err
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// GetOrders returns the orders placed with the given buyer email, newest
// first.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := oc.findOrders(ctx, bson.M{"email": email})
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// SearchOrders finds users whose name or email contains the query
// (case-insensitive) and returns their orders, newest first.
func (oc *OrderController) SearchOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeMessage(w, http.StatusBadRequest, "Search query is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.UserCollection.Find(ctx, bson.M{
		"$or": []bson.M{
			{"email": bson.M{"$regex": query, "$options": "i"}},
			{"name": bson.M{"$regex": query, "$options": "i"}},
		},
	})
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Search failed")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Search failed")
		return
	}

	emails := make([]string, 0, len(users))
	for _, u := range users {
		emails = append(emails, u.Email)
	}

	orders := []models.Order{}
	if len(emails) > 0 {
		orders, err = oc.findOrders(ctx, bson.M{"email": bson.M{"$in": emails}})
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Search failed")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (oc *OrderController) findOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := oc.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
