// routes/routes.go
package routes

import (
	"go-marketplace/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, orderController *controllers.OrderController) {
	api := router.PathPrefix("/api").Subrouter()

	// Accounts
	api.HandleFunc("/register", userController.Register).Methods("POST")
	api.HandleFunc("/create-admin", userController.CreateAdmin).Methods("POST")
	api.HandleFunc("/create-otp", userController.CreateOTP).Methods("POST")
	api.HandleFunc("/verify-admin-otp", userController.VerifyAdminOTP).Methods("POST")
	api.HandleFunc("/login", userController.Login).Methods("POST")

	// Products
	api.HandleFunc("/add-product", productController.AddProduct).Methods("POST")
	api.HandleFunc("/products", productController.GetProducts).Methods("GET")
	api.HandleFunc("/products/nearby", productController.GetNearbyProducts).Methods("GET")

	// Orders
	api.HandleFunc("/book-order", orderController.BookOrder).Methods("POST")
	api.HandleFunc("/orders", orderController.GetOrders).Methods("GET")
	api.HandleFunc("/search-orders", orderController.SearchOrders).Methods("GET")
}
