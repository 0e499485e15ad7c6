// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"go-marketplace/controllers"
	"go-marketplace/middleware"
	"go-marketplace/routes"
	"go-marketplace/storage"
	"go-marketplace/utils"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	logger := utils.NewLogger(getenv("APP_ENV", "development"))

	// Connect to MongoDB
	client := utils.ConnectDB(getenv("MONGO_URI", "mongodb://localhost:27017"))
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logger.Fatal(err)
		}
	}()

	dbName := getenv("MONGO_DB", "marketplace")
	if err := utils.EnsureIndexes(client, dbName); err != nil {
		logger.Fatalf("failed to create indexes: %v", err)
	}
	db := client.Database(dbName)

	// Image object storage
	useSSL, _ := strconv.ParseBool(getenv("MINIO_USE_SSL", "false"))
	images, err := storage.NewImageStore(
		getenv("MINIO_ENDPOINT", "localhost:9000"),
		getenv("MINIO_ACCESS_KEY", "minioadmin"),
		getenv("MINIO_SECRET_KEY", "minioadmin"),
		getenv("MINIO_BUCKET", "product-images"),
		useSSL,
	)
	if err != nil {
		logger.Fatalf("failed to initialize image storage: %v", err)
	}

	// Transactional mail
	emailService := utils.NewEmailService(
		os.Getenv("SENDGRID_API_KEY"),
		getenv("EMAIL_SENDER_NAME", "Marketplace"),
		getenv("EMAIL_SENDER", "no-reply@marketplace.local"),
	)

	// OTP store for admin provisioning
	ttlMinutes, err := strconv.Atoi(getenv("OTP_TTL_MINUTES", "10"))
	if err != nil || ttlMinutes <= 0 {
		ttlMinutes = 10
	}
	otpStore := utils.NewOTPStore(time.Duration(ttlMinutes) * time.Minute)

	// Initialize controllers
	userController := controllers.NewUserController(db, emailService, otpStore, logger)
	productController := controllers.NewProductController(db, images, logger)
	orderController := controllers.NewOrderController(db, emailService, logger)

	// Set up the router
	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)

	router := mux.NewRouter()
	router.Use(metrics.Middleware)
	routes.RegisterRoutes(router, userController, productController, orderController)
	router.Handle("/metrics", middleware.Handler(registry)).Methods("GET")

	// Start the server
	port := getenv("PORT", "8000")
	logger.Infof("Server is running on port %s", port)
	logger.Fatal(http.ListenAndServe(":"+port, router))
}
