package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"go-marketplace/models"
	"go-marketplace/utils"
)

// UserController handles registration, login and OTP-gated admin
// provisioning.
type UserController struct {
	Collection   *mongo.Collection
	EmailService EmailSender
	OTPStore     *utils.OTPStore
	Logger       *logrus.Logger
}

// NewUserController creates a UserController over the users collection.
func NewUserController(db *mongo.Database, emailService EmailSender, otpStore *utils.OTPStore, logger *logrus.Logger) *UserController {
	return &UserController{
		Collection:   db.Collection("users"),
		EmailService: emailService,
		OTPStore:     otpStore,
		Logger:       logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	City     string `json:"city" validate:"required"`
}

// emailTaken reports whether a user with the given email already exists.
func (uc *UserController) emailTaken(ctx context.Context, email string) (bool, error) {
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// insertUser hashes the password and stores a new account with the given
// role.
func (uc *UserController) insertUser(ctx context.Context, req registerRequest, role string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		City:      req.City,
		Role:      role,
		AccountID: uuid.NewString(),
	}
	_, err = uc.Collection.InsertOne(ctx, user)
	return err
}

// Register handles normal user registration.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	taken, err := uc.emailTaken(ctx, req.Email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if taken {
		writeMessage(w, http.StatusConflict, "Email already registered")
		return
	}

	if err := uc.insertUser(ctx, req, "user"); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeMessage(w, http.StatusConflict, "Email already registered")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered"})
}

// CreateAdmin registers an admin account directly, without the OTP step.
func (uc *UserController) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	taken, err := uc.emailTaken(ctx, req.Email)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Failed to create admin")
		return
	}
	if taken {
		writeFailure(w, http.StatusConflict, "Admin already exists")
		return
	}

	if err := uc.insertUser(ctx, req, "admin"); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeFailure(w, http.StatusConflict, "Admin already exists")
			return
		}
		writeFailure(w, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Admin created successfully",
	})
}

// CreateOTP issues a one-time code for admin provisioning and emails it to
// the requesting address. Re-issuing overwrites any unconsumed code.
func (uc *UserController) CreateOTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	taken, err := uc.emailTaken(ctx, req.Email)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}
	if taken {
		writeFailure(w, http.StatusConflict, "Admin already exists")
		return
	}

	code, err := uc.OTPStore.Issue(req.Email)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	subject, body := utils.ComposeAdminOTP(req.Email, code)
	if err := uc.EmailService.Send(context.Background(), req.Name, req.Email, subject, body); err != nil {
		uc.Logger.WithFields(logrus.Fields{"email": req.Email, "error": err.Error()}).Error("failed to send OTP email")
		writeFailure(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "OTP sent to your email. Please verify.",
		"otpSent": true,
	})
}

type verifyOTPRequest struct {
	Email    string `json:"email" validate:"required,email"`
	OTP      string `json:"otp" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	City     string `json:"city" validate:"required"`
}

// VerifyAdminOTP consumes an issued code and creates the admin account. A
// wrong code leaves the issued code in place for a later correct attempt.
func (uc *UserController) VerifyAdminOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if !uc.OTPStore.Verify(req.Email, req.OTP) {
		writeFailure(w, http.StatusUnauthorized, "Invalid OTP")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reg := registerRequest{Name: req.Name, Email: req.Email, Password: req.Password, City: req.City}
	if err := uc.insertUser(ctx, reg, "admin"); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeFailure(w, http.StatusConflict, "Admin already exists")
			return
		}
		writeFailure(w, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Admin created successfully after OTP verification",
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a user or admin and returns the account payload.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds loginRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(creds); err != nil {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		writeFailure(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Login error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		writeFailure(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	user.Password = ""
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
