package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-marketplace/models"
)

func TestComposeOrderConfirmation(t *testing.T) {
	order := models.Order{
		Name:    "Alice",
		Email:   "alice@x.com",
		Address: "12 Main St, Pune",
		Item:    models.OrderItem{Name: "Basmati Rice"},
	}

	subject, body := ComposeOrderConfirmation(order)

	assert.Equal(t, "Order Confirmation", subject)
	assert.Contains(t, body, "Hi Alice")
	assert.Contains(t, body, `"Basmati Rice"`)
	assert.Contains(t, body, "12 Main St, Pune")
}

func TestComposeFulfillmentRequest(t *testing.T) {
	order := models.Order{
		Name:    "Alice",
		Phone:   "9999999999",
		Email:   "alice@x.com",
		Address: "12 Main St, Pune",
		Item:    models.OrderItem{Name: "Basmati Rice"},
	}
	product := models.Product{
		Name:       "Basmati Rice",
		AdminName:  "Bob",
		AdminEmail: "bob@store.com",
	}

	subject, body := ComposeFulfillmentRequest(order, product)

	assert.Equal(t, "New Order Received", subject)
	assert.Contains(t, body, "Hi Bob")
	assert.Contains(t, body, "Name: Alice")
	assert.Contains(t, body, "Email: alice@x.com")
	assert.Contains(t, body, "Phone: 9999999999")
	assert.Contains(t, body, "Please fulfill the order.")
}

func TestComposeAdminOTP(t *testing.T) {
	subject, body := ComposeAdminOTP("new-admin@x.com", "042917")

	assert.Equal(t, "Admin Account OTP Verification", subject)
	assert.Contains(t, body, "new-admin@x.com")
	assert.Contains(t, body, "042917")
}
