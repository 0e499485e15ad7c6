package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-marketplace/models"
)

// sendTimeout bounds a single mail-transport call so a hung transport
// fails the notification instead of stalling the request forever.
const sendTimeout = 10 * time.Second

// EmailService sends transactional email through SendGrid. One attempt per
// message; failures are returned to the caller, never retried.
type EmailService struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewEmailService builds an EmailService from the SendGrid API key and the
// configured sender identity.
func NewEmailService(apiKey, fromName, fromEmail string) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send delivers a single plain-text email and waits for the transport to
// accept it.
func (es *EmailService) Send(ctx context.Context, toName, toEmail, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	from := mail.NewEmail(es.fromName, es.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	resp, err := es.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail transport rejected message: status %d", resp.StatusCode)
	}
	return nil
}

// ComposeOrderConfirmation builds the subject and body of the confirmation
// sent to the buyer.
func ComposeOrderConfirmation(order models.Order) (subject, body string) {
	subject = "Order Confirmation"
	body = fmt.Sprintf(
		"Hi %s,\n\nYour order for \"%s\" has been placed.\n\nWe will deliver to:\n%s\n\nThanks for shopping!",
		order.Name, order.Item.Name, order.Address,
	)
	return subject, body
}

// ComposeFulfillmentRequest builds the subject and body of the new-order
// notice sent to the seller who listed the product.
func ComposeFulfillmentRequest(order models.Order, product models.Product) (subject, body string) {
	subject = "New Order Received"
	body = fmt.Sprintf(
		"Hi %s,\n\nYour product \"%s\" has been ordered by:\n\nName: %s\nEmail: %s\nPhone: %s\nAddress: %s\n\nPlease fulfill the order.",
		product.AdminName, order.Item.Name, order.Name, order.Email, order.Phone, order.Address,
	)
	return subject, body
}

// ComposeAdminOTP builds the subject and body of the OTP email sent during
// admin provisioning.
func ComposeAdminOTP(email, code string) (subject, body string) {
	subject = "Admin Account OTP Verification"
	body = fmt.Sprintf(
		"A request was made to create an admin account for:\nEmail: %s\n\nUse this OTP to approve: %s",
		email, code,
	)
	return subject, body
}
