// Package notification delivers order emails over SMTP.
package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/identity"
	domainorder "github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SMTPNotifier sends order lifecycle emails to the customer. Every method
// reports delivery as a bool; failures are logged here and never surface
// as errors to the caller.
type SMTPNotifier struct {
	cfg    config.SMTPConfig
	users  identity.UserRepository
	logger *zap.Logger

	// send is swappable for tests
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(cfg config.SMTPConfig, users identity.UserRepository, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		users:  users,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// NotifyOrderPlaced emails the order confirmation
func (n *SMTPNotifier) NotifyOrderPlaced(ctx context.Context, event *domainorder.OrderPlacedEvent) bool {
	var body strings.Builder
	fmt.Fprintf(&body, "Thank you for your order %s.\r\n\r\n", event.OrderNumber)
	for _, item := range event.Items {
		fmt.Fprintf(&body, "  %dx %s at %s\r\n", item.Quantity, item.Name, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&body, "\r\nTotal: %s\r\n", event.TotalAmount.StringFixed(2))

	subject := fmt.Sprintf("Order %s confirmed", event.OrderNumber)
	return n.deliver(ctx, event.UserID, subject, body.String())
}

// NotifyOrderStatusChanged emails a status update
func (n *SMTPNotifier) NotifyOrderStatusChanged(ctx context.Context, event *domainorder.OrderStatusChangedEvent) bool {
	subject := fmt.Sprintf("Order %s is now %s", event.OrderNumber, event.NewStatus)
	body := fmt.Sprintf("Your order %s moved from %s to %s.\r\n",
		event.OrderNumber, event.PreviousStatus, event.NewStatus)
	return n.deliver(ctx, event.UserID, subject, body)
}

// NotifyOrderCancelled emails the cancellation confirmation
func (n *SMTPNotifier) NotifyOrderCancelled(ctx context.Context, event *domainorder.OrderCancelledEvent) bool {
	subject := fmt.Sprintf("Order %s cancelled", event.OrderNumber)
	var body strings.Builder
	fmt.Fprintf(&body, "Your order %s has been cancelled.\r\n", event.OrderNumber)
	if event.Reason != "" {
		fmt.Fprintf(&body, "Reason: %s\r\n", event.Reason)
	}
	return n.deliver(ctx, event.UserID, subject, body.String())
}

// deliver resolves the recipient and sends one message. When SMTP is
// disabled the message is dropped and reported as delivered so the
// handler does not warn on every order in development.
func (n *SMTPNotifier) deliver(ctx context.Context, userID uuid.UUID, subject, body string) bool {
	if !n.cfg.Enabled {
		n.logger.Debug("smtp disabled, skipping notification",
			zap.String("subject", subject),
		)
		return true
	}

	user, err := n.users.FindByID(ctx, userID)
	if err != nil {
		n.logger.Error("failed to resolve notification recipient",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return false
	}

	msg := n.buildMessage(user.Email, subject, body)
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := n.send(addr, auth, n.cfg.From, []string{user.Email}, msg); err != nil {
		n.logger.Error("failed to send notification email",
			zap.String("to", user.Email),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (n *SMTPNotifier) buildMessage(to, subject, body string) []byte {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return []byte(msg.String())
}

// Ensure SMTPNotifier implements Notifier
var _ order.Notifier = (*SMTPNotifier)(nil)
