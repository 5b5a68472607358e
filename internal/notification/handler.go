package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/bookshop/internal/domain/order"
	"github.com/example/bookshop/internal/repository"
)

// EmailSender is the slice of the email service the notifier needs.
type EmailSender interface {
	SendOrderConfirmation(to, memberName, orderID string, total int) error
	SendOrderCancellation(to, memberName, orderID string, total int) error
}

// Handler turns order lifecycle events from Kafka into emails. Members
// without an email address are skipped silently.
type Handler struct {
	email   EmailSender
	members repository.MemberRepository
}

// NewHandler creates a new notification handler
func NewHandler(email EmailSender, members repository.MemberRepository) *Handler {
	return &Handler{email: email, members: members}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event order.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	switch event.Type {
	case order.EventOrderPlaced, order.EventOrderCancelled:
		return h.notify(ctx, event)
	}
	return nil
}

func (h *Handler) notify(ctx context.Context, event order.Event) error {
	m, err := h.members.FindByID(ctx, event.MemberID)
	if err != nil {
		log.Printf("[Notifier] Member %s not found for order %s: %v", event.MemberID, event.OrderID, err)
		return nil
	}
	if m.Email == "" {
		log.Printf("[Notifier] Member %s has no email address, skipping order %s", m.ID, event.OrderID)
		return nil
	}

	log.Printf("[Notifier] Sending %s email for order %s to %s", event.Type, event.OrderID, m.Email)

	if event.Type == order.EventOrderCancelled {
		err = h.email.SendOrderCancellation(m.Email, m.Name, event.OrderID, event.Total)
	} else {
		err = h.email.SendOrderConfirmation(m.Email, m.Name, event.OrderID, event.Total)
	}
	if err != nil {
		log.Printf("[Notifier] Failed to send email for order %s: %v", event.OrderID, err)
	}
	return nil
}
