package email

import (
	"fmt"
	"net/smtp"
)

// Service handles email sending via SMTP
type Service struct {
	host string
	port string
	from string
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendOrderConfirmation sends an order confirmation email
func (s *Service) SendOrderConfirmation(to, memberName, orderID string, total int) error {
	subject := fmt.Sprintf("Order received (order %s)", shortID(orderID))
	body := BuildOrderConfirmationBody(memberName, orderID, total)
	return s.send(to, subject, body)
}

// SendOrderCancellation sends an order cancellation email
func (s *Service) SendOrderCancellation(to, memberName, orderID string, total int) error {
	subject := fmt.Sprintf("Order cancelled (order %s)", shortID(orderID))
	body := BuildOrderCancellationBody(memberName, orderID, total)
	return s.send(to, subject, body)
}

func shortID(orderID string) string {
	if len(orderID) > 8 {
		return orderID[:8]
	}
	return orderID
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
