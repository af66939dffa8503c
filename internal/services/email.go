package services

import (
	"context"
	"fmt"

	"jamqueuepro/internal/domain"
)

type emailService struct {
	mailer domain.Mailer
}

// NewEmailService returns an EmailService that composes messages inline and
// sends them through the given Mailer.
func NewEmailService(mailer domain.Mailer) domain.EmailService {
	return &emailService{mailer: mailer}
}

// SendWelcomeMessage greets a new account.
func (s *emailService) SendWelcomeMessage(ctx context.Context, email, name string) error {
	greeting := name
	if greeting == "" {
		greeting = "there"
	}
	subject := "Welcome to Jam Queue Pro"
	text := fmt.Sprintf("Hi %s,\n\nYour Jam Queue Pro account is ready. Find an event, pick your instruments, and grab a spot in the queue.\n", greeting)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your Jam Queue Pro account is ready. Find an event, pick your instruments, and grab a spot in the queue.</p>", greeting)
	if err := s.mailer.Send(email, subject, html, text); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
