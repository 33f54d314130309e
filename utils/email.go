package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail through SendGrid. A nil service (or
// one constructed without an API key) reports itself as disabled; callers
// degrade gracefully instead of failing requests on mail problems.
type EmailService struct {
	apiKey string
	sender string
}

// NewEmailService builds an EmailService. apiKey may be empty, which yields a
// disabled service.
func NewEmailService(apiKey, sender string) *EmailService {
	return &EmailService{apiKey: apiKey, sender: sender}
}

// Enabled reports whether the service can actually send.
func (es *EmailService) Enabled() bool {
	return es != nil && es.apiKey != "" && es.sender != ""
}

// SendEmail delivers a plain-text message to a single recipient.
func (es *EmailService) SendEmail(toEmail, subject, content string) error {
	if !es.Enabled() {
		return fmt.Errorf("email service is not configured")
	}

	from := mail.NewEmail("Medizo", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, content, content)

	client := sendgrid.NewSendClient(es.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email: sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
