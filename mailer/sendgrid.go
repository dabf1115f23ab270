package mailer

import (
	"context"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers email through the SendGrid API.
type SendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendGridSender reads SENDGRID_API_KEY and EMAIL_SENDER from the
// environment.
func NewSendGridSender() (*SendGridSender, error) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is not set")
	}
	from := os.Getenv("EMAIL_SENDER")
	if from == "" {
		return nil, fmt.Errorf("EMAIL_SENDER is not set")
	}
	return &SendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: "NexusMarket",
	}, nil
}

// Send delivers one HTML email.
func (s *SendGridSender) Send(_ context.Context, to, subject, html string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", to),
		"",
		html,
	)
	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}
	return nil
}
