package mailer

import (
	"context"
	"fmt"
	"os"

	"github.com/keighl/postmark"
)

// PostmarkSender delivers email through the Postmark API.
type PostmarkSender struct {
	client *postmark.Client
	from   string
}

// NewPostmarkSender reads POSTMARK_API_TOKEN and EMAIL_SENDER from the
// environment.
func NewPostmarkSender() (*PostmarkSender, error) {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		return nil, fmt.Errorf("POSTMARK_API_TOKEN is not set")
	}
	from := os.Getenv("EMAIL_SENDER")
	if from == "" {
		return nil, fmt.Errorf("EMAIL_SENDER is not set")
	}
	return &PostmarkSender{
		client: postmark.NewClient(apiToken, ""),
		from:   from,
	}, nil
}

// Send delivers one HTML email.
func (s *PostmarkSender) Send(_ context.Context, to, subject, html string) error {
	_, err := s.client.SendEmail(postmark.Email{
		From:     s.from,
		To:       to,
		Subject:  subject,
		HtmlBody: html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
