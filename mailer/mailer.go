// Package mailer sends transactional email. Delivery is best-effort: callers
// log failures and move on, they never retry within the same operation.
package mailer

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Sender delivers one HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// FromEnv builds the sender selected by EMAIL_PROVIDER ("postmark" or
// "sendgrid", defaulting to postmark).
func FromEnv() (Sender, error) {
	provider := os.Getenv("EMAIL_PROVIDER")
	switch provider {
	case "", "postmark":
		return NewPostmarkSender()
	case "sendgrid":
		return NewSendGridSender()
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", provider)
	}
}

// displayLocation is used for human-facing dates in email bodies only; it has
// no effect on transition eligibility, which compares absolute instants.
var displayLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.UTC
	}
	return loc
}()

func displayDate(t time.Time) string {
	return t.In(displayLocation).Format("2 January 2006")
}

func displayDay(t time.Time) string {
	return t.In(displayLocation).Format("Monday, 2 January")
}
