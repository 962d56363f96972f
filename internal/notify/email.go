package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailTransport mirrors push notifications to the employee's mailbox.
// Messages without a recipient email are skipped.
type EmailTransport struct {
	client     *sendgrid.Client
	senderName string
	senderAddr string
}

func NewEmailTransport(apiKey, senderName, senderAddr string) *EmailTransport {
	return &EmailTransport{
		client:     sendgrid.NewSendClient(apiKey),
		senderName: senderName,
		senderAddr: senderAddr,
	}
}

func (t *EmailTransport) Name() string { return "email" }

func (t *EmailTransport) Send(ctx context.Context, msg Message) error {
	if msg.RecipientEmail == "" {
		return nil
	}

	from := mail.NewEmail(t.senderName, t.senderAddr)
	to := mail.NewEmail("", msg.RecipientEmail)
	m := mail.NewSingleEmail(from, msg.Title, to, msg.Body, msg.Body)

	resp, err := t.client.SendWithContext(ctx, m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}
