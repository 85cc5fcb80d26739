package portfolio

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// NotificationSender delivers operator notifications for new contact
// submissions. Tests substitute their own implementation.
type NotificationSender interface {
	SendContactNotification(ctx context.Context, name, email, message string) error
}

// Mailer sends notification email over SMTP using the configured server.
// The client is built per send, so missing or bad credentials only surface
// when a send is actually attempted.
type Mailer struct {
	cfg Config
}

// NewMailer returns a Mailer for the given configuration.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendContactNotification emails the submitted name, email, and message to
// the configured operator address. The dial is bounded by MailTimeout so a
// slow server cannot hang the request.
func (m *Mailer) SendContactNotification(ctx context.Context, name, email, message string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.MailUsername); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(m.cfg.ContactEmail); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject("New Contact Form Submission")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"New contact form submission:\n\nName: %s\nEmail: %s\nMessage: %s\n",
		name, email, message))

	opts := []mail.Option{
		mail.WithPort(m.cfg.MailPort),
		mail.WithTimeout(m.cfg.MailTimeout),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.MailUsername),
		mail.WithPassword(m.cfg.MailPassword),
	}
	if m.cfg.MailUseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	client, err := mail.NewClient(m.cfg.MailServer, opts...)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
