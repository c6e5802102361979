package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/johnquangdev/meetscribe/pkg/config"
)

// Message is one outgoing HTML email
type Message struct {
	To      []string
	Bcc     []string
	Subject string
	HTML    string
}

// Sender submits messages to a mail transport
type Sender interface {
	Send(ctx context.Context, msg Message) error
	From() string
}

// dialer is the part of gomail.Dialer the sender needs
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends mail through an SMTP server with gomail
type SMTPSender struct {
	dialer dialer
	from   string
}

// NewSMTPSender creates a sender from SMTP configuration
func NewSMTPSender(cfg *config.SMTPConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPSender{
		dialer: d,
		from:   cfg.From,
	}
}

// From returns the configured sender address
func (s *SMTPSender) From() string {
	return s.from
}

// Send builds the MIME message and submits it in a single SMTP session.
// The context is only checked before dialing; gomail offers no way to
// abort a submission in progress.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 && len(msg.Bcc) == 0 {
		return fmt.Errorf("message has no recipients")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	if len(msg.To) > 0 {
		// gomail writes one comma-joined To header; every recipient sees the others.
		m.SetHeader("To", msg.To...)
	}
	if len(msg.Bcc) > 0 {
		m.SetHeader("Bcc", msg.Bcc...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp submission failed: %w", err)
	}
	return nil
}
