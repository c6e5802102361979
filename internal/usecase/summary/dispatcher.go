package summary

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"go.uber.org/zap"

	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
	"github.com/johnquangdev/meetscribe/pkg/mailer"
)

const emailLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
  .header { border-bottom: 2px solid #2563EB; padding-bottom: 10px; margin-bottom: 20px; }
  .header h1 { color: #2563EB; margin: 0; }
  .summary { background: #f8fafc; padding: 20px; border-radius: 8px; border-left: 4px solid #2563EB; }
  .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #e2e8f0; font-size: 12px; color: #64748b; }
</style>
</head>
<body>
  <div class="header">
    <h1>🤖 AI Meeting Summary</h1>
  </div>
{{- if .Message}}
  <p><strong>Message:</strong> {{.Message}}</p>
{{- end}}
  <div class="summary">
    {{.Summary}}
  </div>
  <div class="footer">
    <p>This summary was generated using AI Meeting Summarizer</p>
    <p>Generated on {{.Date}}</p>
  </div>
</body>
</html>
`

var emailTemplate = template.Must(template.New("summary-email").Parse(emailLayout))

// Email is one summary dispatch request
type Email struct {
	Recipients  []string
	Subject     string
	Message     *string
	SummaryHTML string
}

// Dispatcher renders and submits summary emails
type Dispatcher interface {
	Send(ctx context.Context, email Email) error
}

type emailDispatcher struct {
	sender        mailer.Sender
	bccRecipients bool
	now           func() time.Time
	logger        *zap.Logger
}

// NewDispatcher creates a Dispatcher. With bccRecipients the recipient list
// goes into Bcc and the sender address into To.
func NewDispatcher(sender mailer.Sender, bccRecipients bool, logger *zap.Logger) Dispatcher {
	return &emailDispatcher{
		sender:        sender,
		bccRecipients: bccRecipients,
		now:           time.Now,
		logger:        logger,
	}
}

// RenderEmail builds the email body. summaryHTML is inserted as markup,
// message is escaped.
func RenderEmail(summaryHTML string, message *string, at time.Time) (string, error) {
	data := struct {
		Message string
		Summary template.HTML
		Date    string
	}{
		Summary: template.HTML(summaryHTML),
		Date:    at.Format("January 2, 2006"),
	}
	if message != nil {
		data.Message = *message
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *emailDispatcher) Send(ctx context.Context, email Email) error {
	body, err := RenderEmail(email.SummaryHTML, email.Message, d.now())
	if err != nil {
		return &usecaseErrors.EmailError{Err: err}
	}

	msg := mailer.Message{
		Subject: email.Subject,
		HTML:    body,
	}
	if d.bccRecipients {
		msg.To = []string{d.sender.From()}
		msg.Bcc = email.Recipients
	} else {
		msg.To = email.Recipients
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Error("❌ Failed to send summary email",
			zap.Int("recipient_count", len(email.Recipients)),
			zap.Error(err))
		return &usecaseErrors.EmailError{Err: err}
	}

	d.logger.Info("📧 Summary email sent",
		zap.Int("recipient_count", len(email.Recipients)),
		zap.Bool("bcc", d.bccRecipients))
	return nil
}
