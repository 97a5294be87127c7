// Package notify delivers wellness emails to the user
package notify

import (
	"context"
	"fmt"
	"html"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Message is a single outbound email
type Message struct {
	ToEmail   string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

// Mailer sends messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridMailer sends messages through the SendGrid v3 API
type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	logger    *zap.Logger
}

// NewSendGridMailer creates a SendGridMailer
func NewSendGridMailer(apiKey, fromName, fromEmail string, logger *zap.Logger) (*SendGridMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid API key is required")
	}
	if fromEmail == "" {
		return nil, fmt.Errorf("sender email is required")
	}

	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		logger:    logger,
	}, nil
}

// Send delivers msg. Non-2xx responses are returned as errors.
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainText, htmlBody(msg))

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		m.logger.Error("failed to send email",
			zap.Error(err),
			zap.String("to", msg.ToEmail),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		m.logger.Error("sendgrid returned error status",
			zap.Int("status", response.StatusCode),
			zap.String("body", response.Body),
			zap.String("to", msg.ToEmail),
		)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}

	m.logger.Info("email sent successfully",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func htmlBody(msg Message) string {
	if msg.HTML != "" {
		return msg.HTML
	}
	return "<pre style=\"font-family: sans-serif\">" + html.EscapeString(msg.PlainText) + "</pre>"
}

// LogMailer only logs messages and keeps them in memory. It is used when
// no email provider is configured.
type LogMailer struct {
	logger *zap.Logger
	mu     sync.Mutex
	sent   []Message
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send records msg
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()

	m.logger.Info("email delivery not configured, message logged",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.PlainText)),
	)
	return nil
}

// Sent returns a copy of every recorded message
func (m *LogMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}
