package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/resend/resend-go/v2"

	"portfolio-api/internal/config"
	"portfolio-api/pkg/logger"
	"portfolio-api/pkg/metrics"
)

// Message is a rendered outbound email. Template names the layout that
// produced it and labels the delivery metric.
type Message struct {
	Template string
	To       string
	Subject  string
	HTML     string
	Text     string
}

var ErrDisabled = errors.New("email sending disabled")

// Mailer delivers messages through the Resend API. With no API key configured
// every send is skipped and logged, which keeps local development working
// without credentials.
type Mailer struct {
	client     *resend.Client
	from       string
	adminEmail string
	siteName   string
}

func New(cfg config.EmailConfig) *Mailer {
	m := &Mailer{
		from:       cfg.From,
		adminEmail: cfg.AdminEmail,
		siteName:   cfg.SiteName,
	}
	if cfg.APIKey != "" {
		m.client = resend.NewClient(cfg.APIKey)
	}
	return m
}

// Enabled reports whether an API key was configured.
func (m *Mailer) Enabled() bool { return m.client != nil }

// AdminEmail returns the configured notification recipient.
func (m *Mailer) AdminEmail() string { return m.adminEmail }

// Send delivers a single message synchronously.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if m.client == nil {
		logger.Debugf("mailer: sending disabled, dropping %q to %s", msg.Subject, msg.To)
		metrics.EmailsSent.WithLabelValues(msg.Template, "skipped").Inc()
		return ErrDisabled
	}
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		metrics.EmailsSent.WithLabelValues(msg.Template, "error").Inc()
		return err
	}
	metrics.EmailsSent.WithLabelValues(msg.Template, "ok").Inc()
	return nil
}

// SendAsync delivers a message in the background. Failures are logged, never
// surfaced to the caller; email is best-effort everywhere it is used.
func (m *Mailer) SendAsync(msg Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := m.Send(ctx, msg); err != nil && err != ErrDisabled {
			logger.Errorf("mailer: failed to send %s to %s: %v", msg.Template, msg.To, err)
		}
	}()
}
