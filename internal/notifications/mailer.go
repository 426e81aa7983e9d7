package notifications

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a rendered notification.
type Mailer interface {
	Send(ctx context.Context, n Notification) error
}

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends notifications as plain-text email.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, n Notification) error {
	if n.RecipientEmail == "" {
		return errors.New("notification has no recipient email")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetAddressHeader("To", n.RecipientEmail, n.RecipientName)
	msg.SetHeader("Subject", n.Subject())
	msg.SetBody("text/plain", n.Body())

	return m.dialer.DialAndSend(msg)
}

// LogMailer writes notifications to the log instead of sending them. It is
// used when no SMTP server is configured.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, n Notification) error {
	m.logger.Info("email notification",
		zap.String("id", n.ID),
		zap.String("kind", string(n.Kind)),
		zap.String("to", n.RecipientEmail),
		zap.String("subject", n.Subject()),
	)
	return nil
}
