// Package mail implements the notification ports over SMTP and embedded
// HTML templates.
package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/tailorbase/backend/internal/domain/notification"
	"github.com/tailorbase/backend/internal/infrastructure/config"
)

// messageSender abstracts gomail's DialAndSend for testing
type messageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender implements notification.Sender over SMTP
type SMTPSender struct {
	dialer   messageSender
	fromName string
	logger   *zap.Logger
}

// NewSMTPSender creates a sender from the mail configuration
func NewSMTPSender(cfg config.MailConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		fromName: cfg.FromName,
		logger:   logger,
	}
}

// Send delivers one HTML mail. The context is honored up front; gomail
// itself does not support cancellation mid-delivery.
func (s *SMTPSender) Send(ctx context.Context, from, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", from, s.fromName)
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("mail delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	s.logger.Debug("mail sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// Ensure SMTPSender implements notification.Sender
var _ notification.Sender = (*SMTPSender)(nil)
