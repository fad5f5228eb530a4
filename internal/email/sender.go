package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"portfolio_backend/internal/config"
	"portfolio_backend/internal/logger"
)

// Sender delivers outbound notifications.
type Sender interface {
	Send(to, subject, htmlBody string) error
	NotifyMessageReceived(senderName, senderEmail, subject, body string) error
}

type smtpSender struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

// NewSender builds an SMTP-backed sender. When email is disabled in the
// config a no-op sender is returned so callers never have to branch.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.Enabled {
		return &noopSender{}
	}
	return &smtpSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

func (s *smtpSender) NotifyMessageReceived(senderName, senderEmail, subject, body string) error {
	html, err := renderMessageReceived(messageReceivedData{
		SenderName:  senderName,
		SenderEmail: senderEmail,
		Subject:     subject,
		Body:        body,
	})
	if err != nil {
		return err
	}
	return s.Send(s.cfg.AdminEmail, "New portfolio message: "+subject, html)
}

type noopSender struct{}

func (n *noopSender) Send(to, subject, htmlBody string) error {
	logger.Debug("email disabled, dropping message", "to", to, "subject", subject)
	return nil
}

func (n *noopSender) NotifyMessageReceived(senderName, senderEmail, subject, body string) error {
	logger.Debug("email disabled, dropping notification", "from", senderEmail, "subject", subject)
	return nil
}
