package mail

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/pastor-mobile/church-admin-service/internal/config"
	"github.com/pastor-mobile/church-admin-service/internal/observability"
)

// Message is an outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages best-effort. Send must never block the caller and
// never surfaces delivery failures synchronously.
type Mailer interface {
	Send(msg Message)
}

// SMTPMailer delivers mail over SMTP in a background goroutine. Failures are
// logged together with the message body so short-lived codes remain
// recoverable from the logs, mirroring a console fallback.
type SMTPMailer struct {
	cfg     config.SMTPConfig
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewSMTPMailer constructs the mailer.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger, metrics *observability.Metrics) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger, metrics: metrics}
}

// Send dispatches the message asynchronously.
func (m *SMTPMailer) Send(msg Message) {
	go m.deliver(msg)
}

func (m *SMTPMailer) deliver(msg Message) {
	if m.cfg.Host == "" {
		m.metrics.RecordEmail("skipped")
		m.logger.Warn("smtp not configured; message not sent",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.String("body", msg.Body))
		return
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	payload := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, msg.To, msg.Subject, msg.Body))

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, payload); err != nil {
		m.metrics.RecordEmail("failed")
		m.logger.Error("email delivery failed",
			zap.Error(err),
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.String("body", msg.Body))
		return
	}

	m.metrics.RecordEmail("sent")
	m.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
}
