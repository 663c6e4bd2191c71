package mail

import (
	"os"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// OutboundEmail is a per-send value; nothing about it is persisted.
type OutboundEmail struct {
	To             string
	Subject        string
	HTML           string
	AttachmentPath string
}

type Result struct {
	Delivered bool
	MessageID string
	Reason    string
}

// Sender is what services depend on; lifecycle flows treat every failed
// Result as log-and-continue.
type Sender interface {
	Send(msg OutboundEmail) Result
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer wraps a single SMTP dialer built at startup. When the transport is
// not configured every Send short-circuits without dialing.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
	logger  zerolog.Logger
}

func NewMailer(cfg Config, logger zerolog.Logger) *Mailer {
	m := &Mailer{from: cfg.From, logger: logger}
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		logger.Warn().Msg("mail transport not configured, outbound email disabled")
		return m
	}
	m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	m.enabled = true
	return m
}

func (m *Mailer) Send(msg OutboundEmail) Result {
	if !m.enabled {
		return Result{Delivered: false, Reason: "not_configured"}
	}
	if msg.To == "" {
		return Result{Delivered: false, Reason: "missing_recipient"}
	}

	out := gomail.NewMessage()
	out.SetHeader("From", m.from)
	out.SetHeader("To", msg.To)
	out.SetHeader("Subject", msg.Subject)
	out.SetBody("text/html", msg.HTML)

	if msg.AttachmentPath != "" {
		if _, err := os.Stat(msg.AttachmentPath); err != nil {
			m.logger.Warn().Err(err).Str("path", msg.AttachmentPath).Msg("mail attachment unreadable")
			return Result{Delivered: false, Reason: "attachment_missing"}
		}
		out.Attach(msg.AttachmentPath)
	}

	if err := m.dialer.DialAndSend(out); err != nil {
		m.logger.Warn().Err(err).Str("to", msg.To).Msg("mail send failed")
		return Result{Delivered: false, Reason: "transport_error"}
	}
	return Result{Delivered: true}
}
