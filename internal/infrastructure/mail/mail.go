// Package mail delivers password reset links.
package mail

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

const (
	resetSubject = "Reset your password"
	sendTimeout  = 15 * time.Second
)

// LogMailer writes reset links to the log. It is used when no SMTP server is
// configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, link string) error {
	m.log.Info().Str("email", email).Str("link", link).Msg("password reset link")
	return nil
}

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Addr     string // host:port
	From     string
	User     string
	Password string
}

// sender is the part of *gomail.Client the mailer needs.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// SMTPMailer sends reset links through an SMTP relay. STARTTLS is used when
// the relay offers it.
type SMTPMailer struct {
	from   string
	client sender
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	host, portStr, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("smtp addr %q: %w", cfg.Addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("smtp port %q: %w", portStr, err)
	}

	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(sendTimeout),
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{from: cfg.From, client: client}, nil
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	msg, err := resetMessage(m.from, email, link)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func resetMessage(from, to, link string) (*gomail.Msg, error) {
	msg := gomail.NewMsg(gomail.WithEncoding(gomail.NoEncoding))
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(resetSubject)
	msg.SetBodyString(gomail.TypeTextPlain,
		"We received a request to reset the password of your tracking account.\r\n\r\n"+
			"Open this link to choose a new password:\r\n"+link+"\r\n\r\n"+
			"If you did not ask for this, ignore this email.\r\n")
	return msg, nil
}
