// Package mailer delivers contact form submissions.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/folio/internal/config"
)

// ErrNotConfigured is returned by Disabled.
var ErrNotConfigured = errors.New("mail delivery not configured")

// Contact is a visitor's message from the public site.
type Contact struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=10000"`
}

type Sender interface {
	Send(ctx context.Context, c Contact) error
}

// New returns an SMTP sender, or Disabled when SMTP is not configured.
func New(cfg config.SMTP) Sender {
	if !cfg.Enabled() {
		return Disabled{}
	}
	return &SMTP{
		Addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Host:     cfg.Host,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		To:       cfg.Recipient,
		send:     smtp.SendMail,
	}
}

// Disabled rejects every message.
type Disabled struct{}

func (Disabled) Send(context.Context, Contact) error { return ErrNotConfigured }

type SMTP struct {
	Addr     string
	Host     string
	Username string
	Password string
	From     string
	To       string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	now  func() time.Time
}

func (s *SMTP) Send(ctx context.Context, c Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	send := s.send
	if send == nil {
		send = smtp.SendMail
	}
	msg := s.compose(c)
	if err := send(s.Addr, auth, s.From, []string{s.To}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (s *SMTP) compose(c Contact) []byte {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	var b bytes.Buffer
	header := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(headerValue(v))
		b.WriteString("\r\n")
	}
	header("From", s.From)
	header("To", s.To)
	header("Reply-To", c.Email)
	header("Subject", "Portfolio contact: "+c.Subject)
	header("Date", now().Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), s.Host))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "Name: %s\r\nEmail: %s\r\n\r\n", c.Name, c.Email)
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(c.Message, "\r\n", "\n"), "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes()
}

// headerValue keeps visitor input on a single header line.
func headerValue(v string) string {
	return strings.Join(strings.Fields(strings.NewReplacer("\r", " ", "\n", " ").Replace(v)), " ")
}
