// Package email delivers summary notifications by email
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
)

// Security selects how the SMTP connection is protected
type Security string

const (
	// SecurityStartTLS upgrades a plain connection with STARTTLS, as on port 587
	SecurityStartTLS Security = "starttls"
	// SecurityTLS dials with implicit TLS, as on port 465
	SecurityTLS Security = "tls"
	// SecurityNone sends in clear text. Only for local relays and tests.
	SecurityNone Security = "none"
)

// IsValid checks if the security mode is known
func (s Security) IsValid() bool {
	switch s {
	case SecurityStartTLS, SecurityTLS, SecurityNone:
		return true
	}
	return false
}

// SMTP sends notifications through an SMTP server
type SMTP struct {
	host     string
	port     int
	username string
	password string
	from     mail.Address
	security Security
	timeout  time.Duration
	now      func() time.Time
}

// SMTPOption configures the SMTP notifier
type SMTPOption func(*SMTP)

// WithAuth sets the login credentials
func WithAuth(username, password string) SMTPOption {
	return func(s *SMTP) {
		s.username = username
		s.password = password
	}
}

// WithSecurity sets the connection security
func WithSecurity(security Security) SMTPOption {
	return func(s *SMTP) {
		s.security = security
	}
}

// WithFromName sets the display name of the sender
func WithFromName(name string) SMTPOption {
	return func(s *SMTP) {
		s.from.Name = name
	}
}

// WithTimeout bounds dialing and the whole SMTP exchange
func WithTimeout(d time.Duration) SMTPOption {
	return func(s *SMTP) {
		s.timeout = d
	}
}

// NewSMTP creates an SMTP notifier sending from the given address
func NewSMTP(host string, port int, from string, opts ...SMTPOption) (*SMTP, error) {
	if host == "" || port <= 0 {
		return nil, goerr.New("SMTP host and port are required",
			goerr.T(model.ErrTagConfig),
			goerr.V("host", host),
			goerr.V("port", port))
	}
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid sender address",
			goerr.T(model.ErrTagConfig),
			goerr.V("from", from))
	}

	s := &SMTP{
		host:     host,
		port:     port,
		from:     *addr,
		security: SecurityStartTLS,
		timeout:  30 * time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !s.security.IsValid() {
		return nil, goerr.New("invalid SMTP security mode",
			goerr.T(model.ErrTagConfig),
			goerr.V("security", s.security))
	}
	return s, nil
}

// Name implements interfaces.Notifier
func (s *SMTP) Name() string {
	return "smtp"
}

// Notify implements interfaces.Notifier. One message is sent with every
// recipient on the To line.
func (s *SMTP) Notify(ctx context.Context, n *model.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if len(n.Recipients) == 0 {
		return goerr.New("no email recipients", goerr.T(model.ErrTagConfig))
	}

	msg, err := buildMessage(s.from, n, s.now())
	if err != nil {
		return err
	}

	if err := s.send(ctx, n.Recipients, msg); err != nil {
		return goerr.Wrap(err, "failed to send email",
			goerr.T(model.ErrTagTransport),
			goerr.V("host", s.host),
			goerr.V("recipients", n.Recipients))
	}

	ctxlog.From(ctx).Info("Email sent",
		"recipients", strings.Join(n.Recipients, ", "),
		"subject", n.Subject)
	return nil
}

func (s *SMTP) send(ctx context.Context, recipients []string, msg []byte) error {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	dialer := &net.Dialer{Timeout: s.timeout}

	var conn net.Conn
	var err error
	if s.security == SecurityTLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: s.tlsConfig()}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return goerr.Wrap(err, "failed to connect to SMTP server", goerr.V("addr", addr))
	}

	deadline := time.Now().Add(s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return goerr.Wrap(err, "SMTP handshake failed")
	}
	defer func() { _ = client.Close() }()

	if s.security == SecurityStartTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return goerr.New("SMTP server does not support STARTTLS", goerr.V("addr", addr))
		}
		if err := client.StartTLS(s.tlsConfig()); err != nil {
			return goerr.Wrap(err, "STARTTLS failed")
		}
	}

	if s.username != "" {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := client.Auth(auth); err != nil {
			return goerr.Wrap(err, "SMTP authentication failed")
		}
	}

	if err := client.Mail(s.from.Address); err != nil {
		return goerr.Wrap(err, "SMTP MAIL FROM rejected")
	}
	for _, to := range recipients {
		if err := client.Rcpt(to); err != nil {
			return goerr.Wrap(err, "SMTP RCPT TO rejected", goerr.V("recipient", to))
		}
	}

	w, err := client.Data()
	if err != nil {
		return goerr.Wrap(err, "SMTP DATA rejected")
	}
	if _, err := w.Write(msg); err != nil {
		return goerr.Wrap(err, "failed to write message")
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "message rejected")
	}

	return client.Quit()
}

func (s *SMTP) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: s.host,
		MinVersion: tls.VersionTLS12,
	}
}

// buildMessage renders a plain-text RFC 5322 message with a quoted-printable
// body. Headers are written in a fixed order.
func buildMessage(from mail.Address, n *model.Notification, now time.Time) ([]byte, error) {
	var b bytes.Buffer

	headers := [][2]string{
		{"From", from.String()},
		{"To", strings.Join(n.Recipients, ", ")},
		{"Subject", mime.QEncoding.Encode("utf-8", n.Subject)},
		{"Date", now.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
		{"Content-Transfer-Encoding", "quoted-printable"},
	}
	for _, h := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h[0], h[1])
	}
	b.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&b)
	body := strings.ReplaceAll(n.Body, "\r\n", "\n")
	if _, err := qp.Write([]byte(strings.ReplaceAll(body, "\n", "\r\n"))); err != nil {
		return nil, goerr.Wrap(err, "failed to encode message body")
	}
	if err := qp.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to encode message body")
	}

	return b.Bytes(), nil
}
