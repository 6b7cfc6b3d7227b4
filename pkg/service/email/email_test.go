package email_test

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"net/textproto"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/service/email"
)

func testNotification() *model.Notification {
	return &model.Notification{
		Subject:    "ODK Summary Update 📸",
		Body:       "📸 Total Image Count Summary:\n• alice: 12 images\n",
		Recipients: []string{"a@example.com", "b@example.com"},
	}
}

func TestBuildMessage(t *testing.T) {
	now := time.Date(2024, 1, 2, 17, 30, 0, 0, time.UTC)
	from := mail.Address{Name: "ODK Pulse", Address: "pulse@example.com"}

	msg, err := email.BuildMessage(from, testNotification(), now)
	gt.NoError(t, err)

	parsed, err := mail.ReadMessage(strings.NewReader(string(msg)))
	gt.NoError(t, err)

	gt.Equal(t, parsed.Header.Get("From"), `"ODK Pulse" <pulse@example.com>`)
	gt.Equal(t, parsed.Header.Get("To"), "a@example.com, b@example.com")
	gt.Equal(t, parsed.Header.Get("Content-Type"), "text/plain; charset=UTF-8")
	gt.Equal(t, parsed.Header.Get("Date"), "Tue, 02 Jan 2024 17:30:00 +0000")

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	gt.NoError(t, err)
	gt.Equal(t, subject, "ODK Summary Update 📸")

	body, err := io.ReadAll(quotedprintable.NewReader(parsed.Body))
	gt.NoError(t, err)
	gt.Equal(t, string(body), "📸 Total Image Count Summary:\r\n• alice: 12 images\r\n")
}

// fakeSMTP accepts one session and records the envelope and message
type fakeSMTP struct {
	listener net.Listener
	wg       sync.WaitGroup

	mu   sync.Mutex
	from string
	rcpt []string
	data string
}

func newFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	gt.NoError(t, err)

	f := &fakeSMTP{listener: l}
	f.wg.Add(1)
	go f.serve()
	t.Cleanup(func() {
		_ = l.Close()
		f.wg.Wait()
	})
	return f
}

func (f *fakeSMTP) port() int {
	return f.listener.Addr().(*net.TCPAddr).Port
}

func (f *fakeSMTP) serve() {
	defer f.wg.Done()
	conn, err := f.listener.Accept()
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		cmd := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(cmd, "EHLO"):
			_ = tp.PrintfLine("250-localhost")
			_ = tp.PrintfLine("250 HELP")
		case strings.HasPrefix(cmd, "MAIL FROM:"):
			f.mu.Lock()
			f.from = line[len("MAIL FROM:"):]
			f.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case strings.HasPrefix(cmd, "RCPT TO:"):
			f.mu.Lock()
			f.rcpt = append(f.rcpt, line[len("RCPT TO:"):])
			f.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case cmd == "DATA":
			_ = tp.PrintfLine("354 go ahead")
			data, err := io.ReadAll(tp.DotReader())
			if err != nil {
				return
			}
			f.mu.Lock()
			f.data = string(data)
			f.mu.Unlock()
			_ = tp.PrintfLine("250 queued")
		case cmd == "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 not implemented")
		}
	}
}

func TestSMTPNotify(t *testing.T) {
	t.Run("delivers to every recipient", func(t *testing.T) {
		srv := newFakeSMTP(t)
		notifier, err := email.NewSMTP("127.0.0.1", srv.port(), "pulse@example.com",
			email.WithSecurity(email.SecurityNone))
		gt.NoError(t, err)
		gt.Equal(t, notifier.Name(), "smtp")

		gt.NoError(t, notifier.Notify(context.Background(), testNotification()))

		srv.mu.Lock()
		defer srv.mu.Unlock()
		gt.Equal(t, srv.from, "<pulse@example.com>")
		gt.Equal(t, srv.rcpt, []string{"<a@example.com>", "<b@example.com>"})
		gt.True(t, strings.Contains(srv.data, "To: a@example.com, b@example.com"))
	})

	t.Run("STARTTLS is required by default", func(t *testing.T) {
		srv := newFakeSMTP(t)
		notifier, err := email.NewSMTP("127.0.0.1", srv.port(), "pulse@example.com")
		gt.NoError(t, err)

		err = notifier.Notify(context.Background(), testNotification())
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagTransport))
	})

	t.Run("no recipients", func(t *testing.T) {
		notifier, err := email.NewSMTP("127.0.0.1", 25, "pulse@example.com")
		gt.NoError(t, err)
		n := testNotification()
		n.Recipients = nil
		gt.Error(t, notifier.Notify(context.Background(), n))
	})
}

func TestNewSMTP(t *testing.T) {
	t.Run("invalid sender", func(t *testing.T) {
		_, err := email.NewSMTP("smtp.example.com", 587, "not an address")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagConfig))
	})

	t.Run("missing host", func(t *testing.T) {
		_, err := email.NewSMTP("", 587, "pulse@example.com")
		gt.Error(t, err)
	})

	t.Run("invalid security", func(t *testing.T) {
		_, err := email.NewSMTP("smtp.example.com", 587, "pulse@example.com",
			email.WithSecurity(email.Security("ssl3")))
		gt.Error(t, err)
	})
}

func TestSendGridNotify(t *testing.T) {
	t.Run("posts one message with all recipients", func(t *testing.T) {
		var (
			mu      sync.Mutex
			payload map[string]any
			auth    string
			path    string
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()
			path = r.URL.Path
			auth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&payload)
			w.WriteHeader(http.StatusAccepted)
		}))
		t.Cleanup(srv.Close)

		notifier, err := email.NewSendGrid("sg-key", "pulse@example.com",
			email.WithSendGridHost(srv.URL),
			email.WithSendGridFromName("ODK Pulse"))
		gt.NoError(t, err)
		gt.Equal(t, notifier.Name(), "sendgrid")
		gt.NoError(t, notifier.Notify(context.Background(), testNotification()))

		mu.Lock()
		defer mu.Unlock()
		gt.Equal(t, path, "/v3/mail/send")
		gt.Equal(t, auth, "Bearer sg-key")
		gt.Equal(t, payload["subject"], any("ODK Summary Update 📸"))

		personalizations := payload["personalizations"].([]any)
		gt.A(t, personalizations).Length(1)
		tos := personalizations[0].(map[string]any)["to"].([]any)
		gt.A(t, tos).Length(2)
	})

	t.Run("rejected message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
		}))
		t.Cleanup(srv.Close)

		notifier, err := email.NewSendGrid("bad", "pulse@example.com", email.WithSendGridHost(srv.URL))
		gt.NoError(t, err)
		err = notifier.Notify(context.Background(), testNotification())
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagTransport))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := email.NewSendGrid("", "pulse@example.com")
		gt.Error(t, err)
	})
}

func TestSMTPIntegration(t *testing.T) {
	host, ok := os.LookupEnv("TEST_SMTP_HOST")
	if !ok {
		t.Skip("TEST_SMTP_HOST is not set")
	}
	port, err := strconv.Atoi(os.Getenv("TEST_SMTP_PORT"))
	gt.NoError(t, err)

	notifier, err := email.NewSMTP(host, port, os.Getenv("TEST_SMTP_FROM"),
		email.WithAuth(os.Getenv("TEST_SMTP_USERNAME"), os.Getenv("TEST_SMTP_PASSWORD")))
	gt.NoError(t, err)

	n := testNotification()
	n.Recipients = model.ParseRecipients(os.Getenv("TEST_SMTP_TO"))
	gt.NoError(t, notifier.Notify(context.Background(), n))
}
