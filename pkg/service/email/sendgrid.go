package email

import (
	"context"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridEndpoint = "/v3/mail/send"

// SendGrid sends notifications through the SendGrid v3 API
type SendGrid struct {
	client   *sendgrid.Client
	fromName string
	from     string
}

// SendGridOption configures the SendGrid notifier
type SendGridOption func(*sendGridConfig)

type sendGridConfig struct {
	host     string
	fromName string
}

// WithSendGridHost overrides the API host
func WithSendGridHost(host string) SendGridOption {
	return func(c *sendGridConfig) {
		c.host = host
	}
}

// WithSendGridFromName sets the display name of the sender
func WithSendGridFromName(name string) SendGridOption {
	return func(c *sendGridConfig) {
		c.fromName = name
	}
}

// NewSendGrid creates a SendGrid notifier
func NewSendGrid(apiKey, from string, opts ...SendGridOption) (*SendGrid, error) {
	if apiKey == "" {
		return nil, goerr.New("SendGrid API key is required", goerr.T(model.ErrTagConfig))
	}
	if from == "" {
		return nil, goerr.New("sender address is required", goerr.T(model.ErrTagConfig))
	}

	var cfg sendGridConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	request := sendgrid.GetRequest(apiKey, sendGridEndpoint, cfg.host)
	request.Method = http.MethodPost

	return &SendGrid{
		client:   &sendgrid.Client{Request: request},
		fromName: cfg.fromName,
		from:     from,
	}, nil
}

// Name implements interfaces.Notifier
func (s *SendGrid) Name() string {
	return "sendgrid"
}

// Notify implements interfaces.Notifier. All recipients share one
// personalization so they see each other, as with the SMTP notifier.
func (s *SendGrid) Notify(ctx context.Context, n *model.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if len(n.Recipients) == 0 {
		return goerr.New("no email recipients", goerr.T(model.ErrTagConfig))
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(s.fromName, s.from))
	message.Subject = n.Subject

	personalization := mail.NewPersonalization()
	for _, to := range n.Recipients {
		personalization.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/plain", n.Body))

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return goerr.Wrap(err, "failed to call SendGrid",
			goerr.T(model.ErrTagTransport),
			goerr.V("recipients", n.Recipients))
	}
	if resp.StatusCode >= 300 {
		return goerr.New("SendGrid rejected the message",
			goerr.T(model.ErrTagTransport),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", resp.Body))
	}

	ctxlog.From(ctx).Info("Email sent via SendGrid",
		"recipients", strings.Join(n.Recipients, ", "),
		"subject", n.Subject)
	return nil
}
