package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/service/email"
	"github.com/urfave/cli/v3"
)

// Email holds the email notification settings. Mail goes through SendGrid
// when an API key is given and through SMTP otherwise.
type Email struct {
	Recipients     string
	From           string
	FromName       string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	SMTPSecurity   string
	SendGridAPIKey string
}

// Flags returns CLI flags for email configuration
func (e *Email) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "email-to",
			Usage:       "Comma separated recipients of the summary email",
			Category:    "Email",
			Sources:     cli.EnvVars("ODKPULSE_EMAIL_TO"),
			Destination: &e.Recipients,
		},
		&cli.StringFlag{
			Name:        "email-from",
			Usage:       "Sender address",
			Category:    "Email",
			Sources:     cli.EnvVars("ODKPULSE_EMAIL_FROM"),
			Destination: &e.From,
		},
		&cli.StringFlag{
			Name:        "email-from-name",
			Usage:       "Sender display name",
			Category:    "Email",
			Value:       "odkpulse",
			Sources:     cli.EnvVars("ODKPULSE_EMAIL_FROM_NAME"),
			Destination: &e.FromName,
		},
		&cli.StringFlag{
			Name:        "smtp-host",
			Usage:       "SMTP server host",
			Category:    "Email",
			Sources:     cli.EnvVars("ODKPULSE_SMTP_HOST"),
			Destination: &e.SMTPHost,
		},
		&cli.IntFlag{
			Name:        "smtp-port",
			Usage:       "SMTP server port",
			Category:    "Email",
			Value:       587,
			Sources:     cli.EnvVars("ODKPULSE_SMTP_PORT"),
			Destination: &e.SMTPPort,
		},
		&cli.StringFlag{
			Name:        "smtp-user",
			Usage:       "SMTP login user",
			Category:    "Email",
			Sources:     cli.EnvVars("ODKPULSE_SMTP_USER"),
			Destination: &e.SMTPUser,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "SMTP login password (an app password for Gmail)",
			Category:    "Email",
			Sources:     cli.EnvVars("ODKPULSE_SMTP_PASSWORD"),
			Destination: &e.SMTPPassword,
		},
		&cli.StringFlag{
			Name:        "smtp-security",
			Usage:       "SMTP connection security (starttls, tls, none)",
			Category:    "Email",
			Value:       string(email.SecurityStartTLS),
			Sources:     cli.EnvVars("ODKPULSE_SMTP_SECURITY"),
			Destination: &e.SMTPSecurity,
		},
		&cli.StringFlag{
			Name:        "sendgrid-api-key",
			Usage:       "SendGrid API key, used instead of SMTP when set",
			Category:    "Email",
			Sources:     cli.EnvVars("ODKPULSE_SENDGRID_API_KEY"),
			Destination: &e.SendGridAPIKey,
		},
	}
}

// IsConfigured checks if email notification is enabled
func (e *Email) IsConfigured() bool {
	return e.Recipients != ""
}

// RecipientList returns the parsed recipients
func (e *Email) RecipientList() []string {
	return model.ParseRecipients(e.Recipients)
}

// Configure creates the email notifier, or nil when no recipient is set
func (e *Email) Configure() (interfaces.Notifier, error) {
	if !e.IsConfigured() {
		return nil, nil
	}
	if e.From == "" {
		return nil, goerr.New("--email-from is required to send email", goerr.T(model.ErrTagConfig))
	}

	if e.SendGridAPIKey != "" {
		sg, err := email.NewSendGrid(e.SendGridAPIKey, e.From, email.WithSendGridFromName(e.FromName))
		if err != nil {
			return nil, err
		}
		return sg, nil
	}

	if e.SMTPHost == "" {
		return nil, goerr.New("--smtp-host or --sendgrid-api-key is required to send email", goerr.T(model.ErrTagConfig))
	}
	opts := []email.SMTPOption{
		email.WithSecurity(email.Security(e.SMTPSecurity)),
		email.WithFromName(e.FromName),
	}
	if e.SMTPUser != "" {
		opts = append(opts, email.WithAuth(e.SMTPUser, e.SMTPPassword))
	}
	smtp, err := email.NewSMTP(e.SMTPHost, e.SMTPPort, e.From, opts...)
	if err != nil {
		return nil, err
	}
	return smtp, nil
}

// LogValue returns structured log value
func (e Email) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("recipients", len(e.RecipientList())),
		slog.String("from", e.From),
		slog.String("smtp_host", e.SMTPHost),
		slog.Int("smtp_port", e.SMTPPort),
		slog.String("smtp_security", e.SMTPSecurity),
		slog.Bool("has_smtp_password", e.SMTPPassword != ""),
		slog.Bool("has_sendgrid_api_key", e.SendGridAPIKey != ""),
	)
}
