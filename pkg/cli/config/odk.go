package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/service/odk"
	"github.com/urfave/cli/v3"
)

// ODK holds the ODK Central connection settings
type ODK struct {
	BaseURL   string
	ProjectID int
	Email     string
	Password  string
	PageSize  int
	Timeout   time.Duration
}

// Flags returns CLI flags for ODK Central configuration
func (o *ODK) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "odk-url",
			Usage:       "ODK Central base URL, e.g. https://central.example.org",
			Category:    "ODK Central",
			Sources:     cli.EnvVars("ODKPULSE_ODK_URL"),
			Destination: &o.BaseURL,
		},
		&cli.IntFlag{
			Name:        "odk-project",
			Usage:       "ODK Central project ID",
			Category:    "ODK Central",
			Sources:     cli.EnvVars("ODKPULSE_ODK_PROJECT"),
			Destination: &o.ProjectID,
		},
		&cli.StringFlag{
			Name:        "odk-email",
			Usage:       "ODK Central account email",
			Category:    "ODK Central",
			Sources:     cli.EnvVars("ODKPULSE_ODK_EMAIL"),
			Destination: &o.Email,
		},
		&cli.StringFlag{
			Name:        "odk-password",
			Usage:       "ODK Central account password",
			Category:    "ODK Central",
			Sources:     cli.EnvVars("ODKPULSE_ODK_PASSWORD"),
			Destination: &o.Password,
		},
		&cli.IntFlag{
			Name:        "odk-page-size",
			Usage:       "Number of submissions fetched per OData page",
			Category:    "ODK Central",
			Value:       odk.DefaultPageSize,
			Sources:     cli.EnvVars("ODKPULSE_ODK_PAGE_SIZE"),
			Destination: &o.PageSize,
		},
		&cli.DurationFlag{
			Name:        "odk-timeout",
			Usage:       "Timeout of a single ODK Central request",
			Category:    "ODK Central",
			Value:       time.Minute,
			Sources:     cli.EnvVars("ODKPULSE_ODK_TIMEOUT"),
			Destination: &o.Timeout,
		},
	}
}

// Validate checks that every connection setting is present
func (o *ODK) Validate() error {
	switch {
	case o.BaseURL == "":
		return goerr.New("--odk-url is required", goerr.T(model.ErrTagConfig))
	case o.ProjectID <= 0:
		return goerr.New("--odk-project is required", goerr.T(model.ErrTagConfig), goerr.V("project", o.ProjectID))
	case o.Email == "" || o.Password == "":
		return goerr.New("--odk-email and --odk-password are required", goerr.T(model.ErrTagConfig))
	}
	return nil
}

// Configure creates the ODK Central client
func (o *ODK) Configure() (*odk.Client, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	return odk.New(o.BaseURL, o.ProjectID, o.Email, o.Password,
		odk.WithHTTPClient(&http.Client{Timeout: o.Timeout}),
		odk.WithPageSize(o.PageSize),
	)
}

// LogValue returns structured log value
func (o ODK) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", o.BaseURL),
		slog.Int("project", o.ProjectID),
		slog.String("email", o.Email),
		slog.Bool("has_password", o.Password != ""),
		slog.Int("page_size", o.PageSize),
		slog.Duration("timeout", o.Timeout),
	)
}
