package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Report holds the report definition: which form, which submitters and
// how the daily table is ordered. Values can come from a YAML file and are
// overridden by flags.
type Report struct {
	ConfigPath        string
	FormID            string
	AllowedSubmitters string
	Sort              string
	Subject           string
}

// Flags returns CLI flags for report configuration
func (r *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the YAML report configuration",
			Category:    "Report",
			Sources:     cli.EnvVars("ODKPULSE_CONFIG"),
			Destination: &r.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "form",
			Usage:       "Form ID (xmlFormId) to aggregate",
			Category:    "Report",
			Sources:     cli.EnvVars("ODKPULSE_FORM_ID"),
			Destination: &r.FormID,
		},
		&cli.StringFlag{
			Name:        "allowed-submitters",
			Usage:       "Comma separated submitter names included in the report",
			Category:    "Report",
			Sources:     cli.EnvVars("ODKPULSE_ALLOWED_SUBMITTERS"),
			Destination: &r.AllowedSubmitters,
		},
		&cli.StringFlag{
			Name:        "sort",
			Usage:       "Order of the daily table rows (asc, desc)",
			Category:    "Report",
			Sources:     cli.EnvVars("ODKPULSE_SORT"),
			Destination: &r.Sort,
		},
		&cli.StringFlag{
			Name:        "subject",
			Usage:       "Notification subject",
			Category:    "Report",
			Sources:     cli.EnvVars("ODKPULSE_SUBJECT"),
			Destination: &r.Subject,
		},
	}
}

// Configure loads the YAML file, if any, applies flag overrides and
// validates the result
func (r *Report) Configure() (*model.ReportConfig, error) {
	cfg := &model.ReportConfig{}
	if r.ConfigPath != "" {
		loaded, err := LoadReportConfig(r.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if r.FormID != "" {
		cfg.FormID = types.FormID(r.FormID)
	}
	if allow := model.ParseAllowList(r.AllowedSubmitters); !allow.IsEmpty() {
		cfg.AllowedSubmitters = allow.Names()
	}
	if r.Sort != "" {
		cfg.Sort = types.SortOrder(r.Sort)
	}
	if r.Subject != "" {
		cfg.Subject = r.Subject
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid report configuration", goerr.V("path", r.ConfigPath))
	}
	return cfg, nil
}

// LoadReportConfig reads a report configuration from a YAML file
func LoadReportConfig(path string) (*model.ReportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.T(model.ErrTagConfig),
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file", goerr.V("path", path))
	}

	var cfg model.ReportConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.T(model.ErrTagConfig),
			goerr.V("path", path))
	}
	return &cfg, nil
}

// LogValue returns structured log value
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", r.ConfigPath),
		slog.String("form", r.FormID),
		slog.String("allowed_submitters", r.AllowedSubmitters),
		slog.String("sort", r.Sort),
	)
}
