package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/service/sheets"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Sheets holds the Google Sheets output settings
type Sheets struct {
	Spreadsheet     string
	Worksheet       string
	CredentialsFile string
}

// Flags returns CLI flags for Google Sheets configuration
func (s *Sheets) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sheet",
			Usage:       "Google Sheets URL or spreadsheet ID to write the report to",
			Category:    "Google Sheets",
			Sources:     cli.EnvVars("ODKPULSE_SHEET"),
			Destination: &s.Spreadsheet,
		},
		&cli.StringFlag{
			Name:        "sheet-worksheet",
			Usage:       "Worksheet (tab) name",
			Category:    "Google Sheets",
			Value:       sheets.DefaultWorksheet,
			Sources:     cli.EnvVars("ODKPULSE_SHEET_WORKSHEET"),
			Destination: &s.Worksheet,
		},
		&cli.StringFlag{
			Name:        "google-credentials",
			Usage:       "Service account key file. Application default credentials are used when empty",
			Category:    "Google Sheets",
			Sources:     cli.EnvVars("ODKPULSE_GOOGLE_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS"),
			Destination: &s.CredentialsFile,
		},
	}
}

// Configure creates the Google Sheets sink. fallback is the sheet reference
// from the report configuration file, used when --sheet is empty. It returns
// nil when no sheet is configured.
func (s *Sheets) Configure(ctx context.Context, fallback, startCell string) (*sheets.Sink, error) {
	ref := s.Spreadsheet
	if ref == "" {
		ref = fallback
	}
	if ref == "" {
		return nil, nil
	}

	id, err := sheets.SpreadsheetID(ref)
	if err != nil {
		return nil, err
	}

	opts := []sheets.Option{
		sheets.WithWorksheet(s.Worksheet),
		sheets.WithStartCell(startCell),
	}
	if s.CredentialsFile != "" {
		opts = append(opts, sheets.WithClientOptions(option.WithCredentialsFile(s.CredentialsFile)))
	}

	sink, err := sheets.New(ctx, id, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure google sheets", goerr.V("spreadsheet", id))
	}
	return sink, nil
}

// LogValue returns structured log value
func (s Sheets) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("spreadsheet", s.Spreadsheet),
		slog.String("worksheet", s.Worksheet),
		slog.Bool("has_credentials_file", s.CredentialsFile != ""),
	)
}
