package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/service/csv"
	"github.com/secmon-lab/odkpulse/pkg/service/tabular"
	"github.com/secmon-lab/odkpulse/pkg/service/xlsx"
	"github.com/urfave/cli/v3"
)

// Output holds the file outputs of a report run
type Output struct {
	CSVPath   string
	CSVAll    bool
	XLSXPath  string
	XLSXSheet string
	StartCell string
}

// Flags returns CLI flags for file outputs
func (o *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "csv",
			Usage:       "Write the daily summary to this CSV file",
			Category:    "Output",
			Sources:     cli.EnvVars("ODKPULSE_CSV"),
			Destination: &o.CSVPath,
		},
		&cli.BoolFlag{
			Name:        "csv-all",
			Usage:       "Also write the weekly and total tables next to the CSV file",
			Category:    "Output",
			Sources:     cli.EnvVars("ODKPULSE_CSV_ALL"),
			Destination: &o.CSVAll,
		},
		&cli.StringFlag{
			Name:        "xlsx",
			Usage:       "Write all tables to this Excel workbook",
			Category:    "Output",
			Sources:     cli.EnvVars("ODKPULSE_XLSX"),
			Destination: &o.XLSXPath,
		},
		&cli.StringFlag{
			Name:        "xlsx-sheet",
			Usage:       "Worksheet name in the Excel workbook",
			Category:    "Output",
			Value:       xlsx.DefaultSheet,
			Sources:     cli.EnvVars("ODKPULSE_XLSX_SHEET"),
			Destination: &o.XLSXSheet,
		},
		&cli.StringFlag{
			Name:        "start-cell",
			Usage:       "Top-left cell of the first table in workbooks and sheets",
			Category:    "Output",
			Value:       tabular.DefaultStartCell,
			Sources:     cli.EnvVars("ODKPULSE_START_CELL"),
			Destination: &o.StartCell,
		},
	}
}

// Configure returns the configured file sinks
func (o *Output) Configure(ctx context.Context) []interfaces.TableSink {
	var sinks []interfaces.TableSink
	if o.CSVPath != "" {
		sinks = append(sinks, csv.New(o.CSVPath, csv.WithCompanions(o.CSVAll)))
	}
	if o.XLSXPath != "" {
		sinks = append(sinks, xlsx.New(o.XLSXPath,
			xlsx.WithSheet(o.XLSXSheet),
			xlsx.WithStartCell(o.StartCell)))
	}
	return sinks
}

// IsConfigured checks if any file output is set
func (o *Output) IsConfigured() bool {
	return o.CSVPath != "" || o.XLSXPath != ""
}

// LogValue returns structured log value
func (o Output) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("csv", o.CSVPath),
		slog.Bool("csv_all", o.CSVAll),
		slog.String("xlsx", o.XLSXPath),
		slog.String("start_cell", o.StartCell),
	)
}
