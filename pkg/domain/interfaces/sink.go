package interfaces

//go:generate moq -out mocks/sink_mock.go -pkg mocks . TableSink Notifier

import (
	"context"

	"github.com/secmon-lab/odkpulse/pkg/domain/model"
)

// TableSink writes a report to an output such as a CSV file, a workbook or a
// Google Sheet. A write either fully succeeds or returns an error.
type TableSink interface {
	// Name identifies the sink in logs and run records
	Name() string
	// Location describes where the report was written, e.g. a path or URL
	Location() string
	Write(ctx context.Context, report *model.Report) error
}

// Notifier delivers a plain-text summary
type Notifier interface {
	Name() string
	Notify(ctx context.Context, n *model.Notification) error
}
