// Package sheets writes reports to a Google Sheets worksheet
package sheets

import (
	"context"
	"net/url"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/service/tabular"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultWorksheet is the worksheet receiving the summary tables
const DefaultWorksheet = "Summary"

// cellFields limits cell updates to values, keeping formatting
const cellFields = "userEnteredValue"

// Sink replaces the content of one worksheet with the report tables
type Sink struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	startCell     string
}

type config struct {
	worksheet     string
	startCell     string
	clientOptions []option.ClientOption
}

// Option configures the Sink
type Option func(*config)

// WithWorksheet sets the target worksheet name
func WithWorksheet(name string) Option {
	return func(c *config) {
		c.worksheet = name
	}
}

// WithStartCell sets the top-left cell of the first table
func WithStartCell(cell string) Option {
	return func(c *config) {
		c.startCell = cell
	}
}

// WithClientOptions passes options such as credentials or an endpoint to the
// Sheets API client
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *config) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// New creates a Sheets sink for the spreadsheet
func New(ctx context.Context, spreadsheetID string, opts ...Option) (*Sink, error) {
	if spreadsheetID == "" {
		return nil, goerr.New("spreadsheet ID is required", goerr.T(model.ErrTagConfig))
	}

	cfg := config{
		worksheet: DefaultWorksheet,
		startCell: tabular.DefaultStartCell,
		clientOptions: []option.ClientOption{
			option.WithScopes(sheets.SpreadsheetsScope),
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	svc, err := sheets.NewService(ctx, cfg.clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Sheets client",
			goerr.T(model.ErrTagConfig),
			goerr.V("spreadsheet_id", spreadsheetID))
	}

	return &Sink{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     cfg.worksheet,
		startCell:     cfg.startCell,
	}, nil
}

// Name implements interfaces.TableSink
func (s *Sink) Name() string {
	return "sheets"
}

// Location implements interfaces.TableSink and returns the spreadsheet URL
func (s *Sink) Location() string {
	return "https://docs.google.com/spreadsheets/d/" + s.spreadsheetID
}

// Write implements interfaces.TableSink. Clearing the worksheet and writing
// every table go in one spreadsheet batch update, so the sheet is either
// fully replaced or left untouched.
func (s *Sink) Write(ctx context.Context, report *model.Report) error {
	regions, err := tabular.Layout(report.Grids(), s.startCell)
	if err != nil {
		return err
	}

	sheetID, err := s.sheetID(ctx)
	if err != nil {
		return err
	}

	requests := make([]*sheets.Request, 0, len(regions)+1)
	requests = append(requests, &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Range: &sheets.GridRange{
				SheetId:         sheetID,
				ForceSendFields: []string{"SheetId"},
			},
			Fields: cellFields,
		},
	})
	for _, region := range regions {
		requests = append(requests, &sheets.Request{
			UpdateCells: &sheets.UpdateCellsRequest{
				Start: &sheets.GridCoordinate{
					SheetId:         sheetID,
					RowIndex:        int64(region.Row - 1),
					ColumnIndex:     int64(region.Col - 1),
					ForceSendFields: []string{"SheetId", "RowIndex", "ColumnIndex"},
				},
				Rows:   rowData(region.Values()),
				Fields: cellFields,
			},
		})
	}

	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do(); err != nil {
		return goerr.Wrap(err, "failed to update worksheet",
			goerr.T(model.ErrTagTransport),
			goerr.V("spreadsheet_id", s.spreadsheetID),
			goerr.V("worksheet", s.worksheet))
	}

	ctxlog.From(ctx).Info("Google Sheet updated",
		"spreadsheet_id", s.spreadsheetID,
		"worksheet", s.worksheet,
		"range", tabular.Bounds(regions))
	return nil
}

// sheetID resolves the numeric ID of the target worksheet
func (s *Sink) sheetID(ctx context.Context) (int64, error) {
	spreadsheet, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).Do()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get spreadsheet",
			goerr.T(model.ErrTagTransport),
			goerr.V("spreadsheet_id", s.spreadsheetID))
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == s.worksheet {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, goerr.New("worksheet not found",
		goerr.T(model.ErrTagConfig),
		goerr.V("spreadsheet_id", s.spreadsheetID),
		goerr.V("worksheet", s.worksheet))
}

// rowData converts region values to cells. Text stays literal text.
func rowData(values [][]any) []*sheets.RowData {
	rows := make([]*sheets.RowData, 0, len(values))
	for _, row := range values {
		cells := make([]*sheets.CellData, 0, len(row))
		for _, v := range row {
			cells = append(cells, &sheets.CellData{UserEnteredValue: cellValue(v)})
		}
		rows = append(rows, &sheets.RowData{Values: cells})
	}
	return rows
}

func cellValue(v any) *sheets.ExtendedValue {
	switch x := v.(type) {
	case int:
		n := float64(x)
		return &sheets.ExtendedValue{NumberValue: &n}
	case float64:
		return &sheets.ExtendedValue{NumberValue: &x}
	default:
		str := tabular.CellString(v)
		return &sheets.ExtendedValue{StringValue: &str}
	}
}

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL. A bare
// ID is returned unchanged.
func SpreadsheetID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		if s == "" {
			return "", goerr.New("empty spreadsheet reference", goerr.T(model.ErrTagConfig))
		}
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", goerr.Wrap(err, "invalid spreadsheet URL",
			goerr.T(model.ErrTagConfig),
			goerr.V("url", s))
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "d" && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}
	return "", goerr.New("spreadsheet URL has no ID",
		goerr.T(model.ErrTagConfig),
		goerr.V("url", s))
}
