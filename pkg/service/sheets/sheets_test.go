package sheets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/service/aggregate"
	"github.com/secmon-lab/odkpulse/pkg/service/sheets"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

type fakeSheets struct {
	mu        sync.Mutex
	calls     []string
	worksheet string
	sheetID   int64
	batch     *gsheets.BatchUpdateSpreadsheetRequest
	failBatch bool
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/sheet-123"):
		f.calls = append(f.calls, "get")
		_ = json.NewEncoder(w).Encode(&gsheets.Spreadsheet{
			Sheets: []*gsheets.Sheet{
				{Properties: &gsheets.SheetProperties{SheetId: 99, Title: "Other"}},
				{Properties: &gsheets.SheetProperties{SheetId: f.sheetID, Title: f.worksheet}},
			},
		})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/sheet-123:batchUpdate"):
		f.calls = append(f.calls, "batchUpdate")
		if f.failBatch {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
			return
		}
		var req gsheets.BatchUpdateSpreadsheetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.batch = &req
		_ = json.NewEncoder(w).Encode(&gsheets.BatchUpdateSpreadsheetResponse{SpreadsheetId: "sheet-123"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func cellText(t *testing.T, cell *gsheets.CellData) string {
	t.Helper()
	gt.NotNil(t, cell.UserEnteredValue)
	gt.NotNil(t, cell.UserEnteredValue.StringValue)
	return *cell.UserEnteredValue.StringValue
}

func cellNumber(t *testing.T, cell *gsheets.CellData) float64 {
	t.Helper()
	gt.NotNil(t, cell.UserEnteredValue)
	gt.NotNil(t, cell.UserEnteredValue.NumberValue)
	return *cell.UserEnteredValue.NumberValue
}

func newSink(t *testing.T, fake *fakeSheets, opts ...sheets.Option) *sheets.Sink {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	opts = append(opts, sheets.WithClientOptions(
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	))
	sink, err := sheets.New(context.Background(), "sheet-123", opts...)
	gt.NoError(t, err)
	return sink
}

func testReport(t *testing.T) *model.Report {
	t.Helper()
	records := []model.RawSubmission{
		model.RawSubmission(`{"today":"2024-01-01","__system":{"submitterName":"alice"},"photos":{"photoQuantity":3,"photoSessionDuration":61}}`),
	}
	report, err := aggregate.Aggregate(records, model.NewAllowList("alice"))
	gt.NoError(t, err)
	return report
}

func TestSinkWrite(t *testing.T) {
	t.Run("clears and writes all tables in one batch", func(t *testing.T) {
		fake := &fakeSheets{worksheet: sheets.DefaultWorksheet}
		sink := newSink(t, fake)
		gt.NoError(t, sink.Write(context.Background(), testReport(t)))

		gt.Equal(t, fake.calls, []string{"get", "batchUpdate"})
		gt.NotNil(t, fake.batch)
		gt.A(t, fake.batch.Requests).Length(5)

		reset := fake.batch.Requests[0].UpdateCells
		gt.NotNil(t, reset)
		gt.Equal(t, reset.Fields, "userEnteredValue")
		gt.Equal(t, reset.Range.SheetId, int64(0))
		gt.A(t, reset.Rows).Length(0)

		// daily summary anchored at A2
		daily := fake.batch.Requests[1].UpdateCells
		gt.Equal(t, daily.Start.RowIndex, int64(1))
		gt.Equal(t, daily.Start.ColumnIndex, int64(0))
		gt.A(t, daily.Rows).Length(2)
		gt.Equal(t, cellText(t, daily.Rows[0].Values[0]), "date")
		gt.Equal(t, cellText(t, daily.Rows[0].Values[1]), "alice_count")
		gt.Equal(t, cellText(t, daily.Rows[1].Values[0]), "2024-01-01")
		gt.Equal(t, cellNumber(t, daily.Rows[1].Values[1]), 3.0)
		gt.Equal(t, cellText(t, daily.Rows[1].Values[2]), "0:01:01")

		// weekly average at E2, submitter totals at K2
		gt.Equal(t, fake.batch.Requests[2].UpdateCells.Start.ColumnIndex, int64(4))
		totals := fake.batch.Requests[4].UpdateCells
		gt.Equal(t, totals.Start.ColumnIndex, int64(10))
		gt.Equal(t, cellText(t, totals.Rows[0].Values[0]), "total")
		gt.Equal(t, cellText(t, totals.Rows[1].Values[0]), "total")
	})

	t.Run("custom worksheet and start cell", func(t *testing.T) {
		fake := &fakeSheets{worksheet: "Bob's", sheetID: 7}
		sink := newSink(t, fake, sheets.WithWorksheet("Bob's"), sheets.WithStartCell("B1"))
		gt.NoError(t, sink.Write(context.Background(), testReport(t)))

		gt.Equal(t, fake.batch.Requests[0].UpdateCells.Range.SheetId, int64(7))
		start := fake.batch.Requests[1].UpdateCells.Start
		gt.Equal(t, start.SheetId, int64(7))
		gt.Equal(t, start.RowIndex, int64(0))
		gt.Equal(t, start.ColumnIndex, int64(1))
	})

	t.Run("unknown worksheet is left alone", func(t *testing.T) {
		fake := &fakeSheets{worksheet: "Summary"}
		sink := newSink(t, fake, sheets.WithWorksheet("Missing"))
		err := sink.Write(context.Background(), testReport(t))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagConfig))
		gt.Equal(t, fake.calls, []string{"get"})
	})

	t.Run("API failure is a transport error", func(t *testing.T) {
		fake := &fakeSheets{worksheet: sheets.DefaultWorksheet, failBatch: true}
		sink := newSink(t, fake)
		err := sink.Write(context.Background(), testReport(t))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagTransport))
		gt.Equal(t, fake.calls, []string{"get", "batchUpdate"})
	})

	t.Run("location is the spreadsheet URL", func(t *testing.T) {
		sink := newSink(t, &fakeSheets{})
		gt.Equal(t, sink.Location(), "https://docs.google.com/spreadsheets/d/sheet-123")
		gt.Equal(t, sink.Name(), "sheets")
	})
}

func TestNew(t *testing.T) {
	_, err := sheets.New(context.Background(), "")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagConfig))
}

func TestSpreadsheetID(t *testing.T) {
	t.Run("bare ID", func(t *testing.T) {
		id, err := sheets.SpreadsheetID("abc123")
		gt.NoError(t, err)
		gt.Equal(t, id, "abc123")
	})

	t.Run("edit URL", func(t *testing.T) {
		id, err := sheets.SpreadsheetID("https://docs.google.com/spreadsheets/d/abc123/edit#gid=0")
		gt.NoError(t, err)
		gt.Equal(t, id, "abc123")
	})

	t.Run("URL without ID", func(t *testing.T) {
		_, err := sheets.SpreadsheetID("https://docs.google.com/spreadsheets/")
		gt.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := sheets.SpreadsheetID("  ")
		gt.Error(t, err)
	})
}

func TestSinkIntegration(t *testing.T) {
	spreadsheetID, ok := os.LookupEnv("TEST_SHEETS_SPREADSHEET_ID")
	if !ok {
		t.Skip("TEST_SHEETS_SPREADSHEET_ID is not set")
	}

	var opts []sheets.Option
	if worksheet := os.Getenv("TEST_SHEETS_WORKSHEET"); worksheet != "" {
		opts = append(opts, sheets.WithWorksheet(worksheet))
	}

	ctx := context.Background()
	sink, err := sheets.New(ctx, spreadsheetID, opts...)
	gt.NoError(t, err)
	gt.NoError(t, sink.Write(ctx, testReport(t)))
}
