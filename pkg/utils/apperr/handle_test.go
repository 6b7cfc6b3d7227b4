package apperr_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/utils/apperr"
)

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	t.Run("error level", func(t *testing.T) {
		buf.Reset()
		apperr.Handle(ctx, goerr.New("boom"))

		var entry map[string]any
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		gt.Equal(t, entry["level"], "ERROR")
	})

	t.Run("run in progress is a warning", func(t *testing.T) {
		buf.Reset()
		apperr.Handle(ctx, goerr.Wrap(model.ErrRunInProgress, "scheduled run"))

		var entry map[string]any
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		gt.Equal(t, entry["level"], "WARN")
	})

	t.Run("nil is ignored", func(t *testing.T) {
		buf.Reset()
		apperr.Handle(ctx, nil)
		gt.Equal(t, buf.Len(), 0)
	})
}

func TestStatus(t *testing.T) {
	gt.Equal(t, apperr.Status(model.ErrRunInProgress), http.StatusConflict)
	gt.Equal(t, apperr.Status(goerr.Wrap(model.ErrRunNotFound, "lookup")), http.StatusNotFound)
	gt.Equal(t, apperr.Status(goerr.New("bad", goerr.T(model.ErrTagConfig))), http.StatusBadRequest)
	gt.Equal(t, apperr.Status(goerr.New("down", goerr.T(model.ErrTagTransport))), http.StatusBadGateway)
	gt.Equal(t, apperr.Status(goerr.New("other")), http.StatusInternalServerError)
}
