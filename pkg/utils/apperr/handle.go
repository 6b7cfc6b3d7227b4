// Package apperr reports application errors that have no caller to return to.
package apperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
)

// Handle logs err. A run rejected because another run is in flight is only
// a warning.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	logger := ctxlog.From(ctx)
	if errors.Is(err, model.ErrRunInProgress) {
		logger.Warn("run skipped", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}

// Status maps an error to the HTTP status returned by the status API
func Status(err error) int {
	switch {
	case errors.Is(err, model.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, model.ErrRunNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, model.ErrTagConfig):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.ErrTagTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
