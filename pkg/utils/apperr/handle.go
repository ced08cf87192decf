package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bazi/pkg/domain/model"
)

// IsClientError reports whether err was caused by the caller's input
func IsClientError(err error) bool {
	return goerr.HasTag(err, model.ErrTagInvalidRequest) ||
		goerr.HasTag(err, model.ErrTagInvalidDate)
}

// Handle logs an application error. Errors caused by caller input are
// logged at warn level.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	if IsClientError(err) {
		logger.Warn("request rejected", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
