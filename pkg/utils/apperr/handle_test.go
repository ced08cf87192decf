package apperr_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bazi/pkg/domain/model"
	"github.com/secmon-lab/bazi/pkg/utils/apperr"
)

func TestIsClientError(t *testing.T) {
	gt.True(t, apperr.IsClientError(goerr.New("bad date", goerr.T(model.ErrTagInvalidDate))))
	gt.True(t, apperr.IsClientError(goerr.New("bad body", goerr.T(model.ErrTagInvalidRequest))))
	gt.False(t, apperr.IsClientError(goerr.New("boom", goerr.T(model.ErrTagConversionFailed))))
	gt.False(t, apperr.IsClientError(goerr.New("plain")))
}

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	apperr.Handle(ctx, goerr.New("bad date", goerr.T(model.ErrTagInvalidDate)))
	gt.S(t, buf.String()).Contains(`"level":"WARN"`)

	buf.Reset()
	apperr.Handle(ctx, goerr.New("boom"))
	gt.S(t, buf.String()).Contains(`"level":"ERROR"`)

	buf.Reset()
	apperr.Handle(ctx, nil)
	gt.Equal(t, 0, buf.Len())
}
