package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bazi/pkg/utils/logging"
)

func TestParseLogLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}

	for input, expected := range testCases {
		t.Run(input, func(t *testing.T) {
			gt.Equal(t, expected, logging.ParseLogLevel(input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("json")
	gt.NoError(t, err)
	gt.Equal(t, logging.FormatJSON, f)

	f, err = logging.ParseFormat("")
	gt.NoError(t, err)
	gt.Equal(t, logging.FormatAuto, f)

	_, err = logging.ParseFormat("xml")
	gt.Error(t, err)
}

func TestNewLoggerNonTerminalIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(slog.LevelInfo, &buf)

	logger.Debug("hidden")
	logger.Info("visible", "key", "value")

	gt.S(t, buf.String()).Contains(`"msg":"visible"`)
	gt.S(t, buf.String()).Contains(`"key":"value"`)
	gt.False(t, strings.Contains(buf.String(), "hidden"))
}
