package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bazi/pkg/domain/interfaces"
	"github.com/secmon-lab/bazi/pkg/domain/model"
)

const (
	serviceName        = "bazi"
	maxRequestBodySize = 1 << 20
)

// Config holds HTTP server settings
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// NewConfig creates a new HTTP server configuration
func NewConfig(addr string, requestTimeout time.Duration, allowedOrigins []string) *Config {
	return &Config{
		Addr:           addr,
		RequestTimeout: requestTimeout,
		AllowedOrigins: allowedOrigins,
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router        chi.Router
	baziHandler   *BaziHandler
	reportHandler *ReportHandler
}

// NewServer creates a new HTTP server. POST /report is only served when
// reportUC is given.
func NewServer(ctx context.Context, cfg *Config, baziUC interfaces.Bazi, reportUC interfaces.Report) (*Server, error) {
	if cfg == nil {
		return nil, goerr.New("server config is required")
	}
	if baziUC == nil {
		return nil, goerr.New("bazi use case is required")
	}

	router := chi.NewRouter()
	mw := NewMiddleware(cfg.AllowedOrigins)

	// Apply global middleware
	router.Use(RequestIDMiddleware)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(mw.CORS)
	if cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	baziHandler := NewBaziHandler(baziUC)

	// Health check
	router.Get("/health", handleHealth)

	router.Post("/bazi", baziHandler.HandleCalculate)

	var reportHandler *ReportHandler
	if reportUC != nil {
		reportHandler = NewReportHandler(reportUC)
		router.Post("/report", reportHandler.HandleGenerate)
	} else {
		ctxlog.From(ctx).Info("Report generation disabled, POST /report not registered")
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:        router,
		baziHandler:   baziHandler,
		reportHandler: reportHandler,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// decodeJSON decodes a request body holding exactly one JSON value
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(err, "invalid request body", goerr.T(model.ErrTagInvalidRequest))
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return goerr.New("unexpected data after JSON body", goerr.T(model.ErrTagInvalidRequest))
	}
	return nil
}

// rootMessage returns the message of the innermost cause of err
func rootMessage(err error) string {
	for {
		cause := errors.Unwrap(err)
		if cause == nil {
			return err.Error()
		}
		err = cause
	}
}

// writeError writes an error response. Every failure is reported the same
// way, with the root cause text as detail.
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	writeJSON(w, r, status, map[string]string{
		"detail": rootMessage(err),
	})
}
