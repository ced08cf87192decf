package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr           string
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Category:    "Server",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("BAZI_ADDR"),
			Destination: &s.Addr,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Maximum time to handle a single request (0 disables)",
			Category:    "Server",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("BAZI_REQUEST_TIMEOUT"),
			Destination: &s.RequestTimeout,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin, repeatable ('*' allows any)",
			Category:    "Server",
			Value:       []string{"*"},
			Sources:     cli.EnvVars("BAZI_CORS_ORIGINS"),
			Destination: &s.CORSOrigins,
		},
	}
}

// Validate validates the server configuration
func (s *Server) Validate() error {
	if s.Addr == "" {
		return goerr.New("server address is required")
	}
	if s.RequestTimeout < 0 {
		return goerr.New("request timeout must not be negative",
			goerr.V("timeout", s.RequestTimeout))
	}
	return nil
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Duration("request_timeout", s.RequestTimeout),
		slog.Any("cors_origins", s.CORSOrigins),
	)
}
