package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bazi/pkg/cli/config"
	controller "github.com/secmon-lab/bazi/pkg/controller/http"
	"github.com/secmon-lab/bazi/pkg/domain/interfaces"
	"github.com/secmon-lab/bazi/pkg/service/llm"
	"github.com/secmon-lab/bazi/pkg/service/lunar"
	"github.com/secmon-lab/bazi/pkg/usecase"
	"github.com/secmon-lab/bazi/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		geminiCfg config.Gemini
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: joinFlags(
			serverCfg.Flags(),
			geminiCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := serverCfg.Validate(); err != nil {
				return err
			}

			logger.Info("Starting bazi server",
				slog.Any("server", serverCfg),
				slog.Any("gemini", geminiCfg),
			)

			baziUC := usecase.NewBazi(lunar.New())

			// Report generation is optional and needs Gemini
			var reportUC interfaces.Report
			if llmClient := geminiCfg.ConfigureOptional(ctx, logger); llmClient != nil {
				if closer, ok := llmClient.(interface{ Close() error }); ok {
					defer func() {
						if err := closer.Close(); err != nil {
							logger.Warn("Failed to close LLM client", slog.Any("error", err))
						}
					}()
				}
				reportUC = usecase.NewReport(baziUC, llm.NewReportService(llmClient))
			}

			httpCfg := controller.NewConfig(serverCfg.Addr, serverCfg.RequestTimeout, serverCfg.CORSOrigins)
			server, err := controller.NewServer(ctx, httpCfg, baziUC, reportUC)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "HTTP server error")
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				apperr.Handle(ctx, err)
				return err
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
