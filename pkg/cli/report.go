package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bazi/pkg/cli/config"
	"github.com/secmon-lab/bazi/pkg/domain/interfaces"
	"github.com/secmon-lab/bazi/pkg/domain/model"
	"github.com/secmon-lab/bazi/pkg/service/llm"
	"github.com/secmon-lab/bazi/pkg/service/lunar"
	"github.com/secmon-lab/bazi/pkg/usecase"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func cmdReport() *cli.Command {
	var (
		birthCfg    config.Birth
		geminiCfg   config.Gemini
		emotionText string
		nickname    string
		visual      bool
		format      string
	)

	flags := joinFlags(
		birthCfg.Flags(),
		geminiCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "emotion",
				Aliases:     []string{"e"},
				Usage:       "What is on your mind right now",
				Required:    true,
				Destination: &emotionText,
			},
			&cli.StringFlag{
				Name:        "nickname",
				Usage:       "How the report should address you",
				Destination: &nickname,
			},
			&cli.BoolFlag{
				Name:        "visual",
				Usage:       "Generate the scored card report instead of the markdown report",
				Destination: &visual,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Output format of the card report (json, yaml)",
				Value:       "json",
				Destination: &format,
			},
		},
	)

	return &cli.Command{
		Name:  "report",
		Usage: "Generate a written report for a birth chart with Gemini",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Debug("Generating report",
				slog.Any("birth", birthCfg),
				slog.Any("gemini", geminiCfg),
			)

			if !geminiCfg.IsConfigured() {
				return goerr.New("report generation requires Gemini, set --gemini-project or BAZI_GEMINI_PROJECT")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if closer, ok := llmClient.(interface{ Close() error }); ok {
				defer func() {
					if err := closer.Close(); err != nil {
						logger.Warn("Failed to close LLM client", slog.Any("error", err))
					}
				}()
			}

			reportUC := usecase.NewReport(usecase.NewBazi(lunar.New()), llm.NewReportService(llmClient))

			input := model.ReportInput{
				Birth:       birthCfg.Input(),
				EmotionText: emotionText,
				Nickname:    nickname,
				Format:      model.ReportFormatText,
			}
			if visual {
				input.Format = model.ReportFormatVisual
			}

			return runReport(ctx, c.Root().Writer, reportUC, input, format)
		},
	}
}

func runReport(ctx context.Context, w io.Writer, reportUC interfaces.Report, input model.ReportInput, format string) error {
	report, err := reportUC.Generate(ctx, input)
	if err != nil {
		return err
	}

	if report.Visual == nil {
		if _, err := fmt.Fprintln(w, report.Text); err != nil {
			return goerr.Wrap(err, "failed to write report")
		}
		return nil
	}

	switch format {
	case "json", "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report.Visual); err != nil {
			return goerr.Wrap(err, "failed to encode report as JSON")
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(report.Visual); err != nil {
			return goerr.Wrap(err, "failed to encode report as YAML")
		}
		if err := encoder.Close(); err != nil {
			return goerr.Wrap(err, "failed to flush YAML output")
		}
	default:
		return goerr.New("invalid output format", goerr.V("format", format))
	}

	return nil
}
