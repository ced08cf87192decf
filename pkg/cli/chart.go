package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bazi/pkg/cli/config"
	"github.com/secmon-lab/bazi/pkg/domain/model"
	"github.com/secmon-lab/bazi/pkg/service/lunar"
	"github.com/secmon-lab/bazi/pkg/usecase"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// chartOutput is the printed form of a chart
type chartOutput struct {
	Year       string      `json:"year" yaml:"year"`
	Month      string      `json:"month" yaml:"month"`
	Day        string      `json:"day" yaml:"day"`
	Hour       string      `json:"hour" yaml:"hour"`
	Gender     string      `json:"gender" yaml:"gender"`
	Wuxing     model.Tally `json:"wuxing" yaml:"wuxing"`
	Rizhu      string      `json:"rizhu" yaml:"rizhu"`
	Xiyongshen string      `json:"xiyongshen" yaml:"xiyongshen"`
	Summary    string      `json:"summary" yaml:"summary"`
}

func cmdChart() *cli.Command {
	var (
		birthCfg config.Birth
		format   string
	)

	flags := joinFlags(
		birthCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Output format (json, yaml)",
				Value:       "json",
				Destination: &format,
			},
		},
	)

	return &cli.Command{
		Name:  "chart",
		Usage: "Calculate a chart for a birth date and print it",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctxlog.From(ctx).Debug("Calculating chart", slog.Any("birth", birthCfg))

			chart, err := usecase.NewBazi(lunar.New()).Calculate(ctx, birthCfg.Input())
			if err != nil {
				return err
			}

			return renderChart(c.Root().Writer, chart, format)
		},
	}
}

func renderChart(w io.Writer, chart *model.Chart, format string) error {
	out := chartOutput{
		Year:       chart.Pillars.Year.String(),
		Month:      chart.Pillars.Month.String(),
		Day:        chart.Pillars.Day.String(),
		Hour:       chart.Pillars.Hour.String(),
		Gender:     chart.Gender,
		Wuxing:     chart.Tally,
		Rizhu:      chart.DayMaster,
		Xiyongshen: chart.Favorable.String(),
		Summary:    chart.Summary(),
	}

	switch format {
	case "json", "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			return goerr.Wrap(err, "failed to encode chart as JSON")
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(out); err != nil {
			return goerr.Wrap(err, "failed to encode chart as YAML")
		}
		if err := encoder.Close(); err != nil {
			return goerr.Wrap(err, "failed to flush YAML output")
		}
	default:
		return goerr.New("invalid output format", goerr.V("format", format))
	}

	return nil
}
