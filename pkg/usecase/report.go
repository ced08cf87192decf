package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bazi/pkg/domain/interfaces"
	"github.com/secmon-lab/bazi/pkg/domain/model"
)

var _ interfaces.Report = (*Report)(nil)

// Report generates a written report for a birth chart
type Report struct {
	baziUC    interfaces.Bazi
	generator interfaces.ReportGenerator
}

// NewReport creates a new Report use case
func NewReport(baziUC interfaces.Bazi, generator interfaces.ReportGenerator) *Report {
	return &Report{
		baziUC:    baziUC,
		generator: generator,
	}
}

// Generate computes the chart and asks the generator for a report in the
// requested format. An empty format means text.
func (r *Report) Generate(ctx context.Context, input model.ReportInput) (*model.Report, error) {
	if r.baziUC == nil || r.generator == nil {
		return nil, goerr.New("report generation is not configured")
	}

	if input.Format == "" {
		input.Format = model.ReportFormatText
	}
	if !input.Format.IsValid() {
		return nil, goerr.New("invalid report format: "+string(input.Format),
			goerr.T(model.ErrTagInvalidRequest))
	}
	if strings.TrimSpace(input.EmotionText) == "" {
		return nil, goerr.New("field required: emotion_text",
			goerr.T(model.ErrTagInvalidRequest))
	}

	chart, err := r.baziUC.Calculate(ctx, input.Birth)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to calculate chart for report")
	}

	report := &model.Report{
		Format: input.Format,
		Chart:  chart,
	}

	switch input.Format {
	case model.ReportFormatVisual:
		visual, err := r.generator.GenerateVisualReport(ctx, chart, input)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to generate visual report",
				goerr.V("rizhu", chart.DayMaster))
		}
		report.Visual = visual
	default:
		text, err := r.generator.GenerateReport(ctx, chart, input)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to generate report",
				goerr.V("rizhu", chart.DayMaster))
		}
		report.Text = text
	}

	ctxlog.From(ctx).Info("Generated report",
		"format", input.Format,
		"rizhu", chart.DayMaster,
		"xiyongshen", chart.Favorable.String(),
	)

	return report, nil
}
