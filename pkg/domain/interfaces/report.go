package interfaces

import (
	"context"

	"github.com/secmon-lab/bazi/pkg/domain/model"
)

// ReportGenerator writes reports for a computed chart
type ReportGenerator interface {
	// GenerateReport returns a markdown report
	GenerateReport(ctx context.Context, chart *model.Chart, input model.ReportInput) (string, error)

	// GenerateVisualReport returns a scored card report
	GenerateVisualReport(ctx context.Context, chart *model.Chart, input model.ReportInput) (*model.VisualReport, error)
}

// Report defines the interface for report generation
type Report interface {
	Generate(ctx context.Context, input model.ReportInput) (*model.Report, error)
}
