package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bazi/pkg/domain/interfaces"
	"github.com/secmon-lab/bazi/pkg/domain/model"
)

var _ interfaces.Bazi = (*Bazi)(nil)

// Bazi implements chart calculation on top of a pillar converter
type Bazi struct {
	converter interfaces.PillarConverter
}

// NewBazi creates a new Bazi use case
func NewBazi(converter interfaces.PillarConverter) *Bazi {
	return &Bazi{
		converter: converter,
	}
}

// Calculate converts the birth date/time into four pillars and analyzes
// their elements
func (b *Bazi) Calculate(ctx context.Context, input model.BirthInput) (*model.Chart, error) {
	logger := ctxlog.From(ctx)

	if b.converter == nil {
		return nil, goerr.New("pillar converter is not configured")
	}

	hour := input.ConversionHour()
	pillars, err := b.converter.Convert(ctx, input.Year, input.Month, input.Day, hour, 0, 0)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to convert birth date",
			goerr.V("year", input.Year),
			goerr.V("month", input.Month),
			goerr.V("day", input.Day),
			goerr.V("hour", hour),
			goerr.V("timeUnknown", input.TimeUnknown),
		)
	}
	if pillars == nil {
		return nil, goerr.New("converter returned no pillars")
	}

	chart := model.NewChart(input, *pillars)

	logger.Debug("Calculated chart",
		"pillars", pillars.List(),
		"rizhu", chart.DayMaster,
		"xiyongshen", chart.Favorable.String(),
	)

	return chart, nil
}
