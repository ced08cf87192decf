package interfaces

import (
	"context"

	"github.com/secmon-lab/bazi/pkg/domain/model"
)

// PillarConverter converts a Gregorian date/time into the four pillars
type PillarConverter interface {
	Convert(ctx context.Context, year, month, day, hour, minute, second int) (*model.Pillars, error)
}

// Bazi defines the interface for chart calculation
type Bazi interface {
	// Calculate computes the four-pillar chart and elemental analysis
	Calculate(ctx context.Context, input model.BirthInput) (*model.Chart, error)
}
