package model

import "github.com/secmon-lab/bazi/pkg/domain/types"

// unknownTimeHour is the hour used when the birth time is unknown
const unknownTimeHour = 12

// BirthInput is a request for a chart
type BirthInput struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Gender      string
	TimeUnknown bool
}

// ConversionHour returns the hour passed to the converter. Unknown birth
// times are anchored at midday.
func (b BirthInput) ConversionHour() int {
	if b.TimeUnknown {
		return unknownTimeHour
	}
	return b.Hour
}

// Chart is the computed four-pillar chart
type Chart struct {
	Pillars   Pillars
	Gender    string
	Tally     Tally
	DayMaster string
	Favorable types.Element
}

// NewChart builds a chart from converted pillars
func NewChart(input BirthInput, pillars Pillars) *Chart {
	analysis := Analyze(pillars)
	return &Chart{
		Pillars:   pillars,
		Gender:    input.Gender,
		Tally:     analysis.Tally,
		DayMaster: analysis.DayMaster,
		Favorable: analysis.Favorable,
	}
}

// Summary returns the element balance summary of the chart
func (c *Chart) Summary() string {
	return c.Tally.Describe()
}
