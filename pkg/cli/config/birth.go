package config

import (
	"log/slog"

	"github.com/secmon-lab/bazi/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Birth holds the birth date/time given on the command line
type Birth struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Gender      string
	TimeUnknown bool
}

// Flags returns CLI flags for Birth input
func (b *Birth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "year",
			Usage:       "Birth year (Gregorian)",
			Category:    "Birth",
			Required:    true,
			Destination: &b.Year,
		},
		&cli.IntFlag{
			Name:        "month",
			Usage:       "Birth month (1-12)",
			Category:    "Birth",
			Required:    true,
			Destination: &b.Month,
		},
		&cli.IntFlag{
			Name:        "day",
			Usage:       "Birth day of month",
			Category:    "Birth",
			Required:    true,
			Destination: &b.Day,
		},
		&cli.IntFlag{
			Name:        "hour",
			Usage:       "Birth hour (0-23)",
			Category:    "Birth",
			Destination: &b.Hour,
		},
		&cli.StringFlag{
			Name:        "gender",
			Usage:       "Gender, echoed in the output",
			Category:    "Birth",
			Destination: &b.Gender,
		},
		&cli.BoolFlag{
			Name:        "time-unknown",
			Usage:       "Birth time is unknown; noon is used instead of --hour",
			Category:    "Birth",
			Destination: &b.TimeUnknown,
		},
	}
}

// Input converts the flags into a birth input
func (b *Birth) Input() model.BirthInput {
	return model.BirthInput{
		Year:        b.Year,
		Month:       b.Month,
		Day:         b.Day,
		Hour:        b.Hour,
		Gender:      b.Gender,
		TimeUnknown: b.TimeUnknown,
	}
}

// LogValue returns structured log value
func (b Birth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("year", b.Year),
		slog.Int("month", b.Month),
		slog.Int("day", b.Day),
		slog.Int("hour", b.Hour),
		slog.Bool("time_unknown", b.TimeUnknown),
	)
}
