package lunar

import (
	"context"
	"fmt"

	"github.com/6tail/lunar-go/SolarUtil"
	"github.com/6tail/lunar-go/calendar"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bazi/pkg/domain/interfaces"
	"github.com/secmon-lab/bazi/pkg/domain/model"
)

var _ interfaces.PillarConverter = (*Converter)(nil)

// Converter converts solar dates to eight-char pillars with lunar-go
type Converter struct{}

// New creates a new Converter
func New() *Converter {
	return &Converter{}
}

// Convert returns the Year, Month, Day and Hour pillars of the given
// Gregorian date/time
func (c *Converter) Convert(ctx context.Context, year, month, day, hour, minute, second int) (pillars *model.Pillars, err error) {
	if err := validateDateTime(year, month, day, hour, minute, second); err != nil {
		return nil, err
	}

	// lunar-go panics on dates it cannot represent
	defer func() {
		if r := recover(); r != nil {
			pillars = nil
			err = goerr.New(fmt.Sprintf("%v", r),
				goerr.T(model.ErrTagConversionFailed),
				goerr.V("year", year),
				goerr.V("month", month),
				goerr.V("day", day),
				goerr.V("hour", hour),
			)
		}
	}()

	eightChar := calendar.NewSolar(year, month, day, hour, minute, second).GetLunar().GetEightChar()
	pillars = &model.Pillars{
		Year:  model.Pillar(eightChar.GetYear()),
		Month: model.Pillar(eightChar.GetMonth()),
		Day:   model.Pillar(eightChar.GetDay()),
		Hour:  model.Pillar(eightChar.GetTime()),
	}

	ctxlog.From(ctx).Debug("Converted solar date",
		"year", year,
		"month", month,
		"day", day,
		"hour", hour,
		"pillars", pillars.List(),
	)

	return pillars, nil
}

// lastDayOfMonth uses the converter's own calendar: Julian leap years
// before 1600 and a shortened October 1582.
func lastDayOfMonth(year, month int) int {
	if year == 1582 && month == 10 {
		return 31
	}
	return SolarUtil.GetDaysOfMonth(year, month)
}

// isGregorianGap reports the ten days dropped by the Gregorian reform
func isGregorianGap(year, month, day int) bool {
	return year == 1582 && month == 10 && day > 4 && day < 15
}

func validateDateTime(year, month, day, hour, minute, second int) error {
	if month < 1 || month > 12 {
		return goerr.New(fmt.Sprintf("wrong month %d", month),
			goerr.T(model.ErrTagInvalidDate), goerr.V("month", month))
	}
	if day < 1 || day > lastDayOfMonth(year, month) || isGregorianGap(year, month, day) {
		return goerr.New(fmt.Sprintf("wrong day %d", day),
			goerr.T(model.ErrTagInvalidDate), goerr.V("year", year), goerr.V("month", month), goerr.V("day", day))
	}
	if hour < 0 || hour > 23 {
		return goerr.New(fmt.Sprintf("wrong hour %d", hour),
			goerr.T(model.ErrTagInvalidDate), goerr.V("hour", hour))
	}
	if minute < 0 || minute > 59 {
		return goerr.New(fmt.Sprintf("wrong minute %d", minute),
			goerr.T(model.ErrTagInvalidDate), goerr.V("minute", minute))
	}
	if second < 0 || second > 59 {
		return goerr.New(fmt.Sprintf("wrong second %d", second),
			goerr.T(model.ErrTagInvalidDate), goerr.V("second", second))
	}
	return nil
}
