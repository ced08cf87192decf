package model

import "github.com/secmon-lab/bazi/pkg/domain/types"

// weakDayMasterThreshold is the count at or below which the day master
// element is considered weak
const weakDayMasterThreshold = 2

// Analysis is the elemental analysis of a set of pillars
type Analysis struct {
	Tally     Tally
	DayMaster string
	Favorable types.Element
}

// CountElements tallies the element of every symbol in the pillars.
// Unrecognized symbols are skipped.
func CountElements(pillars Pillars) Tally {
	var tally Tally
	for _, symbol := range pillars.Symbols() {
		if e, ok := types.ElementOf(symbol); ok {
			tally.Add(e)
		}
	}
	return tally
}

// FavorableElement selects the favorable element (xiyongshen). A weak day
// master element (count <= 2) is favorable itself; otherwise the weakest
// element is.
func FavorableElement(tally Tally, dayMaster string) types.Element {
	if e, ok := types.ElementOf(dayMaster); ok && tally.Count(e) <= weakDayMasterThreshold {
		return e
	}
	return tally.Weakest()
}

// Analyze runs the tally and favorable element selection over the pillars
func Analyze(pillars Pillars) *Analysis {
	tally := CountElements(pillars)
	dayMaster := pillars.DayMaster()

	return &Analysis{
		Tally:     tally,
		DayMaster: dayMaster,
		Favorable: FavorableElement(tally, dayMaster),
	}
}
