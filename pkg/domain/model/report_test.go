package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bazi/pkg/domain/model"
)

func TestReportFormatIsValid(t *testing.T) {
	gt.True(t, model.ReportFormatText.IsValid())
	gt.True(t, model.ReportFormatVisual.IsValid())
	gt.False(t, model.ReportFormat("").IsValid())
	gt.False(t, model.ReportFormat("pdf").IsValid())
}

func TestReportCards(t *testing.T) {
	cards := model.ReportCards()
	gt.Equal(t, 8, len(cards))
	gt.Equal(t, "trading", cards[0].Key)
	gt.Equal(t, "family", cards[7].Key)

	// Every default color is an allowed color
	for _, card := range cards {
		gt.True(t, model.IsReportColor(card.Color))
	}

	// Returned slices are copies
	cards[0].Key = "changed"
	gt.Equal(t, "trading", model.ReportCards()[0].Key)
}

func TestIsReportColor(t *testing.T) {
	gt.Equal(t, 8, len(model.ReportColors()))
	gt.True(t, model.IsReportColor("pink"))
	gt.False(t, model.IsReportColor("black"))
	gt.False(t, model.IsReportColor(""))
}
