package model

import "slices"

// ReportFormat selects the shape of a generated report
type ReportFormat string

const (
	// ReportFormatText is a free-form markdown report with four sections
	ReportFormatText ReportFormat = "text"
	// ReportFormatVisual is a structured summary with one scored card per
	// life area
	ReportFormatVisual ReportFormat = "visual"
)

// IsValid checks if the format is known
func (f ReportFormat) IsValid() bool {
	return f == ReportFormatText || f == ReportFormatVisual
}

// Score bounds for visual report cards and summary
const (
	MinReportScore = 1
	MaxReportScore = 10
)

// ReportInput is a request for a generated report
type ReportInput struct {
	Birth       BirthInput
	EmotionText string
	Nickname    string
	Format      ReportFormat
}

// ReportCardSpec describes one card a visual report must contain
type ReportCardSpec struct {
	Key   string
	Title string
	Color string
}

var reportCards = []ReportCardSpec{
	{Key: "trading", Title: "交易运势", Color: "purple"},
	{Key: "personality", Title: "性格分析", Color: "blue"},
	{Key: "career", Title: "事业行业", Color: "green"},
	{Key: "fengshui", Title: "发展风水", Color: "cyan"},
	{Key: "wealth", Title: "财富层级", Color: "yellow"},
	{Key: "marriage", Title: "婚姻情感", Color: "pink"},
	{Key: "health", Title: "身体健康", Color: "red"},
	{Key: "family", Title: "六亲关系", Color: "orange"},
}

var reportColors = []string{"purple", "blue", "green", "yellow", "cyan", "red", "orange", "pink"}

// ReportCards returns the cards of a visual report in display order
func ReportCards() []ReportCardSpec {
	cards := make([]ReportCardSpec, len(reportCards))
	copy(cards, reportCards)
	return cards
}

// ReportColors returns the colors a card may use
func ReportColors() []string {
	colors := make([]string, len(reportColors))
	copy(colors, reportColors)
	return colors
}

// IsReportColor checks if color is allowed for a card
func IsReportColor(color string) bool {
	return slices.Contains(reportColors, color)
}

// ReportCard is one scored life area of a visual report
type ReportCard struct {
	Key     string `json:"key" yaml:"key"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Score   int    `json:"score" yaml:"score"`
	Color   string `json:"color" yaml:"color"`
}

// VisualReport is the structured report
type VisualReport struct {
	Summary      string       `json:"summary" yaml:"summary"`
	SummaryScore int          `json:"summary_score" yaml:"summary_score"`
	Cards        []ReportCard `json:"cards" yaml:"cards"`
}

// Report is a generated report together with the chart it was based on.
// Exactly one of Text and Visual is set, according to Format.
type Report struct {
	Format ReportFormat
	Chart  *Chart
	Text   string
	Visual *VisualReport
}
