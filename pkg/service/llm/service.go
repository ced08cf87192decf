package llm

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/bazi/pkg/domain/interfaces"
	"github.com/secmon-lab/bazi/pkg/domain/model"
)

// Error tags for categorization
var (
	ErrTagInvalidJSON     = goerr.NewTag("invalid_json")
	ErrTagMissingField    = goerr.NewTag("missing_field")
	ErrTagEmptyResponse   = goerr.NewTag("empty_response")
	ErrTagTemplateFailure = goerr.NewTag("template_failure")
)

const (
	timeKnownNote   = "出生时辰已知"
	timeUnknownNote = "出生时辰未知，时柱按正午推算，请弱化时柱相关的判断"
)

//go:embed templates/*.md
var templateFS embed.FS

var _ interfaces.ReportGenerator = (*ReportService)(nil)

// ReportService generates chart reports with an LLM
type ReportService struct {
	llmClient gollem.LLMClient
}

// ReportTemplateData contains data for the report templates
type ReportTemplateData struct {
	Year        string
	Month       string
	Day         string
	Hour        string
	Gender      string
	Rizhu       string
	Wuxing      string
	Xiyongshen  string
	EmotionText string
	Greeting    string
	TimeNote    string

	// Visual report only
	Cards    []model.ReportCardSpec
	Colors   []string
	MinScore int
	MaxScore int
}

// NewReportService creates a new ReportService instance
func NewReportService(llmClient gollem.LLMClient) *ReportService {
	return &ReportService{
		llmClient: llmClient,
	}
}

// GenerateReport writes the four-section markdown report
func (s *ReportService) GenerateReport(ctx context.Context, chart *model.Chart, input model.ReportInput) (string, error) {
	data, err := buildTemplateData(chart, input)
	if err != nil {
		return "", err
	}

	prompt, err := renderTemplate("report", data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to render report template",
			goerr.T(ErrTagTemplateFailure))
	}

	session, err := s.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM response")
	}

	text := strings.TrimSpace(strings.Join(response.Texts, ""))
	if text == "" {
		return "", goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse))
	}

	ctxlog.From(ctx).Debug("Generated report", "length", len(text))
	return text, nil
}

// GenerateVisualReport writes the structured card report. Cards come back
// in display order; a bad color falls back to the card's default and a
// score is clamped into range.
func (s *ReportService) GenerateVisualReport(ctx context.Context, chart *model.Chart, input model.ReportInput) (*model.VisualReport, error) {
	data, err := buildTemplateData(chart, input)
	if err != nil {
		return nil, err
	}
	data.Cards = model.ReportCards()
	data.Colors = model.ReportColors()
	data.MinScore = model.MinReportScore
	data.MaxScore = model.MaxReportScore

	prompt, err := renderTemplate("visual_report", data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render visual report template",
			goerr.T(ErrTagTemplateFailure))
	}

	// Create session with JSON content type
	session, err := s.llmClient.NewSession(ctx, gollem.WithSessionContentType(gollem.ContentTypeJSON))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate LLM response")
	}

	if len(response.Texts) == 0 || strings.TrimSpace(response.Texts[0]) == "" {
		return nil, goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse))
	}

	raw := stripCodeFence(response.Texts[0])
	var report model.VisualReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response as JSON",
			goerr.V("response", response.Texts[0]),
			goerr.T(ErrTagInvalidJSON))
	}

	return normalizeVisualReport(&report)
}

func normalizeVisualReport(report *model.VisualReport) (*model.VisualReport, error) {
	if strings.TrimSpace(report.Summary) == "" {
		return nil, goerr.New("LLM response missing summary",
			goerr.T(ErrTagMissingField),
			goerr.V("field", "summary"))
	}

	byKey := make(map[string]model.ReportCard, len(report.Cards))
	for _, card := range report.Cards {
		byKey[card.Key] = card
	}

	cards := make([]model.ReportCard, 0, len(report.Cards))
	for _, spec := range model.ReportCards() {
		card, ok := byKey[spec.Key]
		if !ok {
			return nil, goerr.New("LLM response missing card",
				goerr.T(ErrTagMissingField),
				goerr.V("field", "cards."+spec.Key))
		}
		if strings.TrimSpace(card.Content) == "" {
			return nil, goerr.New("LLM response missing card content",
				goerr.T(ErrTagMissingField),
				goerr.V("field", "cards."+spec.Key+".content"))
		}
		if card.Title == "" {
			card.Title = spec.Title
		}
		if !model.IsReportColor(card.Color) {
			card.Color = spec.Color
		}
		card.Score = clampScore(card.Score)
		cards = append(cards, card)
	}

	return &model.VisualReport{
		Summary:      report.Summary,
		SummaryScore: clampScore(report.SummaryScore),
		Cards:        cards,
	}, nil
}

func clampScore(score int) int {
	return min(max(score, model.MinReportScore), model.MaxReportScore)
}

// stripCodeFence removes a markdown code fence the model may add despite
// being told not to
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func buildTemplateData(chart *model.Chart, input model.ReportInput) (ReportTemplateData, error) {
	if chart == nil {
		return ReportTemplateData{}, goerr.New("chart is required")
	}

	wuxing, err := json.Marshal(chart.Tally)
	if err != nil {
		return ReportTemplateData{}, goerr.Wrap(err, "failed to encode element tally")
	}

	data := ReportTemplateData{
		Year:        chart.Pillars.Year.String(),
		Month:       chart.Pillars.Month.String(),
		Day:         chart.Pillars.Day.String(),
		Hour:        chart.Pillars.Hour.String(),
		Gender:      chart.Gender,
		Rizhu:       chart.DayMaster,
		Wuxing:      string(wuxing),
		Xiyongshen:  chart.Favorable.String(),
		EmotionText: input.EmotionText,
		TimeNote:    timeKnownNote,
	}
	if nickname := strings.TrimSpace(input.Nickname); nickname != "" {
		data.Greeting = "称呼：" + nickname
	}
	if input.Birth.TimeUnknown {
		data.TimeNote = timeUnknownNote
	}

	return data, nil
}

// renderTemplate renders templates/<name>.md
func renderTemplate(name string, data ReportTemplateData) (string, error) {
	// Load template from embedded filesystem
	templateContent, err := templateFS.ReadFile("templates/" + name + ".md")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read template", goerr.V("name", name))
	}

	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(string(templateContent))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse template", goerr.V("name", name))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute template", goerr.V("name", name))
	}

	return buf.String(), nil
}
