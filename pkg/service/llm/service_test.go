package llm_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bazi/pkg/domain/model"
	"github.com/secmon-lab/bazi/pkg/service/llm"
)

func newTestChart(timeUnknown bool) *model.Chart {
	input := model.BirthInput{Year: 2000, Month: 1, Day: 1, Hour: 12, Gender: "female", TimeUnknown: timeUnknown}
	pillars := model.Pillars{Year: "己卯", Month: "丙子", Day: "戊午", Hour: "戊午"}
	return model.NewChart(input, pillars)
}

// newMockClient returns a client answering every prompt with texts. Prompts
// and session options are recorded.
func newMockClient(prompts *[]string, jsonSessions *int, texts ...string) *mock.LLMClientMock {
	return &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			if jsonSessions != nil && len(options) > 0 {
				*jsonSessions++
			}
			return &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					if prompts != nil {
						for _, in := range input {
							if text, ok := in.(gollem.Text); ok {
								*prompts = append(*prompts, string(text))
							}
						}
					}
					return &gollem.Response{Texts: texts}, nil
				},
			}, nil
		},
	}
}

func visualResponse(t *testing.T, mutate func(*model.VisualReport)) string {
	t.Helper()
	report := model.VisualReport{
		Summary:      "土火偏旺，内心笃定",
		SummaryScore: 8,
	}
	for _, card := range model.ReportCards() {
		report.Cards = append(report.Cards, model.ReportCard{
			Key:     card.Key,
			Title:   card.Title,
			Content: card.Title + "的内容",
			Score:   7,
			Color:   card.Color,
		})
	}
	if mutate != nil {
		mutate(&report)
	}
	raw, err := json.Marshal(report)
	gt.NoError(t, err).Required()
	return string(raw)
}

func TestReportService_GenerateReport_Success(t *testing.T) {
	ctx := context.Background()

	var prompts []string
	service := llm.NewReportService(newMockClient(&prompts, nil, "## 一、能量原型\n", "厚土载物"))

	input := model.ReportInput{EmotionText: "最近工作压力很大", Nickname: "小明"}
	report, err := service.GenerateReport(ctx, newTestChart(false), input)
	gt.NoError(t, err).Required()
	gt.Equal(t, "## 一、能量原型\n厚土载物", report)

	gt.Equal(t, 1, len(prompts))
	prompt := prompts[0]
	gt.S(t, prompt).Contains("己卯年丙子月戊午日戊午时")
	gt.S(t, prompt).Contains("日主：戊")
	gt.S(t, prompt).Contains(`五行分布：{"木":1,"火":3,"土":3,"金":0,"水":1}`)
	gt.S(t, prompt).Contains("喜用神：金")
	gt.S(t, prompt).Contains("最近工作压力很大")
	gt.S(t, prompt).Contains("称呼：小明")
	gt.S(t, prompt).Contains("出生时辰已知")
	for _, section := range []string{"## 一、能量原型", "## 二、光与影", "## 三、当下回应", "## 四、行动处方"} {
		gt.S(t, prompt).Contains(section)
	}
}

func TestReportService_GenerateReport_TimeUnknownWithoutNickname(t *testing.T) {
	ctx := context.Background()

	var prompts []string
	service := llm.NewReportService(newMockClient(&prompts, nil, "report"))

	_, err := service.GenerateReport(ctx, newTestChart(true), model.ReportInput{
		Birth:       model.BirthInput{TimeUnknown: true},
		EmotionText: "迷茫",
	})
	gt.NoError(t, err).Required()
	gt.Equal(t, 1, len(prompts))
	gt.S(t, prompts[0]).Contains("出生时辰未知")
	gt.False(t, strings.Contains(prompts[0], "称呼："))
}

func TestReportService_GenerateReport_EmptyResponse(t *testing.T) {
	ctx := context.Background()
	service := llm.NewReportService(newMockClient(nil, nil, "  "))

	report, err := service.GenerateReport(ctx, newTestChart(false), model.ReportInput{EmotionText: "迷茫"})
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagEmptyResponse)).True()
	gt.Equal(t, "", report)
}

func TestReportService_GenerateReport_SessionFailure(t *testing.T) {
	ctx := context.Background()
	mockClient := &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return nil, goerr.New("quota exceeded")
		},
	}
	service := llm.NewReportService(mockClient)

	_, err := service.GenerateReport(ctx, newTestChart(false), model.ReportInput{EmotionText: "迷茫"})
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("failed to create LLM session")
}

func TestReportService_GenerateReport_NilChart(t *testing.T) {
	service := llm.NewReportService(newMockClient(nil, nil, "report"))

	_, err := service.GenerateReport(context.Background(), nil, model.ReportInput{EmotionText: "迷茫"})
	gt.Error(t, err)
}

func TestReportService_GenerateVisualReport_Success(t *testing.T) {
	ctx := context.Background()

	var prompts []string
	jsonSessions := 0
	service := llm.NewReportService(newMockClient(&prompts, &jsonSessions, visualResponse(t, nil)))

	report, err := service.GenerateVisualReport(ctx, newTestChart(false), model.ReportInput{EmotionText: "迷茫"})
	gt.NoError(t, err).Required()
	gt.Equal(t, 1, jsonSessions)
	gt.Equal(t, "土火偏旺，内心笃定", report.Summary)
	gt.Equal(t, 8, report.SummaryScore)
	gt.Equal(t, 8, len(report.Cards))
	for i, card := range model.ReportCards() {
		gt.Equal(t, card.Key, report.Cards[i].Key)
		gt.Equal(t, card.Color, report.Cards[i].Color)
	}

	gt.Equal(t, 1, len(prompts))
	for _, card := range model.ReportCards() {
		gt.S(t, prompts[0]).Contains(`"key": "` + card.Key + `"`)
	}
	gt.S(t, prompts[0]).Contains("purple, blue, green, yellow, cyan, red, orange, pink")
	gt.S(t, prompts[0]).Contains("评分范围：1-10分")
}

func TestReportService_GenerateVisualReport_Normalizes(t *testing.T) {
	ctx := context.Background()

	raw := visualResponse(t, func(r *model.VisualReport) {
		r.SummaryScore = 42
		// Reverse the order and break one card
		for i, j := 0, len(r.Cards)-1; i < j; i, j = i+1, j-1 {
			r.Cards[i], r.Cards[j] = r.Cards[j], r.Cards[i]
		}
		r.Cards[0].Color = "black"
		r.Cards[0].Score = 0
		r.Cards[0].Title = ""
	})
	service := llm.NewReportService(newMockClient(nil, nil, "```json\n"+raw+"\n```"))

	report, err := service.GenerateVisualReport(ctx, newTestChart(false), model.ReportInput{EmotionText: "迷茫"})
	gt.NoError(t, err).Required()
	gt.Equal(t, 10, report.SummaryScore)

	// The broken card was "family", now last in display order
	family := report.Cards[len(report.Cards)-1]
	gt.Equal(t, "family", family.Key)
	gt.Equal(t, "orange", family.Color)
	gt.Equal(t, 1, family.Score)
	gt.Equal(t, "六亲关系", family.Title)
	gt.Equal(t, "trading", report.Cards[0].Key)
}

func TestReportService_GenerateVisualReport_InvalidJSON(t *testing.T) {
	ctx := context.Background()
	service := llm.NewReportService(newMockClient(nil, nil, "not valid json"))

	report, err := service.GenerateVisualReport(ctx, newTestChart(false), model.ReportInput{EmotionText: "迷茫"})
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagInvalidJSON)).True()
	gt.Nil(t, report)
}

func TestReportService_GenerateVisualReport_MissingCard(t *testing.T) {
	ctx := context.Background()

	raw := visualResponse(t, func(r *model.VisualReport) {
		r.Cards = r.Cards[:len(r.Cards)-1]
	})
	service := llm.NewReportService(newMockClient(nil, nil, raw))

	report, err := service.GenerateVisualReport(ctx, newTestChart(false), model.ReportInput{EmotionText: "迷茫"})
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagMissingField)).True()
	values := goerr.Values(err)
	gt.V(t, values["field"]).Equal("cards.family")
	gt.Nil(t, report)
}

func TestReportService_GenerateVisualReport_MissingSummary(t *testing.T) {
	ctx := context.Background()

	raw := visualResponse(t, func(r *model.VisualReport) {
		r.Summary = ""
	})
	service := llm.NewReportService(newMockClient(nil, nil, raw))

	_, err := service.GenerateVisualReport(ctx, newTestChart(false), model.ReportInput{EmotionText: "迷茫"})
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagMissingField)).True()
	gt.V(t, goerr.Values(err)["field"]).Equal("summary")
}

func TestReportService_GenerateVisualReport_EmptyResponse(t *testing.T) {
	ctx := context.Background()
	service := llm.NewReportService(newMockClient(nil, nil))

	_, err := service.GenerateVisualReport(ctx, newTestChart(false), model.ReportInput{EmotionText: "迷茫"})
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagEmptyResponse)).True()
}
