package http

import (
	"net/http"

	"github.com/secmon-lab/bazi/pkg/domain/interfaces"
	"github.com/secmon-lab/bazi/pkg/domain/model"
	"github.com/secmon-lab/bazi/pkg/utils/apperr"
)

// reportRequest is the body of POST /report: the birth fields of POST /bazi
// plus the caller's current concern
type reportRequest struct {
	baziRequest
	EmotionText string `json:"emotion_text"`
	Nickname    string `json:"nickname"`
	Format      string `json:"format"`
}

type reportResponse struct {
	Success bool                `json:"success"`
	Report  string              `json:"report,omitempty"`
	Visual  *model.VisualReport `json:"visual,omitempty"`
	Bazi    *baziResponse       `json:"bazi,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// ReportHandler serves report generation requests
type ReportHandler struct {
	reportUC interfaces.Report
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportUC interfaces.Report) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
	}
}

// HandleGenerate handles POST /report
func (h *ReportHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	birth, err := req.toInput()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	report, err := h.reportUC.Generate(ctx, model.ReportInput{
		Birth:       birth,
		EmotionText: req.EmotionText,
		Nickname:    req.Nickname,
		Format:      model.ReportFormat(req.Format),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := &reportResponse{
		Success: true,
		Report:  report.Text,
		Visual:  report.Visual,
	}
	if report.Chart != nil {
		resp.Bazi = newBaziResponse(report.Chart)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// fail writes a report error. Caller mistakes are 400; generation
// failures are 500.
func (h *ReportHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	apperr.Handle(r.Context(), err)

	status := http.StatusInternalServerError
	if apperr.IsClientError(err) {
		status = http.StatusBadRequest
	}
	writeJSON(w, r, status, &reportResponse{
		Success: false,
		Error:   rootMessage(err),
	})
}
