package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bazi/pkg/domain/interfaces"
	"github.com/secmon-lab/bazi/pkg/domain/model"
	"github.com/secmon-lab/bazi/pkg/utils/apperr"
)

// baziRequest is the body of POST /bazi
type baziRequest struct {
	Year        *int    `json:"year"`
	Month       *int    `json:"month"`
	Day         *int    `json:"day"`
	Hour        *int    `json:"hour"`
	Gender      *string `json:"gender"`
	TimeUnknown bool    `json:"time_unknown"`
}

func (req *baziRequest) toInput() (model.BirthInput, error) {
	required := []struct {
		name    string
		missing bool
	}{
		{"year", req.Year == nil},
		{"month", req.Month == nil},
		{"day", req.Day == nil},
		{"hour", req.Hour == nil},
		{"gender", req.Gender == nil},
	}
	for _, field := range required {
		if field.missing {
			return model.BirthInput{}, goerr.New("field required: "+field.name,
				goerr.T(model.ErrTagInvalidRequest),
				goerr.V("field", field.name))
		}
	}

	return model.BirthInput{
		Year:        *req.Year,
		Month:       *req.Month,
		Day:         *req.Day,
		Hour:        *req.Hour,
		Gender:      *req.Gender,
		TimeUnknown: req.TimeUnknown,
	}, nil
}

// baziResponse is the body of a successful POST /bazi
type baziResponse struct {
	Year       string      `json:"year"`
	Month      string      `json:"month"`
	Day        string      `json:"day"`
	Hour       string      `json:"hour"`
	Gender     string      `json:"gender"`
	Wuxing     model.Tally `json:"wuxing"`
	Rizhu      string      `json:"rizhu"`
	Xiyongshen string      `json:"xiyongshen"`
}

func newBaziResponse(chart *model.Chart) *baziResponse {
	return &baziResponse{
		Year:       chart.Pillars.Year.String(),
		Month:      chart.Pillars.Month.String(),
		Day:        chart.Pillars.Day.String(),
		Hour:       chart.Pillars.Hour.String(),
		Gender:     chart.Gender,
		Wuxing:     chart.Tally,
		Rizhu:      chart.DayMaster,
		Xiyongshen: chart.Favorable.String(),
	}
}

// BaziHandler serves chart calculation requests
type BaziHandler struct {
	baziUC interfaces.Bazi
}

// NewBaziHandler creates a new BaziHandler
func NewBaziHandler(baziUC interfaces.Bazi) *BaziHandler {
	return &BaziHandler{
		baziUC: baziUC,
	}
}

// HandleCalculate handles POST /bazi
func (h *BaziHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req baziRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apperr.Handle(ctx, err)
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	input, err := req.toInput()
	if err != nil {
		apperr.Handle(ctx, err)
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	chart, err := h.baziUC.Calculate(ctx, input)
	if err != nil {
		apperr.Handle(ctx, err)
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, r, http.StatusOK, newBaziResponse(chart))
}
