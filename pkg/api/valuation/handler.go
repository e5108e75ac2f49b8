// Package valuation exposes the DCF engine over HTTP.
package valuation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"dcf_lite/pkg/core/assumption"
	"dcf_lite/pkg/core/config"
	"dcf_lite/pkg/core/ingest"
	"dcf_lite/pkg/core/projection"
	"dcf_lite/pkg/core/report"
	"dcf_lite/pkg/core/utils"
	coreValuation "dcf_lite/pkg/core/valuation"
)

// MaxYears bounds the forecast horizon a request may ask for.
const MaxYears = 50

const maxBody = 1 << 20

type Handler struct {
	years  int
	steps  []float64
	export report.Options
	logger *logrus.Logger
}

func NewHandler(cfg config.Config, logger *logrus.Logger) *Handler {
	return &Handler{
		years: cfg.Projection.Years,
		steps: cfg.Sensitivity.Steps,
		export: report.Options{
			Creator:    cfg.Export.Creator,
			FilePrefix: cfg.Export.FilePrefix,
		},
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/valuation", h.Value).Methods("POST", "OPTIONS")
	router.HandleFunc("/valuation/sensitivity", h.Sensitivity).Methods("POST", "OPTIONS")
	router.HandleFunc("/valuation/report", h.Report).Methods("POST", "OPTIONS")
	router.HandleFunc("/valuation/wacc", h.WACC).Methods("POST", "OPTIONS")
	router.HandleFunc("/ingest/parse", h.Parse).Methods("POST", "OPTIONS")
}

// CORSMiddleware allows the static calculator page to call the API from any
// origin and answers preflight requests.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Value runs the full analysis for a form payload.
func (h *Handler) Value(w http.ResponseWriter, r *http.Request) {
	an, ok := h.analyze(w, r)
	if !ok {
		return
	}
	h.logger.WithFields(logrus.Fields{
		"run_id":  an.RunID,
		"price":   an.Valuation.SharePrice,
		"verdict": an.Investment.Verdict.Label,
	}).Info("valuation computed")
	h.writeJSON(w, http.StatusOK, an)
}

// Sensitivity returns only the price grid for a form payload.
func (h *Handler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	a, years, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	grid, err := coreValuation.BuildSensitivity(a, years, h.steps)
	if err != nil {
		h.fail(w, err, "sensitivity failed")
		return
	}
	h.writeJSON(w, http.StatusOK, grid)
}

// Report renders the analysis as xlsx (default), html or md.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "html" && format != "md" {
		http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		return
	}

	an, ok := h.analyze(w, r)
	if !ok {
		return
	}
	log := h.logger.WithFields(logrus.Fields{"run_id": an.RunID, "format": format})

	switch format {
	case "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		if _, err := io.WriteString(w, report.Markdown(an)); err != nil {
			log.WithError(err).Error("failed to write markdown")
			return
		}
	case "html":
		html, err := report.HTML(an)
		if err != nil {
			h.fail(w, err, "html render failed")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := io.WriteString(w, html); err != nil {
			log.WithError(err).Error("failed to write html")
			return
		}
	default:
		name := report.FileName(h.export.FilePrefix, time.Now())
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if err := report.WriteXLSX(w, an, h.export); err != nil {
			log.WithError(err).Error("xlsx export failed")
			return
		}
	}
	log.Info("report exported")
}

// WACC builds a discount rate from CAPM inputs and the capital structure.
func (h *Handler) WACC(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var in coreValuation.WACCInput
	if _, err := utils.SmartParse(string(body), &in); err != nil {
		h.logger.WithError(err).Warn("failed to decode wacc request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusOK, coreValuation.CalculateWACC(in))
}

type ParseRequest struct {
	Text string `json:"text"`
}

type ParseResponse struct {
	Rows   int                `json:"rows"`
	Grid   ingest.Grid        `json:"grid"`
	Fields map[string]float64 `json:"fields"`
}

// Parse turns pasted spreadsheet text or an HTML table into a grid and the
// form fields it can prefill. The body is either {"text": "..."} or the raw
// clipboard contents.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	text := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req ParseRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
		text = req.Text
	}

	grid := ingest.ParseClipboard(text)
	h.logger.WithField("rows", len(grid)).Debug("clipboard parsed")
	h.writeJSON(w, http.StatusOK, ParseResponse{
		Rows:   len(grid),
		Grid:   grid,
		Fields: assumption.PrefilledFields(grid),
	})
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) (*coreValuation.Analysis, bool) {
	a, years, ok := h.decodeForm(w, r)
	if !ok {
		return nil, false
	}
	an, err := coreValuation.Analyze(a, coreValuation.Options{Years: years, SensitivitySteps: h.steps})
	if err != nil {
		h.fail(w, err, "valuation failed")
		return nil, false
	}
	return an, true
}

func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request) (assumption.AssumptionSet, int, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return assumption.AssumptionSet{}, 0, false
	}
	var form FormRequest
	strategy, err := utils.SmartParse(string(body), &form)
	if err != nil {
		h.logger.WithError(err).Warn("failed to decode valuation form")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return assumption.AssumptionSet{}, 0, false
	}
	if strategy != utils.StrategyJSON {
		h.logger.WithField("strategy", strategy).Debug("form decoded leniently")
	}

	years := int(form.Years.Float(float64(h.years)))
	if years <= 0 || years > MaxYears {
		http.Error(w, fmt.Sprintf("years must be between 1 and %d", MaxYears), http.StatusBadRequest)
		return assumption.AssumptionSet{}, 0, false
	}
	return form.Assumptions(), years, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, msg string) {
	if assumption.IsValidationError(err) || errors.Is(err, projection.ErrInvalidYears) {
		h.logger.WithError(err).Warn(msg)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.logger.WithError(err).Error(msg)
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WithError(err).Error("failed to encode response")
	}
}
