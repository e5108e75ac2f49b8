package valuation

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"dcf_lite/pkg/core/assumption"
	"dcf_lite/pkg/core/config"
	coreValuation "dcf_lite/pkg/core/valuation"
)

const formBody = `{
	"units": "1000", "price": 50, "unitGrowth": "5", "priceGrowth": "2",
	"cogsPct": "40", "sgaPct": "20", "daPct": "5", "taxRate": "25",
	"capexPct": "6", "nwcPct": "10", "interestExpense": "500",
	"netBorrowing": "", "netDebt": "5000", "sharesOutstanding": "100",
	"discountRate": "9", "marketPrice": "150", "tvMethod": "growth",
	"tvInput": "2.5", "midYear": false, "modelType": "unlevered"
}`

func newRouter() *mux.Router {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	h := NewHandler(config.Default(), logger)
	router := mux.NewRouter()
	router.Use(CORSMiddleware)
	h.RegisterRoutes(router.PathPrefix("/api").Subrouter())
	return router
}

func post(router http.Handler, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestFormRequest_Assumptions(t *testing.T) {
	var form FormRequest
	if err := json.Unmarshal([]byte(formBody), &form); err != nil {
		t.Fatalf("decode: %v", err)
	}
	a := form.Assumptions()
	want := assumption.Default()
	if a.Units != want.Units || a.Price != want.Price {
		t.Errorf("expected units/price %v/%v, got %v/%v", want.Units, want.Price, a.Units, a.Price)
	}
	if math.Abs(a.UnitGrowth-0.05) > 1e-12 || math.Abs(a.TaxRate-0.25) > 1e-12 {
		t.Errorf("expected percent fields as fractions, got growth %v tax %v", a.UnitGrowth, a.TaxRate)
	}
	if a.COGSPct != 40 {
		t.Errorf("expected margin fields on the 0-100 scale, got %v", a.COGSPct)
	}
	if math.Abs(a.TVInput-0.025) > 1e-12 {
		t.Errorf("expected LT growth 0.025, got %v", a.TVInput)
	}
	if a.NetBorrowing != 0 {
		t.Errorf("expected blank to read as 0, got %v", a.NetBorrowing)
	}
}

func TestFormRequest_Defaults(t *testing.T) {
	form := FormRequest{
		SharesOutstanding: V("0"),
		TVMethod:          "Multiple",
		TVInput:           V("8"),
		MidYear:           V("on"),
	}
	a := form.Assumptions()
	if a.SharesOutstanding != 1 {
		t.Errorf("expected cleared shares to fall back to 1, got %v", a.SharesOutstanding)
	}
	if a.TVMethod != assumption.TVMultiple || a.TVInput != 8 {
		t.Errorf("expected exit multiple 8x, got %s %v", a.TVMethod, a.TVInput)
	}
	if !a.MidYear {
		t.Errorf("expected checkbox value to enable mid-year")
	}
	if a.ModelType != assumption.Unlevered {
		t.Errorf("expected unlevered default, got %s", a.ModelType)
	}
	if V("abc").Float(7) != 7 {
		t.Errorf("expected unparseable value to fall back")
	}
}

func TestFormValue_LeadingNumber(t *testing.T) {
	form := FormRequest{
		UnitGrowth:        V("5%"),
		Units:             V("1,000"),
		SharesOutstanding: V("100M"),
	}
	a := form.Assumptions()
	if math.Abs(a.UnitGrowth-0.05) > 1e-12 {
		t.Errorf("expected 5%% to read as 0.05, got %v", a.UnitGrowth)
	}
	if a.Units != 1 {
		t.Errorf("expected the number before the comma, got %v", a.Units)
	}
	if a.SharesOutstanding != 100 {
		t.Errorf("expected 100 shares, got %v", a.SharesOutstanding)
	}
}

func TestHandleValue(t *testing.T) {
	rec := post(newRouter(), "/api/valuation", "application/json", formBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var an coreValuation.Analysis
	if err := json.Unmarshal(rec.Body.Bytes(), &an); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	want, err := coreValuation.ImpliedSharePrice(assumption.Default(), 5)
	if err != nil {
		t.Fatalf("implied price: %v", err)
	}
	if math.Abs(an.Valuation.SharePrice-want) > 1e-6 {
		t.Errorf("expected share price %f, got %f", want, an.Valuation.SharePrice)
	}
	if len(an.Valuation.Projections) != 5 {
		t.Errorf("expected 5 projections, got %d", len(an.Valuation.Projections))
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected CORS header")
	}
}

func TestHandleValue_LenientPayload(t *testing.T) {
	body := `{units: 1000, price: 50, sharesOutstanding: 100, discountRate: 9, tvInput: 2.5,}`
	rec := post(newRouter(), "/api/valuation", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for repairable payload, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleValue_BadRequests(t *testing.T) {
	router := newRouter()
	tests := []struct {
		name string
		body string
	}{
		{"negative shares", `{"units": 10, "price": 5, "sharesOutstanding": -5, "discountRate": 10}`},
		{"unknown model", `{"units": 10, "price": 5, "discountRate": 10, "modelType": "hybrid"}`},
		{"rate out of domain", `{"units": 10, "price": 5, "discountRate": -150}`},
		{"years out of range", `{"units": 10, "price": 5, "discountRate": 10, "years": 500}`},
	}
	for _, tt := range tests {
		rec := post(router, "/api/valuation", "application/json", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, rec.Code)
		}
	}
}

func TestHandlePreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/valuation", nil)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", rec.Code)
	}
}

func TestHandleSensitivity(t *testing.T) {
	rec := post(newRouter(), "/api/valuation/sensitivity", "application/json", formBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var grid coreValuation.Sensitivity
	if err := json.Unmarshal(rec.Body.Bytes(), &grid); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(grid.Prices) != 5 || grid.ColumnLabel != "LT Growth" {
		t.Errorf("unexpected grid: %d rows, column %q", len(grid.Prices), grid.ColumnLabel)
	}
}

func TestHandleReport(t *testing.T) {
	router := newRouter()

	rec := post(router, "/api/valuation/report?format=md", "application/json", formBody)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "# DCF Valuation Report") {
		t.Errorf("expected markdown report, got %d", rec.Code)
	}

	rec = post(router, "/api/valuation/report?format=html", "application/json", formBody)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<table>") {
		t.Errorf("expected html report, got %d", rec.Code)
	}

	rec = post(router, "/api/valuation/report", "application/json", formBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected xlsx report, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "DCF_Advanced_Report_") {
		t.Errorf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Errorf("expected a zip container")
	}

	rec = post(router, "/api/valuation/report?format=pdf", "application/json", formBody)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown format, got %d", rec.Code)
	}
}

func TestHandleParse(t *testing.T) {
	router := newRouter()
	text := "Units\t100\nPrice\t$12.50\nNet Debt\t1,000\nShares\t10"

	for _, tt := range []struct {
		contentType, body string
	}{
		{"text/plain", text},
		{"application/json", `{"text": ` + mustJSON(t, text) + `}`},
	} {
		rec := post(router, "/api/ingest/parse", tt.contentType, tt.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.contentType, rec.Code)
		}
		var resp ParseResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Rows != 4 {
			t.Errorf("%s: expected 4 rows, got %d", tt.contentType, resp.Rows)
		}
		if resp.Fields["price"] != 12.5 || resp.Fields["net_debt"] != 1000 {
			t.Errorf("%s: unexpected fields %v", tt.contentType, resp.Fields)
		}
	}
}

func TestHandleWACC(t *testing.T) {
	body := `{"risk_free_rate": 4, "beta": 1.2, "equity_risk_premium": 5, "equity_value": 600, "debt_value": 400, "pre_tax_cost_of_debt": 0.06, "tax_rate": 0.25}`
	rec := post(newRouter(), "/api/valuation/wacc", "application/json", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res coreValuation.WACCResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if math.Abs(res.WACC-0.078) > 1e-9 {
		t.Errorf("expected WACC 0.078, got %f", res.WACC)
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestWriteJSON_LogsEncodeFailure(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	h := NewHandler(config.Default(), logger)

	rec := httptest.NewRecorder()
	h.writeJSON(rec, http.StatusOK, map[string]float64{"value": math.NaN()})

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected the encode failure to be logged")
	}
	if entry.Level != logrus.ErrorLevel {
		t.Errorf("expected error level, got %v", entry.Level)
	}
	if _, ok := entry.Data[logrus.ErrorKey]; !ok {
		t.Errorf("expected the encode error on the entry, got %v", entry.Data)
	}
}
