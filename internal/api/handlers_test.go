package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"backend/internal/engine"

	"github.com/labstack/echo/v4"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()

	dir := t.TempDir()
	csv := "PC Name,State,Winning Candidate,Party,Votes,Electors,Margin,Margin %,Turnout,Type\n" +
		"Amethi,Uttar Pradesh,Indira Gandhi,INC,\"1,00,000\",\"2,00,000\",\"10,000\",10%,50%,GEN\n" +
		"Madras,Tamil Nadu,Someone Else,CPI,\"50,000\",\"90,000\",\"500\",0.5%,70%,GEN\n"
	if err := os.WriteFile(filepath.Join(dir, "lok_sabha_1999_data.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := engine.Load([]string{dir}, map[string]string{"1999": "lok_sabha_1999_data.csv"})
	if err != nil {
		t.Fatal(err)
	}
	return NewHandler(ds)
}

func request(t *testing.T, h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestGetYears(t *testing.T) {
	h := testHandler(t)

	rec := request(t, h.GetYears, "/api/years")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var years []string
	if err := json.Unmarshal(rec.Body.Bytes(), &years); err != nil {
		t.Fatal(err)
	}
	if len(years) != 1 || years[0] != "1999" {
		t.Errorf("years = %v", years)
	}
}

func TestGetElectionDataUnknownYear(t *testing.T) {
	h := testHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/election/2099", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year")
	c.SetParamValues("2099")

	if err := h.GetElectionData(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["error"] == "" {
		t.Errorf("expected a structured error payload, got %s", rec.Body.String())
	}
}

func TestCompareYearsRequiresYears(t *testing.T) {
	h := testHandler(t)

	rec := request(t, h.CompareYears, "/api/compare/years")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCompareYearsOK(t *testing.T) {
	h := testHandler(t)

	rec := request(t, h.CompareYears, "/api/compare/years?years=1999")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	h := testHandler(t)

	if rec := request(t, h.Search, "/api/search"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if rec := request(t, h.Search, "/api/search?q=indira"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStatePartyTrendsRequiresState(t *testing.T) {
	h := testHandler(t)

	if rec := request(t, h.GetStatePartyTrends, "/api/state-party-trends"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDataFilesServed(t *testing.T) {
	h := testHandler(t)

	// The deployed copy of the source CSVs must be reachable at /data/<file>.
	dataDir := t.TempDir()
	csv := "PC Name,State\nAmethi,Uttar Pradesh\n"
	if err := os.WriteFile(filepath.Join(dataDir, "lok_sabha_1999_data.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	h.RegisterRoutes(e, "", dataDir)

	req := httptest.NewRequest(http.MethodGet, "/data/lok_sabha_1999_data.csv", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "PC Name") {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}

	// API routes still win over the static mounts.
	req = httptest.NewRequest(http.MethodGet, "/api/years", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/api/years status = %d", rec.Code)
	}
}

func TestStateAnalysisFansOut(t *testing.T) {
	h := testHandler(t)

	// No state parameter: every state, keyed by name.
	rec := request(t, h.GetStateAnalysis, "/api/state-analysis")
	var all struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatal(err)
	}
	if len(all.Data) != 2 {
		t.Errorf("expected 2 states, got %d", len(all.Data))
	}

	rec = request(t, h.GetStateAnalysis, "/api/state-analysis?state=Tamil+Nadu")
	var one struct {
		State string   `json:"state"`
		Years []string `json:"years"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &one); err != nil {
		t.Fatal(err)
	}
	if one.State != "Tamil Nadu" || len(one.Years) != 1 {
		t.Errorf("state payload wrong: %+v", one)
	}
}
