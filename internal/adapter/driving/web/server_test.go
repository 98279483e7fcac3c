package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driven/render"
	"github.com/diillson/cancer-stats-dashboard-go/internal/application/usecase"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/cancer-stats-dashboard-go/internal/shared/types"
)

type quietConsole struct {
	infos  []string
	errors []string
}

func (c *quietConsole) Println(a ...interface{})                            {}
func (c *quietConsole) LogWarning(format string, a ...interface{})          {}
func (c *quietConsole) LogSuccess(format string, a ...interface{})          {}
func (c *quietConsole) Status(message string) types.StatusHandle            { return nopHandle{} }
func (c *quietConsole) ProgressWithTotal(total int) types.ProgressHandle    { return nopHandle{} }
func (c *quietConsole) CreateTable() types.TableInterface                   { return nil }
func (c *quietConsole) DisplaySeriesBars(title string, p []types.YearValue) {}
func (c *quietConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}
func (c *quietConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

type nopHandle struct{}

func (nopHandle) Update(string) {}
func (nopHandle) Increment()    {}
func (nopHandle) Stop()         {}

func testDataset() *entity.Dataset {
	var obs []entity.Observation
	for year := 2010; year <= 2019; year++ {
		for _, sex := range []string{"Both sexes", "Males", "Females"} {
			obs = append(obs,
				entity.Observation{Region: "Canada", CancerType: entity.DefaultCancerType, Sex: sex,
					Characteristic: entity.CharacteristicNewCases, Year: year, Value: float64(1000 + 10*(year-2010))},
				entity.Observation{Region: "Canada", CancerType: entity.DefaultCancerType, Sex: sex,
					Characteristic: entity.CharacteristicAverageAge, Year: year, Value: 65 + 0.1*float64(year-2010)},
			)
		}
	}
	obs = append(obs, entity.Observation{Region: "Ontario", CancerType: "Lung and bronchus [C34.0-C34.9]", Sex: "Males",
		Characteristic: entity.CharacteristicNewCases, Year: 2015, Value: 5000})
	return entity.NewDataset(obs)
}

type failingRenderer struct{}

func (failingRenderer) RenderPNG(entity.Chart, int, int) ([]byte, error) {
	return nil, errors.New("font cache unavailable")
}

func newTestServer(t *testing.T) (http.Handler, *quietConsole) {
	t.Helper()
	return newTestServerWith(t, render.NewPNGRenderer())
}

func newTestServerWith(t *testing.T, renderer repository.ChartRenderer) (http.Handler, *quietConsole) {
	t.Helper()
	con := &quietConsole{}
	uc := usecase.NewDashboardUseCase(nil, nil, nil, con)
	s, err := NewServer(":0", uc, testDataset(), renderer, con)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return s.Handler(), con
}

func get(t *testing.T, h http.Handler, target string) (*http.Response, []byte) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestIndexPage(t *testing.T) {
	h, _ := newTestServer(t)
	resp, body := get(t, h, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	page := string(body)
	for _, want := range []string{
		`id="dropdown-region"`,
		`id="dropdown-cancer-type"`,
		`id="dropdown-sex"`,
		`<option value="Canada" selected>`,
		`<option value="Both sexes" selected>`,
		`<option value="Males">`,
		`/charts/cases.png?cancer_type=`,
		`/charts/age.png?`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("Page should contain %q", want)
		}
	}
}

func TestOptionsEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	_, body := get(t, h, "/api/options")

	var opts entity.FilterOptions
	if err := json.Unmarshal(body, &opts); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(opts.Regions) != 2 || opts.Regions[0] != "Canada" || opts.Regions[1] != "Ontario" {
		t.Errorf("Unexpected regions: %v", opts.Regions)
	}
	if len(opts.Sexes) != 3 || opts.Sexes[0] != "Both sexes" {
		t.Errorf("Unexpected sexes: %v", opts.Sexes)
	}
}

func TestChartsEndpoint(t *testing.T) {
	h, con := newTestServer(t)
	q := url.Values{}
	q.Set("region", "Canada")
	q.Set("cancer_type", entity.DefaultCancerType)
	q.Add("sex", "Males")
	q.Add("sex", "Females")

	resp, body := get(t, h, "/api/charts?"+q.Encode())
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var charts map[entity.ChartKind]entity.Chart
	if err := json.Unmarshal(body, &charts); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	cases := charts[entity.ChartCases]
	if cases.Title != "Cancer Cases in Canada" {
		t.Errorf("Unexpected title %q", cases.Title)
	}
	if len(cases.Series) != 4 || cases.Series[0].Sex != "Males" || cases.Series[2].Sex != "Females" {
		t.Fatalf("Unexpected series: %+v", cases.Series)
	}
	for _, s := range cases.Series {
		for _, p := range s.Points {
			if p.Year > entity.MaxReferenceYear {
				t.Errorf("Series %q contains year %d", s.Name, p.Year)
			}
		}
	}
	if charts[entity.ChartAge].YAxis.Label != "Average age at diagnosis" {
		t.Errorf("Unexpected age chart: %+v", charts[entity.ChartAge])
	}

	if len(con.infos) == 0 || !strings.Contains(con.infos[len(con.infos)-1], "GET /api/charts") {
		t.Errorf("Expected request to be logged, got %v", con.infos)
	}
}

func TestChartEndpointDefaultsAndEmptySex(t *testing.T) {
	h, _ := newTestServer(t)

	_, body := get(t, h, "/api/charts/cases")
	var c entity.Chart
	if err := json.Unmarshal(body, &c); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(c.Series) != 2 || c.Series[0].Sex != entity.DefaultSex {
		t.Errorf("Expected default selection, got %+v", c.Series)
	}

	_, body = get(t, h, "/api/charts/cases?sex=")
	c = entity.Chart{}
	if err := json.Unmarshal(body, &c); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(c.Series) != 0 {
		t.Errorf("Expected no series for an empty sex selection, got %d", len(c.Series))
	}
}

func TestUnknownChartKind(t *testing.T) {
	h, _ := newTestServer(t)
	for _, path := range []string{"/api/charts/survival", "/charts/survival.png", "/charts/cases.gif"} {
		resp, _ := get(t, h, path)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}

func TestChartPNG(t *testing.T) {
	h, _ := newTestServer(t)

	resp, body := get(t, h, "/charts/age.png?w=400&h=50")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != minChartSize {
		t.Errorf("Expected 400x%d, got %dx%d", minChartSize, b.Dx(), b.Dy())
	}

	// unknown region: still a valid (blank) image
	resp, _ = get(t, h, "/charts/cases.png?region=Atlantis")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 for an empty chart, got %d", resp.StatusCode)
	}
}

func TestChartPNGRenderFailureServesPlaceholder(t *testing.T) {
	h, con := newTestServerWith(t, failingRenderer{})

	resp, body := get(t, h, "/charts/cases.png?w=300&h=250")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 250 {
		t.Errorf("Expected 300x250 placeholder, got %dx%d", b.Dx(), b.Dy())
	}
	if len(con.errors) != 1 || !strings.Contains(con.errors[0], "font cache unavailable") {
		t.Errorf("Expected the render error to be logged, got %v", con.errors)
	}
}

func TestIndexKeepsUnknownSelection(t *testing.T) {
	h, _ := newTestServer(t)
	_, body := get(t, h, "/?region=Atlantis&sex=Males&sex=Intersex")

	page := string(body)
	for _, want := range []string{
		`<option value="Atlantis" selected>`,
		`<option value="Canada">`,
		`<option value="Males" selected>`,
		`<option value="Intersex" selected>`,
		`/charts/cases.png?cancer_type=`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("Page should contain %q", want)
		}
	}
	if strings.Count(page, `<option value="Canada"`) != 1 {
		t.Error("Known regions should not be duplicated")
	}
}

func TestWithSelectionLeavesDatasetOptions(t *testing.T) {
	ds := testDataset()
	opts := withSelection(ds.Options(), entity.FilterSelection{Region: "Atlantis", CancerType: entity.DefaultCancerType})
	if len(opts.Regions) != 3 || opts.Regions[2] != "Atlantis" || len(opts.CancerTypes) != 2 {
		t.Errorf("Unexpected options %+v", opts)
	}
	if len(ds.Regions()) != 2 {
		t.Errorf("Dataset options changed: %v", ds.Regions())
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)
	resp, body := get(t, h, "/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("Unexpected health response: %d %q", resp.StatusCode, body)
	}
}

func TestSelectionQueryRoundTrip(t *testing.T) {
	sel := entity.FilterSelection{Region: "Québec", CancerType: "Breast [C50]", Sexes: []string{"Females", "Males"}}
	q, err := url.ParseQuery(selectionQuery(sel))
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	got := selectionFromQuery(q)
	if got.Region != sel.Region || got.CancerType != sel.CancerType || strings.Join(got.Sexes, "|") != "Females|Males" {
		t.Errorf("Round trip = %+v, expected %+v", got, sel)
	}
}
