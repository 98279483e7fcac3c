package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/cancer-stats-dashboard-go/internal/shared/types"
)

type fakeConsole struct {
	messages []string
	tables   int
	bars     []string
}

func (c *fakeConsole) record(level, format string, a ...interface{}) {
	c.messages = append(c.messages, level+": "+fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Println(a ...interface{})                   {}
func (c *fakeConsole) LogInfo(format string, a ...interface{})    { c.record("info", format, a...) }
func (c *fakeConsole) LogWarning(format string, a ...interface{}) { c.record("warning", format, a...) }
func (c *fakeConsole) LogError(format string, a ...interface{})   { c.record("error", format, a...) }
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) { c.record("success", format, a...) }
func (c *fakeConsole) ProgressWithTotal(int) types.ProgressHandle { return fakeHandle{} }
func (c *fakeConsole) Status(message string) types.StatusHandle {
	c.record("status", "%s", message)
	return &fakeStatus{console: c}
}
func (c *fakeConsole) CreateTable() types.TableInterface {
	c.tables++
	return &fakeTable{}
}
func (c *fakeConsole) DisplaySeriesBars(title string, points []types.YearValue) {
	c.bars = append(c.bars, title)
}

func (c *fakeConsole) contains(prefix string) bool {
	for _, m := range c.messages {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

type fakeStatus struct {
	console *fakeConsole
	stopped bool
}

func (s *fakeStatus) Update(message string) { s.console.record("status", "%s", message) }
func (s *fakeStatus) Stop()                 { s.stopped = true }

type fakeHandle struct{}

func (fakeHandle) Increment() {}
func (fakeHandle) Stop()      {}

type fakeTable struct{ rows int }

func (t *fakeTable) AddColumn(name string, options ...interface{}) {}
func (t *fakeTable) AddRow(cells ...interface{})                   { t.rows++ }
func (t *fakeTable) Render() string                                { return "" }

type fakeDatasetRepo struct {
	observations []entity.Observation
	skipped      int
	err          error
}

func (r *fakeDatasetRepo) LoadObservations(ctx context.Context, source string) ([]entity.Observation, int, error) {
	return r.observations, r.skipped, r.err
}

type fakeConfigRepo struct{ cfg *types.Config }

func (r *fakeConfigRepo) LoadConfigFile(string) (*types.Config, error) { return r.cfg, nil }

type fakeExportRepo struct {
	calls []string
	fail  map[string]bool
}

func (r *fakeExportRepo) export(kind string, charts []entity.Chart, name string) (string, error) {
	r.calls = append(r.calls, fmt.Sprintf("%s:%s:%d", kind, name, len(charts)))
	if r.fail[kind] {
		return "", errors.New("disk full")
	}
	return "/tmp/" + name + "." + kind, nil
}

func (r *fakeExportRepo) ExportToCSV(charts []entity.Chart, name, dir string) (string, error) {
	return r.export("csv", charts, name)
}
func (r *fakeExportRepo) ExportToJSON(charts []entity.Chart, name, dir string) (string, error) {
	return r.export("json", charts, name)
}
func (r *fakeExportRepo) ExportToPDF(charts []entity.Chart, name, dir string) (string, error) {
	return r.export("pdf", charts, name)
}
func (r *fakeExportRepo) ExportToSVG(charts []entity.Chart, name, dir string) ([]string, error) {
	p, err := r.export("svg", charts, name)
	if err != nil {
		return nil, err
	}
	return []string{p + "-cases", p + "-age"}, nil
}

func sampleRows() []entity.Observation {
	var rows []entity.Observation
	rows = append(rows, sampleDataset().Subset(entity.CharacteristicNewCases)...)
	rows = append(rows, sampleDataset().Subset(entity.CharacteristicAverageAge)...)
	return rows
}

func TestLoadDataset(t *testing.T) {
	con := &fakeConsole{}
	uc := NewDashboardUseCase(&fakeDatasetRepo{observations: sampleRows(), skipped: 3}, nil, nil, con)

	ds, err := uc.LoadDataset(context.Background(), "data.csv")
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if ds.Len() != len(sampleRows()) {
		t.Errorf("Expected %d observations, got %d", len(sampleRows()), ds.Len())
	}
	if !con.contains("warning: Skipped 3 rows") {
		t.Errorf("Expected skipped rows warning, got %v", con.messages)
	}
	if !con.contains("status: Loading dataset from data.csv") || !con.contains(fmt.Sprintf("status: Indexing %d observations", len(sampleRows()))) {
		t.Errorf("Expected spinner updates, got %v", con.messages)
	}
}

func TestLoadDatasetErrors(t *testing.T) {
	uc := NewDashboardUseCase(&fakeDatasetRepo{}, nil, nil, &fakeConsole{})
	if _, err := uc.LoadDataset(context.Background(), "empty.csv"); !errors.Is(err, types.ErrEmptyDataset) {
		t.Errorf("Expected ErrEmptyDataset, got %v", err)
	}

	uc = NewDashboardUseCase(&fakeDatasetRepo{err: types.ErrMissingColumns}, nil, nil, &fakeConsole{})
	_, err := uc.LoadDataset(context.Background(), "bad.csv")
	if !errors.Is(err, types.ErrMissingColumns) || !strings.Contains(err.Error(), "bad.csv") {
		t.Errorf("Expected wrapped ErrMissingColumns, got %v", err)
	}
}

func TestChartAndCharts(t *testing.T) {
	uc := NewDashboardUseCase(nil, nil, nil, &fakeConsole{})
	ds := sampleDataset()
	sel := entity.DefaultSelection()

	charts := uc.Charts(ds, sel)
	if len(charts) != 2 || charts[0].Kind != entity.ChartCases || charts[1].Kind != entity.ChartAge {
		t.Fatalf("Unexpected charts %+v", charts)
	}

	age, err := uc.Chart(ds, entity.ChartAge, sel)
	if err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if !reflect.DeepEqual(age, charts[1]) {
		t.Error("Chart and Charts disagree on the age chart")
	}

	if _, err := uc.Chart(ds, "survival", sel); !errors.Is(err, types.ErrUnknownChartKind) {
		t.Errorf("Expected ErrUnknownChartKind, got %v", err)
	}
}

func TestSelectionFromArgs(t *testing.T) {
	if got := SelectionFromArgs(&types.CLIArgs{}); !reflect.DeepEqual(got, entity.DefaultSelection()) {
		t.Errorf("Expected defaults, got %+v", got)
	}

	got := SelectionFromArgs(&types.CLIArgs{Region: "Ontario", Sexes: []string{"Males", "Females"}})
	want := entity.FilterSelection{Region: "Ontario", CancerType: entity.DefaultCancerType, Sexes: []string{"Males", "Females"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SelectionFromArgs = %+v, expected %+v", got, want)
	}
}

func TestApplyConfigFile(t *testing.T) {
	cfg := &types.Config{
		Data:       "s3://bucket/data.csv",
		Addr:       ":9000",
		Region:     "Ontario",
		Sexes:      []string{"Males"},
		ReportType: []string{"pdf"},
	}
	uc := NewDashboardUseCase(nil, nil, &fakeConfigRepo{cfg: cfg}, &fakeConsole{})

	args := &types.CLIArgs{
		ConfigFile: "config.toml",
		Data:       "data.csv",
		Addr:       ":8050",
		Region:     "Quebec",
		ReportType: []string{"csv"},
	}
	if err := uc.ApplyConfigFile(args, map[string]bool{"region": true}); err != nil {
		t.Fatalf("ApplyConfigFile failed: %v", err)
	}

	if args.Data != "s3://bucket/data.csv" || args.Addr != ":9000" {
		t.Errorf("File values should replace defaults: %+v", args)
	}
	if args.Region != "Quebec" {
		t.Errorf("Explicit flag should win, got region %q", args.Region)
	}
	if !reflect.DeepEqual(args.Sexes, []string{"Males"}) || !reflect.DeepEqual(args.ReportType, []string{"pdf"}) {
		t.Errorf("Unexpected slices: %+v", args)
	}
}

func TestApplyConfigFileWithoutFile(t *testing.T) {
	uc := NewDashboardUseCase(nil, nil, nil, &fakeConsole{})
	args := &types.CLIArgs{Data: "data.csv"}
	if err := uc.ApplyConfigFile(args, nil); err != nil {
		t.Fatalf("ApplyConfigFile failed: %v", err)
	}
	if args.Data != "data.csv" {
		t.Errorf("Args changed without a config file: %+v", args)
	}
}

func TestRunChartReport(t *testing.T) {
	con := &fakeConsole{}
	uc := NewDashboardUseCase(&fakeDatasetRepo{observations: sampleRows()}, nil, nil, con)

	args := &types.CLIArgs{Data: "data.csv", Sexes: []string{"Males", "Females"}}
	if err := uc.RunChartReport(context.Background(), args); err != nil {
		t.Fatalf("RunChartReport failed: %v", err)
	}
	if con.tables != 2 {
		t.Errorf("Expected one summary table per chart, got %d", con.tables)
	}
	// Age rows only exist for "Both sexes" in the sample.
	if len(con.bars) != 2 {
		t.Errorf("Expected bars for the case chart only, got %v", con.bars)
	}
}

func TestRunExport(t *testing.T) {
	exp := &fakeExportRepo{fail: map[string]bool{"pdf": true}}
	con := &fakeConsole{}
	uc := NewDashboardUseCase(&fakeDatasetRepo{observations: sampleRows()}, exp, nil, con)

	args := &types.CLIArgs{Data: "data.csv", ReportType: []string{"csv", " SVG", "pdf", "xml"}}
	err := uc.RunExport(context.Background(), args)
	if err == nil || !strings.Contains(err.Error(), "pdf") {
		t.Fatalf("Expected pdf failure, got %v", err)
	}

	want := []string{"csv:cancer_stats:2", "svg:cancer_stats:2", "pdf:cancer_stats:2"}
	if !reflect.DeepEqual(exp.calls, want) {
		t.Errorf("Export calls = %v, expected %v", exp.calls, want)
	}
	if !con.contains("warning: Unsupported report type: xml") {
		t.Errorf("Expected unsupported type warning, got %v", con.messages)
	}
	if !con.contains("success: Successfully exported charts to SVG: /tmp/cancer_stats.svg-age") {
		t.Errorf("Expected each SVG path to be reported, got %v", con.messages)
	}
}

func TestRunOptions(t *testing.T) {
	con := &fakeConsole{}
	uc := NewDashboardUseCase(&fakeDatasetRepo{observations: sampleRows()}, nil, nil, con)
	if err := uc.RunOptions(context.Background(), &types.CLIArgs{Data: "data.csv"}); err != nil {
		t.Fatalf("RunOptions failed: %v", err)
	}
	if con.tables != 3 {
		t.Errorf("Expected three option tables, got %d", con.tables)
	}
}
