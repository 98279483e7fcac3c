package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/cancer-stats-dashboard-go/internal/shared/types"
	"github.com/pterm/pterm"
)

// DashboardUseCase handles the main dashboard functionality.
type DashboardUseCase struct {
	datasetRepo repository.DatasetRepository
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	console     types.ConsoleInterface
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	datasetRepo repository.DatasetRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		datasetRepo: datasetRepo,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		console:     console,
	}
}

// ApplyConfigFile mescla o arquivo de configuração nos argumentos.
// Values already set on the command line win over the file.
func (uc *DashboardUseCase) ApplyConfigFile(args *types.CLIArgs, explicit map[string]bool) error {
	if args.ConfigFile == "" {
		return nil
	}

	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}

	setString := func(flag string, dst *string, v string) {
		if !explicit[flag] && v != "" {
			*dst = v
		}
	}
	setSlice := func(flag string, dst *[]string, v []string) {
		if !explicit[flag] && len(v) > 0 {
			*dst = v
		}
	}

	setString("data", &args.Data, cfg.Data)
	setString("addr", &args.Addr, cfg.Addr)
	setString("aws-profile", &args.AWSProfile, cfg.AWSProfile)
	setString("region", &args.Region, cfg.Region)
	setString("cancer-type", &args.CancerType, cfg.CancerType)
	setSlice("sex", &args.Sexes, cfg.Sexes)
	setString("report-name", &args.ReportName, cfg.ReportName)
	setSlice("report-type", &args.ReportType, cfg.ReportType)
	setString("dir", &args.Dir, cfg.Dir)

	uc.console.LogInfo("Loaded configuration from %s", args.ConfigFile)
	return nil
}

// LoadDataset reads the source once and builds the read-only dataset.
func (uc *DashboardUseCase) LoadDataset(ctx context.Context, source string) (*entity.Dataset, error) {
	status := uc.console.Status(fmt.Sprintf("Loading dataset from %s...", source))
	observations, skipped, err := uc.datasetRepo.LoadObservations(ctx, source)
	if err != nil {
		status.Stop()
		return nil, fmt.Errorf("error loading dataset %s: %w", source, err)
	}
	if len(observations) == 0 {
		status.Stop()
		return nil, fmt.Errorf("%s: %w", source, types.ErrEmptyDataset)
	}

	status.Update(fmt.Sprintf("Indexing %d observations...", len(observations)))
	ds := entity.NewDataset(observations)
	status.Stop()
	if skipped > 0 {
		uc.console.LogWarning("Skipped %d rows with suppressed values", skipped)
	}
	uc.console.LogSuccess("Loaded %d observations (%d regions, %d cancer types, %d sex categories)",
		ds.Len(), len(ds.Regions()), len(ds.CancerTypes()), len(ds.Sexes()))
	return ds, nil
}

// Chart builds a single chart for the selection.
func (uc *DashboardUseCase) Chart(ds *entity.Dataset, kind entity.ChartKind, sel entity.FilterSelection) (entity.Chart, error) {
	for _, spec := range entity.ChartSpecs() {
		if spec.Kind == kind {
			return BuildChart(ds.Subset(spec.Characteristic), spec, sel), nil
		}
	}
	return entity.Chart{}, fmt.Errorf("%q: %w", kind, types.ErrUnknownChartKind)
}

// Charts builds both dashboard charts for the selection, in display order.
func (uc *DashboardUseCase) Charts(ds *entity.Dataset, sel entity.FilterSelection) []entity.Chart {
	specs := entity.ChartSpecs()
	charts := make([]entity.Chart, 0, len(specs))
	for _, spec := range specs {
		charts = append(charts, BuildChart(ds.Subset(spec.Characteristic), spec, sel))
	}
	return charts
}

// SelectionFromArgs builds a filter selection, falling back to the defaults.
func SelectionFromArgs(args *types.CLIArgs) entity.FilterSelection {
	sel := entity.DefaultSelection()
	if args.Region != "" {
		sel.Region = args.Region
	}
	if args.CancerType != "" {
		sel.CancerType = args.CancerType
	}
	if len(args.Sexes) > 0 {
		sel.Sexes = args.Sexes
	}
	return sel
}

// RunChartReport prints both charts of the selection on the console.
func (uc *DashboardUseCase) RunChartReport(ctx context.Context, args *types.CLIArgs) error {
	ds, err := uc.LoadDataset(ctx, args.Data)
	if err != nil {
		return err
	}

	sel := SelectionFromArgs(args)
	for _, chart := range uc.Charts(ds, sel) {
		uc.displayChart(chart)
	}
	return nil
}

func (uc *DashboardUseCase) displayChart(chart entity.Chart) {
	pterm.DefaultSection.Println(chart.Title)

	raws := chart.RawSeries()
	if len(raws) == 0 {
		uc.console.LogWarning("No sex category selected")
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Sex")
	table.AddColumn("Points")
	table.AddColumn("Years")
	table.AddColumn("Slope / year")
	table.AddColumn("Intercept")
	table.AddColumn("R²")

	for _, raw := range raws {
		years := "-"
		if n := len(raw.Points); n > 0 {
			years = fmt.Sprintf("%d–%d", raw.Points[0].Year, raw.Points[n-1].Year)
		}

		trend, ok := chart.TrendFor(raw.Sex)
		if !ok {
			table.AddRow(raw.Sex, len(raw.Points), years, "n/a", "n/a", "n/a")
			continue
		}
		table.AddRow(raw.Sex, len(raw.Points), years,
			fmt.Sprintf("%+.3f", trend.Trend.Slope),
			fmt.Sprintf("%.3f", trend.Trend.Intercept),
			fmt.Sprintf("%.3f", trend.Trend.RSquared))
	}
	uc.console.Println(table.Render())

	for _, raw := range raws {
		if len(raw.Points) == 0 {
			uc.console.LogWarning("%s: no data for %s", chart.Title, raw.Sex)
			continue
		}
		bars := make([]types.YearValue, len(raw.Points))
		for i, p := range raw.Points {
			bars[i] = types.YearValue{Year: p.Year, Value: p.Value}
		}
		uc.console.DisplaySeriesBars(fmt.Sprintf("%s · %s", chart.YAxis.Label, raw.Sex), bars)
	}
}

// RunExport builds both charts and writes every requested report type.
func (uc *DashboardUseCase) RunExport(ctx context.Context, args *types.CLIArgs) error {
	ds, err := uc.LoadDataset(ctx, args.Data)
	if err != nil {
		return err
	}

	charts := uc.Charts(ds, SelectionFromArgs(args))

	reportName := args.ReportName
	if reportName == "" {
		reportName = "cancer_stats"
	}

	progress := uc.console.ProgressWithTotal(len(args.ReportType))
	defer progress.Stop()

	var failed []string
	for _, reportType := range args.ReportType {
		reportType = strings.ToLower(strings.TrimSpace(reportType))
		switch reportType {
		case "csv":
			uc.logExport("CSV", func() ([]string, error) {
				p, err := uc.exportRepo.ExportToCSV(charts, reportName, args.Dir)
				return []string{p}, err
			}, &failed)
		case "json":
			uc.logExport("JSON", func() ([]string, error) {
				p, err := uc.exportRepo.ExportToJSON(charts, reportName, args.Dir)
				return []string{p}, err
			}, &failed)
		case "pdf":
			uc.logExport("PDF", func() ([]string, error) {
				p, err := uc.exportRepo.ExportToPDF(charts, reportName, args.Dir)
				return []string{p}, err
			}, &failed)
		case "svg":
			uc.logExport("SVG", func() ([]string, error) {
				return uc.exportRepo.ExportToSVG(charts, reportName, args.Dir)
			}, &failed)
		default:
			uc.console.LogWarning("Unsupported report type: %s", reportType)
		}
		progress.Increment()
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to export report types: %s", strings.Join(failed, ", "))
	}
	return nil
}

func (uc *DashboardUseCase) logExport(label string, export func() ([]string, error), failed *[]string) {
	paths, err := export()
	if err != nil {
		uc.console.LogError("Failed to export charts to %s: %s", label, err)
		*failed = append(*failed, strings.ToLower(label))
		return
	}
	for _, p := range paths {
		uc.console.LogSuccess("Successfully exported charts to %s: %s", label, p)
	}
}

// RunOptions prints the values available to each filter.
func (uc *DashboardUseCase) RunOptions(ctx context.Context, args *types.CLIArgs) error {
	ds, err := uc.LoadDataset(ctx, args.Data)
	if err != nil {
		return err
	}

	opts := ds.Options()
	printList := func(title string, values []string) {
		table := uc.console.CreateTable()
		table.AddColumn("#")
		table.AddColumn(title)
		for i, v := range values {
			table.AddRow(i+1, v)
		}
		uc.console.Println(table.Render())
	}
	printList("Region", opts.Regions)
	printList("Cancer Type", opts.CancerTypes)
	printList("Sex", opts.Sexes)
	return nil
}
