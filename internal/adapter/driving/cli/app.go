package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driving/web"
	"github.com/diillson/cancer-stats-dashboard-go/internal/application/usecase"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/cancer-stats-dashboard-go/internal/shared/types"
	"github.com/diillson/cancer-stats-dashboard-go/pkg/version"
	"github.com/spf13/cobra"
)

// ProfileSetter is implemented by sources that read remote datasets with a named AWS profile.
type ProfileSetter interface {
	SetProfile(profile string)
}

// configurableFlags são as flags que o arquivo de configuração pode preencher.
var configurableFlags = []string{
	"data", "addr", "aws-profile", "region", "cancer-type", "sex", "report-name", "report-type", "dir",
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	renderer         repository.ChartRenderer
	profileSetter    ProfileSetter
	console          types.ConsoleInterface
	version          string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "cancer-stats",
		Short:         "Canadian cancer statistics dashboard",
		Long:          "Serves an interactive dashboard of new cancer cases and average age at diagnosis, with a linear trend per sex.",
		Version:       formattedVersion,
		RunE:          app.runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Cancer Statistics Dashboard version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("data", "f", "data.csv", "Dataset to load: a .csv or .xlsx path, or an s3://bucket/key URL")
	flags.String("addr", ":8050", "Address the dashboard listens on")
	flags.StringP("aws-profile", "p", "", "AWS profile used to read s3:// datasets")
	flags.StringP("region", "r", "", "Region (GEO) to chart (default \"Canada\")")
	flags.StringP("cancer-type", "t", "", "Primary type of cancer to chart (default total of all sites)")
	flags.StringSliceP("sex", "s", nil, "Sex categories to chart (comma-separated, default \"Both sexes\")")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf, svg")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the web dashboard",
			Args:  cobra.NoArgs,
			RunE:  app.runServe,
		},
		&cobra.Command{
			Use:   "chart",
			Short: "Print the trend summary and yearly values of both charts",
			Args:  cobra.NoArgs,
			RunE:  app.runChart,
		},
		&cobra.Command{
			Use:   "export",
			Short: "Export both charts as CSV, JSON, PDF or SVG reports",
			Args:  cobra.NoArgs,
			RunE:  app.runExport,
		},
		&cobra.Command{
			Use:   "options",
			Short: "List the regions, cancer types and sex categories in the dataset",
			Args:  cobra.NoArgs,
			RunE:  app.runOptions,
		},
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	data, _ := flags.GetString("data")
	addr, _ := flags.GetString("addr")
	awsProfile, _ := flags.GetString("aws-profile")
	region, _ := flags.GetString("region")
	cancerType, _ := flags.GetString("cancer-type")
	sexes, _ := flags.GetStringSlice("sex")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		Data:       data,
		Addr:       addr,
		AWSProfile: awsProfile,
		Region:     region,
		CancerType: cancerType,
		Sexes:      sexes,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
	}, nil
}

// explicitFlags lista as flags passadas na linha de comando.
func explicitFlags(cmd *cobra.Command) map[string]bool {
	explicit := make(map[string]bool, len(configurableFlags))
	for _, name := range configurableFlags {
		explicit[name] = cmd.Flags().Changed(name)
	}
	return explicit
}

// prepare exibe o banner e monta os argumentos finais do comando.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.CLIArgs, error) {
	if app.dashboardUseCase == nil {
		return nil, fmt.Errorf("dashboard use case not configured")
	}

	displayWelcomeBanner(app.version)
	go version.CheckLatestVersion(app.version)

	cliArgs, err := parseArgs(cmd)
	if err != nil {
		return nil, err
	}

	if err := app.dashboardUseCase.ApplyConfigFile(cliArgs, explicitFlags(cmd)); err != nil {
		return nil, err
	}

	if cliArgs.AWSProfile != "" && app.profileSetter != nil {
		app.profileSetter.SetProfile(cliArgs.AWSProfile)
	}
	return cliArgs, nil
}

// runServe carrega o dataset e inicia o servidor web até receber SIGINT/SIGTERM.
func (app *CLIApp) runServe(cmd *cobra.Command, args []string) error {
	cliArgs, err := app.prepare(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := app.dashboardUseCase.LoadDataset(ctx, cliArgs.Data)
	if err != nil {
		return err
	}

	server, err := web.NewServer(cliArgs.Addr, app.dashboardUseCase, ds, app.renderer, app.console)
	if err != nil {
		return err
	}
	return server.Run(ctx)
}

func (app *CLIApp) runChart(cmd *cobra.Command, args []string) error {
	cliArgs, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	return app.dashboardUseCase.RunChartReport(cmd.Context(), cliArgs)
}

func (app *CLIApp) runExport(cmd *cobra.Command, args []string) error {
	cliArgs, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	return app.dashboardUseCase.RunExport(cmd.Context(), cliArgs)
}

func (app *CLIApp) runOptions(cmd *cobra.Command, args []string) error {
	cliArgs, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	return app.dashboardUseCase.RunOptions(cmd.Context(), cliArgs)
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}

// SetWebDependencies define o renderizador e o console usados pelo servidor web.
func (app *CLIApp) SetWebDependencies(renderer repository.ChartRenderer, console types.ConsoleInterface) {
	app.renderer = renderer
	app.console = console
}

// SetProfileSetter registra quem recebe o perfil AWS escolhido.
func (app *CLIApp) SetProfileSetter(setter ProfileSetter) {
	app.profileSetter = setter
}
