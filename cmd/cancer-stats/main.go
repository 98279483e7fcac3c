package main

import (
	"fmt"
	"os"

	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driven/aws"
	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driven/dataset"
	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driven/render"
	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/cancer-stats-dashboard-go/internal/application/usecase"
	"github.com/diillson/cancer-stats-dashboard-go/pkg/console"
	"github.com/diillson/cancer-stats-dashboard-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	s3Repo := aws.NewS3Repository("")
	datasetRepo := dataset.NewDatasetRepository(s3Repo)
	renderer := render.NewPNGRenderer()
	exportRepo := export.NewExportRepository(renderer)
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	dashboardUseCase := usecase.NewDashboardUseCase(
		datasetRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetDashboardUseCase(dashboardUseCase)
	app.SetWebDependencies(renderer, consoleImpl)
	app.SetProfileSetter(s3Repo)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
