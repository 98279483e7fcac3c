package repository

import (
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
)

// ExportRepository writes chart descriptions to report files and returns their absolute paths.
type ExportRepository interface {
	ExportToCSV(charts []entity.Chart, filename string, outputDir string) (string, error)
	ExportToJSON(charts []entity.Chart, filename string, outputDir string) (string, error)
	ExportToPDF(charts []entity.Chart, filename string, outputDir string) (string, error)
	ExportToSVG(charts []entity.Chart, filename string, outputDir string) ([]string, error)
}
