package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driven/render"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart image size embedded in PDF reports, in pixels.
const (
	pdfChartWidth  = 1200
	pdfChartHeight = 480
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	renderer repository.ChartRenderer
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository(renderer repository.ChartRenderer) repository.ExportRepository {
	return &ExportRepositoryImpl{renderer: renderer}
}

func (r *ExportRepositoryImpl) ExportToCSV(charts []entity.Chart, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{"Chart", "Title", "Series", "Sex", "Kind", "Year", "Value"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, c := range charts {
		for _, s := range c.Series {
			for _, p := range s.Points {
				record := []string{
					string(c.Kind),
					c.Title,
					s.Name,
					s.Sex,
					string(s.Kind),
					strconv.Itoa(p.Year),
					strconv.FormatFloat(p.Value, 'f', -1, 64),
				}
				if err := writer.Write(record); err != nil {
					return "", fmt.Errorf("error writing CSV row: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(charts []entity.Chart, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(charts); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF writes one landscape page per chart: the rendered chart followed
// by the trend summary of each selected sex.
func (r *ExportRepositoryImpl) ExportToPDF(charts []entity.Chart, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 20

	// O rodapé roda com a quebra automática desligada, então fica na mesma página.
	footerText := fmt.Sprintf("Generated by Cancer Statistics Dashboard (Go) | %s", time.Now().Format("2006-01-02"))
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	for i, c := range charts {
		pdf.AddPage()
		pdf.Bookmark(c.Title, 0, -1)

		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", c.Title)), "", 1, "L", true, 0, "")
		pdf.Ln(4)

		img, err := r.renderer.RenderPNG(c, pdfChartWidth, pdfChartHeight)
		if err != nil {
			return "", err
		}
		imageName := fmt.Sprintf("chart-%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(img))
		imageHeight := contentWidth * float64(pdfChartHeight) / float64(pdfChartWidth)
		y := pdf.GetY()
		pdf.ImageOptions(imageName, 10, y, contentWidth, imageHeight, false, opts, 0, "")
		pdf.SetY(y + imageHeight + 4)

		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, "Trend Summary")
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+contentWidth, pdf.GetY())
		pdf.Ln(2)

		widths := []float64{70, 25, 40, 45, 50, 30}
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for j, h := range []string{"Sex", "Points", "Years", "Slope / year", "Intercept", "R²"} {
			pdf.CellFormat(widths[j], 7, tr(h), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 10)
		for _, row := range summaryRows(c) {
			for j, cell := range row {
				pdf.CellFormat(widths[j], 6, tr(cell), "", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// summaryRows lists, per raw series, its size, year span and fitted line.
func summaryRows(c entity.Chart) [][]string {
	var rows [][]string
	for _, raw := range c.RawSeries() {
		years := "-"
		if n := len(raw.Points); n > 0 {
			years = fmt.Sprintf("%d-%d", raw.Points[0].Year, raw.Points[n-1].Year)
		}
		row := []string{raw.Sex, strconv.Itoa(len(raw.Points)), years, "n/a", "n/a", "n/a"}
		if trend, ok := c.TrendFor(raw.Sex); ok {
			row[3] = fmt.Sprintf("%+.3f", trend.Trend.Slope)
			row[4] = fmt.Sprintf("%.3f", trend.Trend.Intercept)
			row[5] = fmt.Sprintf("%.3f", trend.Trend.RSquared)
		}
		rows = append(rows, row)
	}
	return rows
}

// ExportToSVG writes one SVG file per chart.
func (r *ExportRepositoryImpl) ExportToSVG(charts []entity.Chart, filename, outputDir string) ([]string, error) {
	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		outputFilename, err := generateFilename(fmt.Sprintf("%s_%s", filename, c.Kind), outputDir, "svg")
		if err != nil {
			return paths, err
		}

		p, err := buildPlot(c)
		if err != nil {
			return paths, err
		}
		if err := p.Save(10*vg.Inch, 5*vg.Inch, outputFilename); err != nil {
			return paths, fmt.Errorf("error writing SVG file: %w", err)
		}

		abs, err := filepath.Abs(outputFilename)
		if err != nil {
			return paths, err
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

func buildPlot(c entity.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XAxis.Label
	p.Y.Label.Text = c.YAxis.Label
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	colorIndex := make(map[string]int)
	drawn := 0
	for _, s := range c.Series {
		if _, ok := colorIndex[s.Sex]; !ok {
			colorIndex[s.Sex] = len(colorIndex)
		}
		if len(s.Points) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = float64(pt.Year)
			xys[i].Y = pt.Value
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("error building series %q: %w", s.Name, err)
		}
		dc := render.SeriesColor(colorIndex[s.Sex])
		line.Color = color.RGBA{R: dc.R, G: dc.G, B: dc.B, A: 255}
		line.Width = vg.Points(1.5)
		if s.Kind == entity.SeriesTrend {
			line.Color = color.RGBA{R: dc.R, G: dc.G, B: dc.B, A: 96}
			line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		}

		p.Add(line)
		p.Legend.Add(s.Name, line)
		drawn++
	}

	if c.XAxis.Max != nil {
		p.X.Max = float64(*c.XAxis.Max)
	}
	if drawn == 0 {
		p.X.Min, p.Y.Min, p.Y.Max = p.X.Max-1, 0, 1
	}
	if p.X.Min >= p.X.Max {
		p.X.Min = p.X.Max - 1
	}
	return p, nil
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
