package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/repository"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette for raw series; the trend line reuses its series colour at low alpha.
var Palette = []string{
	"4F46E5", "10B981", "F59E0B", "EF4444", "8B5CF6",
	"06B6D4", "EC4899", "84CC16", "F97316", "6366F1",
}

// PNGRendererImpl desenha gráficos de linha com go-chart.
type PNGRendererImpl struct{}

// NewPNGRenderer cria um novo renderizador PNG.
func NewPNGRenderer() repository.ChartRenderer {
	return &PNGRendererImpl{}
}

// RenderPNG draws the chart. A chart with nothing to draw yields a blank
// image of the requested size instead of an error.
func (r *PNGRendererImpl) RenderPNG(c entity.Chart, width, height int) ([]byte, error) {
	series, xr, yr, ok := buildSeries(c)
	if !ok {
		return BlankPNG(width, height)
	}

	graph := chart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           c.XAxis.Label,
			Range:          xr,
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			Name:           c.YAxis.Label,
			Range:          yr,
			ValueFormatter: valueFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("error rendering chart %q: %w", c.Title, err)
	}
	return buf.Bytes(), nil
}

// SeriesColor returns the palette colour for the i-th selected sex.
func SeriesColor(i int) drawing.Color {
	return drawing.ColorFromHex(Palette[i%len(Palette)])
}

func buildSeries(c entity.Chart) ([]chart.Series, *chart.ContinuousRange, *chart.ContinuousRange, bool) {
	var out []chart.Series
	colorIndex := make(map[string]int)

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)

	for _, s := range c.Series {
		if _, ok := colorIndex[s.Sex]; !ok {
			colorIndex[s.Sex] = len(colorIndex)
		}
		if len(s.Points) == 0 {
			continue
		}

		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = float64(p.Year)
			ys[i] = p.Value
			minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
			minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
		}

		col := SeriesColor(colorIndex[s.Sex])
		style := chart.Style{StrokeColor: col, StrokeWidth: 2, DotColor: col, DotWidth: 2.5}
		if s.Kind == entity.SeriesTrend {
			style = chart.Style{
				StrokeColor:     col.WithAlpha(96),
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
			}
		}

		out = append(out, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
	}

	if len(out) == 0 {
		return nil, nil, nil, false
	}

	if c.XAxis.Max != nil {
		maxX = float64(*c.XAxis.Max)
	}
	if minX >= maxX {
		minX = maxX - 1
	}
	if minY == maxY {
		minY, maxY = minY-1, maxY+1
	}

	return out,
		&chart.ContinuousRange{Min: minX, Max: maxX},
		&chart.ContinuousRange{Min: minY, Max: maxY},
		true
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

func valueFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	if math.Abs(f) >= 1000 {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%.1f", f)
}

// BlankPNG returns a white image used when a chart has nothing to show or
// cannot be drawn.
func BlankPNG(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("error encoding blank chart: %w", err)
	}
	return buf.Bytes(), nil
}
