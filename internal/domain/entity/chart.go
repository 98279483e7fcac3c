package entity

// MaxReferenceYear is the last year plotted; later rows are always dropped.
const MaxReferenceYear = 2017

// ChartKind identifies one of the two dashboard charts.
type ChartKind string

const (
	ChartCases ChartKind = "cases"
	ChartAge   ChartKind = "age"
)

// SeriesKind distinguishes measured points from the fitted line.
type SeriesKind string

const (
	SeriesRaw   SeriesKind = "raw"
	SeriesTrend SeriesKind = "trend"
)

// ChartSpec parameterizes the chart pipeline for one chart.
type ChartSpec struct {
	Kind           ChartKind
	Characteristic Characteristic
	TitleFormat    string
	YLabel         string
}

var (
	CasesChartSpec = ChartSpec{
		Kind:           ChartCases,
		Characteristic: CharacteristicNewCases,
		TitleFormat:    "Cancer Cases in %s",
		YLabel:         "Number of new cancer cases",
	}
	AgeChartSpec = ChartSpec{
		Kind:           ChartAge,
		Characteristic: CharacteristicAverageAge,
		TitleFormat:    "Average age at diagnosis in %s",
		YLabel:         "Average age at diagnosis",
	}
)

// ChartSpecs lists the dashboard charts in display order.
func ChartSpecs() []ChartSpec {
	return []ChartSpec{CasesChartSpec, AgeChartSpec}
}

// Point is one (year, value) pair of a series.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// TrendFit holds an ordinary least squares fit of value on year.
type TrendFit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	N         int     `json:"n"`
}

// Predict evaluates the fitted line at year.
func (f TrendFit) Predict(year int) float64 {
	return f.Intercept + f.Slope*float64(year)
}

// Series is a named line of a chart.
type Series struct {
	Name   string     `json:"name"`
	Sex    string     `json:"sex"`
	Kind   SeriesKind `json:"kind"`
	Points []Point    `json:"points"`
	Trend  *TrendFit  `json:"trend,omitempty"`
}

// Axis describes a chart axis. Max is nil when the axis is unbounded.
type Axis struct {
	Label string `json:"label"`
	Max   *int   `json:"max,omitempty"`
}

// Chart is the render-ready description of one line chart.
type Chart struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XAxis  Axis      `json:"x_axis"`
	YAxis  Axis      `json:"y_axis"`
	Series []Series  `json:"series"`
}

// RawSeries returns only the measured series, in order.
func (c Chart) RawSeries() []Series {
	out := make([]Series, 0, len(c.Series))
	for _, s := range c.Series {
		if s.Kind == SeriesRaw {
			out = append(out, s)
		}
	}
	return out
}

// TrendFor returns the trend series for sex, if one was fitted.
func (c Chart) TrendFor(sex string) (Series, bool) {
	for _, s := range c.Series {
		if s.Kind == SeriesTrend && s.Sex == sex {
			return s, true
		}
	}
	return Series{}, false
}
