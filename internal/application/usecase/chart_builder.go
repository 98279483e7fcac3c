package usecase

import (
	"fmt"

	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
)

// TrendSeriesName is the legend label of the fitted line for sex.
func TrendSeriesName(sex string) string {
	return fmt.Sprintf("Regression Line (%s)", sex)
}

// BuildChart filters subset by the selection and returns one raw series plus,
// when the fit is not degenerate, one trend series per selected sex, in
// selection order. Rows after entity.MaxReferenceYear never appear.
func BuildChart(subset []entity.Observation, spec entity.ChartSpec, sel entity.FilterSelection) entity.Chart {
	maxYear := entity.MaxReferenceYear

	chart := entity.Chart{
		Kind:   spec.Kind,
		Title:  fmt.Sprintf(spec.TitleFormat, sel.Region),
		XAxis:  entity.Axis{Label: "Year", Max: &maxYear},
		YAxis:  entity.Axis{Label: spec.YLabel},
		Series: make([]entity.Series, 0, 2*len(sel.Sexes)),
	}

	byPlace := filterObservations(subset, byRegion(sel.Region), byCancerType(sel.CancerType))

	for _, sex := range sel.Sexes {
		rows := filterObservations(byPlace, bySex(sex), upToYear(maxYear))

		raw := make([]entity.Point, len(rows))
		for i, o := range rows {
			raw[i] = entity.Point{Year: o.Year, Value: o.Value}
		}

		chart.Series = append(chart.Series, entity.Series{
			Name:   sex,
			Sex:    sex,
			Kind:   entity.SeriesRaw,
			Points: raw,
		})

		fit, ok := FitTrend(raw)
		if !ok {
			continue
		}
		chart.Series = append(chart.Series, entity.Series{
			Name:   TrendSeriesName(sex),
			Sex:    sex,
			Kind:   entity.SeriesTrend,
			Points: trendPoints(fit, raw),
			Trend:  &fit,
		})
	}

	return chart
}
