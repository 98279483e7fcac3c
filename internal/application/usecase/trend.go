package usecase

import (
	"math"

	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"gonum.org/v1/gonum/stat"
)

// minTrendPoints is the smallest sample for which a line is fitted.
const minTrendPoints = 2

// FitTrend fits value = intercept + slope*year by ordinary least squares.
// ok is false when the fit is degenerate: fewer than two points, or every
// point on the same year.
func FitTrend(points []entity.Point) (fit entity.TrendFit, ok bool) {
	if len(points) < minTrendPoints {
		return entity.TrendFit{}, false
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	distinct := false
	for i, p := range points {
		xs[i] = float64(p.Year)
		ys[i] = p.Value
		if p.Year != points[0].Year {
			distinct = true
		}
	}
	if !distinct {
		return entity.TrendFit{}, false
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return entity.TrendFit{}, false
	}

	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// Constant y: the line is exact.
		r2 = 1
	}

	return entity.TrendFit{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  r2,
		N:         len(points),
	}, true
}

// trendPoints evaluates fit at the x-values of points.
func trendPoints(fit entity.TrendFit, points []entity.Point) []entity.Point {
	out := make([]entity.Point, len(points))
	for i, p := range points {
		out[i] = entity.Point{Year: p.Year, Value: fit.Predict(p.Year)}
	}
	return out
}
