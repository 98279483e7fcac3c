package usecase

import "github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"

// observationFilter reports whether a row is kept.
type observationFilter func(entity.Observation) bool

func byRegion(region string) observationFilter {
	return func(o entity.Observation) bool { return o.Region == region }
}

func byCancerType(cancerType string) observationFilter {
	return func(o entity.Observation) bool { return o.CancerType == cancerType }
}

func bySex(sex string) observationFilter {
	return func(o entity.Observation) bool { return o.Sex == sex }
}

func upToYear(year int) observationFilter {
	return func(o entity.Observation) bool { return o.Year <= year }
}

// filterObservations keeps rows matching every filter, preserving stored order.
// The result never aliases rows.
func filterObservations(rows []entity.Observation, filters ...observationFilter) []entity.Observation {
	out := make([]entity.Observation, 0)
	for _, o := range rows {
		keep := true
		for _, f := range filters {
			if !f(o) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, o)
		}
	}
	return out
}
