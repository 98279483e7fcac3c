package entity

// Dataset is the read-only, process-lifetime view of the loaded table.
// It is safe for concurrent use because nothing mutates it after NewDataset.
type Dataset struct {
	observations []Observation
	subsets      map[Characteristic][]Observation
	regions      []string
	cancerTypes  []string
	sexes        []string
}

// NewDataset partitions observations by characteristic and derives the
// dropdown option lists in first-occurrence order.
func NewDataset(observations []Observation) *Dataset {
	ds := &Dataset{
		observations: observations,
		subsets:      make(map[Characteristic][]Observation),
	}

	seenRegion := make(map[string]bool)
	seenType := make(map[string]bool)
	seenSex := make(map[string]bool)

	for _, o := range observations {
		if !seenRegion[o.Region] {
			seenRegion[o.Region] = true
			ds.regions = append(ds.regions, o.Region)
		}
		if !seenType[o.CancerType] {
			seenType[o.CancerType] = true
			ds.cancerTypes = append(ds.cancerTypes, o.CancerType)
		}
		if !seenSex[o.Sex] {
			seenSex[o.Sex] = true
			ds.sexes = append(ds.sexes, o.Sex)
		}

		switch o.Characteristic {
		case CharacteristicNewCases, CharacteristicAverageAge:
			ds.subsets[o.Characteristic] = append(ds.subsets[o.Characteristic], o)
		}
	}

	return ds
}

// Subset returns the rows of one characteristic. Callers must not modify the slice.
func (d *Dataset) Subset(c Characteristic) []Observation {
	return d.subsets[c]
}

// Len returns the number of observations in the full table.
func (d *Dataset) Len() int {
	return len(d.observations)
}

func (d *Dataset) Regions() []string     { return cloneStrings(d.regions) }
func (d *Dataset) CancerTypes() []string { return cloneStrings(d.cancerTypes) }
func (d *Dataset) Sexes() []string       { return cloneStrings(d.sexes) }

// FilterOptions agrupa as listas usadas para popular os dropdowns.
type FilterOptions struct {
	Regions     []string `json:"regions"`
	CancerTypes []string `json:"cancer_types"`
	Sexes       []string `json:"sexes"`
}

// Options returns the three dropdown option lists.
func (d *Dataset) Options() FilterOptions {
	return FilterOptions{
		Regions:     d.Regions(),
		CancerTypes: d.CancerTypes(),
		Sexes:       d.Sexes(),
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
