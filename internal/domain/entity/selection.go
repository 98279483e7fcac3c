package entity

// Valores iniciais dos filtros exibidos quando a página é aberta.
const (
	DefaultRegion     = "Canada"
	DefaultCancerType = "Total, all primary sites of cancer [C00.0-C80.9]"
	DefaultSex        = "Both sexes"
)

// FilterSelection is the user's current dropdown state.
type FilterSelection struct {
	Region     string   `json:"region"`
	CancerType string   `json:"cancer_type"`
	Sexes      []string `json:"sexes"`
}

// DefaultSelection returns the selection shown on first load.
func DefaultSelection() FilterSelection {
	return FilterSelection{
		Region:     DefaultRegion,
		CancerType: DefaultCancerType,
		Sexes:      []string{DefaultSex},
	}
}
