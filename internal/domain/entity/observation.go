package entity

// Characteristic labels the measured quantity of an observation.
type Characteristic string

const (
	CharacteristicNewCases   Characteristic = "Number of new cancer cases"
	CharacteristicAverageAge Characteristic = "Average age at diagnosis"
)

// Observation is a single row of the cancer statistics table.
type Observation struct {
	Region         string         `json:"region"`
	CancerType     string         `json:"cancer_type"`
	Sex            string         `json:"sex"`
	Characteristic Characteristic `json:"characteristic"`
	Year           int            `json:"year"`
	Value          float64        `json:"value"`
}

// ObservationKey identifies an observation; the dataset holds at most one row per key.
type ObservationKey struct {
	Region         string
	CancerType     string
	Sex            string
	Characteristic Characteristic
	Year           int
}

// Key returns the identity of the observation.
func (o Observation) Key() ObservationKey {
	return ObservationKey{
		Region:         o.Region,
		CancerType:     o.CancerType,
		Sex:            o.Sex,
		Characteristic: o.Characteristic,
		Year:           o.Year,
	}
}
