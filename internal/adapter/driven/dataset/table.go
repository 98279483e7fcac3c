package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/cancer-stats-dashboard-go/internal/shared/types"
)

// Source column names.
const (
	ColumnRegion         = "GEO"
	ColumnCancerType     = "Primary types of cancer (ICD-O-3)"
	ColumnSex            = "Sex"
	ColumnCharacteristic = "Characteristics"
	ColumnYear           = "REF_DATE"
	ColumnValue          = "VALUE"
)

var requiredColumns = []string{
	ColumnRegion,
	ColumnCancerType,
	ColumnSex,
	ColumnCharacteristic,
	ColumnYear,
	ColumnValue,
}

// table is a header plus data rows, independent of the file format.
type table struct {
	header []string
	rows   [][]string
}

// decodeTable maps rows to observations. Rows with an empty value are
// suppressed statistics and are counted in skipped instead of returned.
func decodeTable(tbl *table) ([]entity.Observation, int, error) {
	index := make(map[string]int, len(tbl.header))
	for i, h := range tbl.header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, 0, fmt.Errorf("%w: %s", types.ErrMissingColumns, strings.Join(missing, ", "))
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	observations := make([]entity.Observation, 0, len(tbl.rows))
	seen := make(map[entity.ObservationKey]int, len(tbl.rows))
	skipped := 0

	for i, row := range tbl.rows {
		line := i + 2 // header is line 1

		rawValue := cell(row, ColumnValue)
		if rawValue == "" {
			skipped++
			continue
		}

		value, err := strconv.ParseFloat(rawValue, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: invalid %s %q: %w", line, ColumnValue, rawValue, err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, 0, fmt.Errorf("line %d: invalid %s %q: not a finite number", line, ColumnValue, rawValue)
		}

		year, err := parseYear(cell(row, ColumnYear))
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}

		o := entity.Observation{
			Region:         cell(row, ColumnRegion),
			CancerType:     cell(row, ColumnCancerType),
			Sex:            cell(row, ColumnSex),
			Characteristic: entity.Characteristic(cell(row, ColumnCharacteristic)),
			Year:           year,
			Value:          value,
		}

		if prev, dup := seen[o.Key()]; dup {
			return nil, 0, fmt.Errorf("line %d repeats line %d (%s, %s, %s, %s, %d): %w",
				line, prev, o.Region, o.CancerType, o.Sex, o.Characteristic, o.Year, types.ErrDuplicateObservation)
		}
		seen[o.Key()] = line

		observations = append(observations, o)
	}

	return observations, skipped, nil
}

// parseYear accepts "2017" and spreadsheet renderings such as "2017.0".
func parseYear(raw string) (int, error) {
	if y, err := strconv.Atoi(raw); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid %s %q: not an integer year", ColumnYear, raw)
	}
	return int(f), nil
}
