package types

import "errors"

var (
	ErrMissingColumns       = errors.New("dataset is missing required columns")
	ErrDuplicateObservation = errors.New("duplicate observation in dataset")
	ErrEmptyDataset         = errors.New("dataset contains no observations")
	ErrUnsupportedSource    = errors.New("unsupported dataset source")
	ErrUnknownChartKind     = errors.New("unknown chart kind")
)
