package dataset

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/cancer-stats-dashboard-go/internal/shared/types"
)

// ObjectFetcher downloads remote dataset objects (s3:// URLs).
type ObjectFetcher interface {
	FetchObject(ctx context.Context, rawURL string) ([]byte, error)
}

// DatasetRepositoryImpl implementa o DatasetRepository para arquivos CSV e XLSX,
// locais ou no S3.
type DatasetRepositoryImpl struct {
	fetcher ObjectFetcher
}

// NewDatasetRepository cria uma nova implementação do DatasetRepository.
// fetcher may be nil when only local files are used.
func NewDatasetRepository(fetcher ObjectFetcher) repository.DatasetRepository {
	return &DatasetRepositoryImpl{fetcher: fetcher}
}

// LoadObservations reads and decodes source.
func (r *DatasetRepositoryImpl) LoadObservations(ctx context.Context, source string) ([]entity.Observation, int, error) {
	data, ext, err := r.read(ctx, source)
	if err != nil {
		return nil, 0, err
	}

	var tbl *table
	switch ext {
	case ".csv":
		tbl, err = readCSV(bytes.NewReader(data))
	case ".xlsx":
		tbl, err = readXLSX(data)
	default:
		return nil, 0, fmt.Errorf("%w: %q (expected .csv or .xlsx)", types.ErrUnsupportedSource, source)
	}
	if err != nil {
		return nil, 0, err
	}

	return decodeTable(tbl)
}

func (r *DatasetRepositoryImpl) read(ctx context.Context, source string) ([]byte, string, error) {
	if strings.HasPrefix(source, "s3://") {
		if r.fetcher == nil {
			return nil, "", fmt.Errorf("%w: no S3 client configured for %s", types.ErrUnsupportedSource, source)
		}
		data, err := r.fetcher.FetchObject(ctx, source)
		if err != nil {
			return nil, "", err
		}
		return data, strings.ToLower(path.Ext(source)), nil
	}

	fileInfo, err := os.Stat(source)
	if err != nil {
		return nil, "", fmt.Errorf("error accessing dataset file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory, not a file", source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, "", fmt.Errorf("error reading dataset file: %w", err)
	}
	return data, strings.ToLower(filepath.Ext(source)), nil
}
