package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/cancer-stats-dashboard-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

var supportedReportTypes = map[string]bool{"csv": true, "json": true, "pdf": true, "svg": true}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if err := normalizeConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return &cfg, nil
}

// normalizeConfig apara espaços e valida os tipos de relatório.
func normalizeConfig(cfg *types.Config) error {
	cfg.Data = strings.TrimSpace(cfg.Data)
	cfg.Addr = strings.TrimSpace(cfg.Addr)

	sexes := cfg.Sexes[:0]
	for _, s := range cfg.Sexes {
		if s = strings.TrimSpace(s); s != "" {
			sexes = append(sexes, s)
		}
	}
	cfg.Sexes = sexes

	for i, rt := range cfg.ReportType {
		rt = strings.ToLower(strings.TrimSpace(rt))
		if !supportedReportTypes[rt] {
			return fmt.Errorf("unsupported report type %q", rt)
		}
		cfg.ReportType[i] = rt
	}
	return nil
}
