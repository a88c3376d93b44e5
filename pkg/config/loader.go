package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clickgrow/growcore/pkg/domain"
)

// CatalogLoader loads and validates the game catalog.
// An empty path selects the catalog embedded in the binary.
type CatalogLoader struct {
	catalogPath string
	validator   *Validator
	logger      *slog.Logger
}

// NewCatalogLoader creates a new CatalogLoader instance.
//
// Parameters:
//   - catalogPath: Path to a .yaml/.yml/.json catalog file, or "" for the embedded default
//   - logger: Structured logger for operational logging
func NewCatalogLoader(catalogPath string, logger *slog.Logger) *CatalogLoader {
	return &CatalogLoader{
		catalogPath: catalogPath,
		validator:   NewValidator(),
		logger:      logger,
	}
}

// LoadCatalog loads the catalog and returns it validated.
// This is a fail fast operation: an invalid catalog prevents startup.
func (l *CatalogLoader) LoadCatalog() (*Catalog, error) {
	var (
		catalog *Catalog
		err     error
		source  = l.catalogPath
	)

	if l.catalogPath == "" {
		source = "embedded"
		catalog, err = loadEmbedded()
	} else {
		catalog, err = loadFile(l.catalogPath)
	}
	if err != nil {
		return nil, err
	}

	fillDefaults(catalog)

	if err := l.validator.Validate(catalog); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	l.logger.Info("Catalog loaded successfully",
		"achievements", len(catalog.Achievements),
		"challenges", len(catalog.Challenges),
		"shop_items", len(catalog.ShopItems),
		"source", source,
	)

	return catalog, nil
}

// LoadDefault returns the embedded catalog, validated.
func LoadDefault(logger *slog.Logger) (*Catalog, error) {
	return NewCatalogLoader("", logger).LoadCatalog()
}

func loadEmbedded() (*Catalog, error) {
	catalog := &Catalog{}
	for _, name := range defaultCatalogFiles {
		data, err := defaultCatalogFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded catalog %s: %w", name, err)
		}
		var part Catalog
		if err := yaml.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("failed to parse embedded catalog %s: %w", name, err)
		}
		catalog.merge(&part)
	}
	return catalog, nil
}

func loadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
	return &catalog, nil
}

// fillDefaults sets fields that older catalog files may omit.
func fillDefaults(catalog *Catalog) {
	for _, def := range catalog.Challenges {
		if def.Tracking.Mode == "" {
			def.Tracking.Mode = domain.TrackingIncrement
		}
		if !def.Type.IsPeriodic() {
			def.OneTime = true
		}
	}
	for _, item := range catalog.ShopItems {
		if item.Effect == "" {
			item.Effect = domain.EffectNone
		}
		if item.Currency == "" {
			item.Currency = domain.ResourceCoins
		}
	}
}
