// Package defaults provides the fallback schema set used when no schema
// document exists for a dataset root.
package defaults

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/fileconv/pkg/models"
	"github.com/ekaya-inc/fileconv/pkg/services"
)

//go:embed schemas.yaml
var builtinSchemas []byte

type schemaSet struct {
	Datasets []datasetColumns `yaml:"datasets"`
}

type datasetColumns struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

// Load returns the default column mapping. An empty path selects the built-in
// set; otherwise the YAML file at path is used.
func Load(path string) (*models.ColumnMapping, error) {
	data := builtinSchemas
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read default schemas: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes a default schema set document.
func Parse(data []byte) (*models.ColumnMapping, error) {
	var set schemaSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse default schemas: %w", err)
	}
	if len(set.Datasets) == 0 {
		return nil, errors.New("default schemas define no datasets")
	}

	names := make([]string, 0, len(set.Datasets))
	columns := make([][]string, 0, len(set.Datasets))
	seen := make(map[string]bool, len(set.Datasets))
	for _, d := range set.Datasets {
		if d.Name == "" {
			return nil, errors.New("default schemas contain a dataset without a name")
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("default schemas list dataset %q twice", d.Name)
		}
		seen[d.Name] = true
		names = append(names, d.Name)
		columns = append(columns, d.Columns)
	}
	return services.ProjectFromLiterals(names, columns), nil
}
