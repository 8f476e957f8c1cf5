package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ybenarab/dzfisc/internal/domain"
)

// LoadFigures reads a YAML file of simulation input figures. Missing fields
// decode to zero, matching the engine's treatment of absent amounts.
func LoadFigures(path string) (domain.Figures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Figures{}, fmt.Errorf("read figures file %s: %w", path, err)
	}
	var figures domain.Figures
	if err := yaml.Unmarshal(data, &figures); err != nil {
		return domain.Figures{}, fmt.Errorf("parse figures file %s: %w", path, err)
	}
	return figures, nil
}
