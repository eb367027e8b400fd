package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/gymweek/internal/models"
	"gopkg.in/yaml.v3"
)

// ParsePlanFile reads a plan definition. The format is picked from the file
// extension: .toml, .json, .yaml or .yml.
func ParsePlanFile(path string) (*models.PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlan(data, filepath.Ext(path))
}

// ParsePlan decodes data according to ext and validates the result.
func ParsePlan(data []byte, ext string) (*models.PlanFile, error) {
	var plan models.PlanFile

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("invalid TOML format: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("invalid JSON format: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("invalid YAML format: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported plan file extension %q", ext)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
