package catalog

import (
	"fmt"
	"os"

	"spacebook/pkg/model"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Spaces []model.Space `yaml:"spaces"`
}

// LoadFile reads space definitions from a YAML document with a top-level "spaces" list.
func LoadFile(path string) ([]model.Space, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseYAML(data)
}

func ParseYAML(data []byte) ([]model.Space, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return doc.Spaces, nil
}
