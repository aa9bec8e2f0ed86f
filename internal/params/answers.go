package params

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadAnswers reads an answers file for non-interactive runs. The name is
// normalized the same way the interactive prompt normalizes it.
func LoadAnswers(path string) (Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Answers{}, fmt.Errorf("reading answers file %s: %w", path, err)
	}

	var a Answers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Answers{}, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	a.Name = Normalize(a.Name)
	return a, nil
}

// WithDefaults fills empty fields of a from d.
func (a Answers) WithDefaults(d Answers) Answers {
	if a.Name == "" {
		a.Name = d.Name
	}
	if a.Version == "" {
		a.Version = d.Version
	}
	if a.Description == "" {
		a.Description = d.Description
	}
	if a.License == "" {
		a.License = d.License
	}
	if a.Category == "" {
		a.Category = d.Category
	}
	return a
}
