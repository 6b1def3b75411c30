package axioms

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"axion/internal/logging"
)

// theoryDecl is the YAML shape of a user-defined theory.
type theoryDecl struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Reference    string   `yaml:"reference"`
	Dependencies []string `yaml:"dependencies"`
	Axioms       []Axiom  `yaml:"axioms"`
}

// theoryFile is the YAML document declaring custom theories.
type theoryFile struct {
	Theories []theoryDecl `yaml:"theories"`
}

// LoadFile reads a YAML theory file and registers every theory it declares,
// replacing same-named theories already in the library. Returns the names of
// the theories loaded.
func (l *Library) LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theory file: %w", err)
	}

	var doc theoryFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse theory file %s: %w", path, err)
	}

	var loaded []string
	for _, decl := range doc.Theories {
		if decl.Name == "" {
			return loaded, fmt.Errorf("theory file %s: theory with empty name", path)
		}
		theory := NewTheory(decl.Name, decl.Description)
		theory.Reference = decl.Reference
		theory.Dependencies = decl.Dependencies
		for _, ax := range decl.Axioms {
			if ax.Name == "" {
				return loaded, fmt.Errorf("theory %s: axiom with empty name", decl.Name)
			}
			theory.AddAxiom(ax.Name, ax.Statement)
		}
		l.AddTheory(theory)
		loaded = append(loaded, decl.Name)
	}

	logging.Axioms("Loaded %d theories from %s", len(loaded), path)
	return loaded, nil
}
