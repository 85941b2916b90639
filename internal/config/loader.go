package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed archetypes.csv
var defaultArchetypesCSV string

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// DefaultArchetypes returns the bundled reference unit table.
func DefaultArchetypes() (*ArchetypesConfig, error) {
	return ParseArchetypesCSV(strings.NewReader(defaultArchetypesCSV))
}

// LoadArchetypes reads a unit table from a .csv or .yaml/.yml file.
func LoadArchetypes(path string) (*ArchetypesConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseArchetypesCSV(f)
	case ".yaml", ".yml":
		var ac ArchetypesConfig
		if err := loadYAML(path, &ac); err != nil {
			return nil, err
		}
		if len(ac.Units) == 0 {
			return nil, errors.New(path + ": no units")
		}
		return &ac, nil
	}
	return nil, errors.New(path + ": unsupported archetype file type")
}

// LoadAll reads sim.yaml and an optional archetypes.yaml or archetypes.csv from
// dir. A missing sim.yaml yields the defaults; a missing archetype table yields
// a nil *ArchetypesConfig so callers fall back to the bundled catalog.
func LoadAll(dir string) (*SimConfig, *ArchetypesConfig, error) {
	var sc SimConfig
	if err := loadYAML(filepath.Join(dir, "sim.yaml"), &sc); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, err
	}
	sc = sc.WithDefaults()

	for _, name := range []string{"archetypes.yaml", "archetypes.csv"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, nil, err
		}
		ac, err := LoadArchetypes(path)
		if err != nil {
			return nil, nil, err
		}
		return &sc, ac, nil
	}
	return &sc, nil, nil
}
