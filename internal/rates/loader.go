package rates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates one YAML rate table
func LoadFile(path string) (domain.RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to read rate table %s: %w", path, err)
	}
	var rt domain.RateTable
	if err := yaml.Unmarshal(data, &rt); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to parse rate table %s: %w", path, err)
	}
	if err := Validate(rt); err != nil {
		return domain.RateTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return rt, nil
}

// LoadDir reads every *.yaml / *.yml file in dir as a rate table, ordered by
// file name. Two files for the same year are an error.
func LoadDir(dir string) ([]domain.RateTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	tables := make([]domain.RateTable, 0, len(names))
	seen := make(map[int]string, len(names))
	for _, name := range names {
		rt, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[rt.Year]; dup {
			return nil, fmt.Errorf("%w: year %d defined in both %s and %s", ErrMalformedRateTable, rt.Year, prev, name)
		}
		seen[rt.Year] = name
		tables = append(tables, rt)
	}
	return tables, nil
}
