package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/config"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders run with the named formatter and writes it to w.
func GenerateReport(w io.Writer, run *domain.PayrollRun, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(run)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s report: %w", f.Name(), err)
	}
	return nil
}

// SaveConfiguration writes a payroll configuration as YAML.
func SaveConfiguration(cfg *config.PayrollConfiguration, filename string) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
