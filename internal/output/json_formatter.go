package output

import (
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	json "github.com/goccy/go-json"
)

// JSONFormatter serializes the payroll run as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(run *domain.PayrollRun) ([]byte, error) {
	return json.MarshalIndent(run, "", "  ")
}
