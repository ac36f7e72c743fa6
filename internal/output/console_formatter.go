package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter provides a concise one-line-per-employee run summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console-lite" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(run *domain.PayrollRun) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PAYROLL RUN %s\n", FormatPeriod(run.Year, run.Month))
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Run ID: %s\n", run.RunID)
	fmt.Fprintln(&buf)

	reports := append([]domain.PayrollReport(nil), run.Reports...)
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Period.Key.EmployeeID < reports[j].Period.Key.EmployeeID
	})

	gross, net, cost := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range reports {
		p := r.Period
		fmt.Fprintf(&buf, "%-12s Gross=%s Tax=%s SS=%s Net=%s Cost=%s %s\n",
			p.Key.EmployeeID,
			FormatCurrency(p.GrossSalary),
			FormatCurrency(p.TaxAmount),
			FormatCurrency(p.SocialSecurity.Total),
			FormatCurrency(p.NetSalary),
			FormatCurrency(p.EmployerCost),
			complianceMark(r.IsCompliant()),
		)
		gross = gross.Add(p.GrossSalary)
		net = net.Add(p.NetSalary)
		cost = cost.Add(p.EmployerCost)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Employees: %d  Gross: %s  Net: %s  Employer cost: %s\n", len(reports), FormatCurrency(gross), FormatCurrency(net), FormatCurrency(cost))
	if len(run.Failures) > 0 {
		fmt.Fprintf(&buf, "Failed: %d\n", len(run.Failures))
		for _, f := range run.Failures {
			fmt.Fprintf(&buf, "  %s: %s\n", f.EmployeeID, strings.TrimSpace(f.Error))
		}
	}
	return buf.Bytes(), nil
}
