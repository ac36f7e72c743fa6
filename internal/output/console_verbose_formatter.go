package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/calculation"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
)

// ConsolePayslipFormatter renders a full payslip per employee: gross-to-net,
// employer charges, year-to-date totals, compliance verdicts and the holiday
// allowance ledger.
type ConsolePayslipFormatter struct{}

func (c ConsolePayslipFormatter) Name() string      { return "console" }
func (c ConsolePayslipFormatter) Extension() string { return "txt" }

func (c ConsolePayslipFormatter) Format(run *domain.PayrollRun) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "PAYROLL %s\n", strings.ToUpper(FormatPeriod(run.Year, run.Month)))
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "Run ID: %s\n", run.RunID)
	fmt.Fprintln(&buf)

	for i := range run.Reports {
		writePayslip(&buf, &run.Reports[i])
	}

	if len(run.Failures) > 0 {
		fmt.Fprintln(&buf, "NOT CALCULATED")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, f := range run.Failures {
			fmt.Fprintf(&buf, "  %s: %s\n", f.EmployeeID, f.Error)
		}
	}
	return buf.Bytes(), nil
}

func writePayslip(buf *bytes.Buffer, r *domain.PayrollReport) {
	p := r.Period
	fmt.Fprintf(buf, "EMPLOYEE %s (%s, %s)\n", p.Key.EmployeeID, p.ContractType, p.TaxTable)
	fmt.Fprintln(buf, strings.Repeat("=", 50))

	fmt.Fprintf(buf, "  Gross salary:            %s\n", FormatCurrency(p.GrossSalary))
	if !p.ProRataFactor.Equal(decimalOne) {
		fmt.Fprintf(buf, "  Pro-rata factor:         %s\n", p.ProRataFactor.String())
	}
	fmt.Fprintf(buf, "  Hours worked / expected: %s / %s\n", p.HoursWorked.StringFixed(2), p.ExpectedHours.StringFixed(2))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "  WAGE TAX:")
	for _, b := range p.TaxBreakdown {
		if b.TaxableAmount.IsZero() {
			continue
		}
		fmt.Fprintf(buf, "    %s bracket on %s/yr:  %s\n", FormatPercentage(b.Rate), FormatCurrency(b.TaxableAmount), FormatCurrency(b.MonthlyTax))
	}
	if p.TaxCredit.IsPositive() {
		fmt.Fprintf(buf, "    General tax credit:     %s\n", FormatSignedCurrency(p.TaxCredit.Neg()))
	}
	fmt.Fprintf(buf, "    Wage tax:                %s\n", FormatCurrency(p.TaxAmount))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "  EMPLOYEE CONTRIBUTIONS:")
	for _, l := range p.SocialSecurity.Lines {
		fmt.Fprintf(buf, "    %-4s %7s:            %s\n", l.Name, FormatPercentage(l.Rate), FormatCurrency(l.Amount))
	}
	fmt.Fprintf(buf, "    Total:                   %s\n", FormatCurrency(p.SocialSecurity.Total))
	fmt.Fprintf(buf, "  TOTAL DEDUCTIONS:          %s\n", FormatCurrency(p.TotalDeductions()))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "  NET SALARY:                %s\n", FormatCurrency(p.NetSalary))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "  EMPLOYER CHARGES:")
	for _, l := range p.EmployerSocialSec.Lines {
		fmt.Fprintf(buf, "    %-4s %7s:            %s\n", l.Name, FormatPercentage(l.Rate), FormatCurrency(l.Amount))
	}
	fmt.Fprintf(buf, "    Holiday allowance %s:  %s\n", FormatPercentage(p.HolidayAllowanceRate), FormatCurrency(p.HolidayAllowanceAccrual))
	fmt.Fprintf(buf, "    Employer cost:           %s\n", FormatCurrency(p.EmployerCost))
	fmt.Fprintln(buf)

	c := r.Cumulative
	fmt.Fprintf(buf, "  YEAR TO DATE (through %s):\n", time.Month(clampMonth(c.ThroughMonth)))
	fmt.Fprintf(buf, "    Gross:                   %s\n", FormatCurrency(c.GrossSalary))
	fmt.Fprintf(buf, "    Wage tax:                %s\n", FormatCurrency(c.TaxAmount))
	fmt.Fprintf(buf, "    Social security:         %s\n", FormatCurrency(c.SocialSecurity))
	fmt.Fprintf(buf, "    Net:                     %s\n", FormatCurrency(c.NetSalary))
	fmt.Fprintf(buf, "    Holiday allowance:       %s\n", FormatCurrency(c.HolidayAllowanceAccrued))
	fmt.Fprintf(buf, "    Vacation days accrued:   %s\n", c.VacationDaysAccrued.StringFixed(2))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "  COMPLIANCE:")
	for _, v := range r.Verdicts {
		mark := complianceMark(v.IsCompliant)
		if v.Degraded {
			mark += "*"
		}
		fmt.Fprintf(buf, "    [%-5s] %-18s %s\n", mark, v.RuleID, v.Message)
	}
	fmt.Fprintln(buf)

	if len(p.Defaults) > 0 {
		fmt.Fprintln(buf, "  DEFAULTS APPLIED:")
		for _, d := range p.Defaults {
			fmt.Fprintf(buf, "    %s = %s (%s)\n", d.Field, d.Value, d.Reason)
		}
		fmt.Fprintln(buf)
	}

	for _, e := range r.HolidaySchedule {
		if e.IsPayoutMonth {
			fmt.Fprintf(buf, "  Holiday allowance payout in %s: %s\n", time.Month(e.Month), FormatCurrency(e.Payout))
		}
	}
	if months := calculation.PayoutMonths(r.HolidaySchedule); len(months) > 1 {
		fmt.Fprintf(buf, "  Holiday allowance paid this year: %s\n", FormatCurrency(calculation.TotalPayout(r.HolidaySchedule)))
	}
	if owed := calculation.ClosingBalance(r.HolidaySchedule); owed.IsPositive() {
		fmt.Fprintf(buf, "  Holiday allowance reserved for next May: %s\n", FormatCurrency(owed))
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(buf, "  WARNINGS:")
		for _, w := range r.Warnings {
			fmt.Fprintf(buf, "    • %s\n", w)
		}
	}
	fmt.Fprintln(buf)
}

func clampMonth(m int) int {
	if m < 1 {
		return 1
	}
	if m > 12 {
		return 12
	}
	return m
}
