package output

import (
	"bytes"
	"fmt"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/gocarina/gocsv"
)

// registerRow is one line of the payroll register (loonstaat)
type registerRow struct {
	EmployeeID        string `csv:"employee_id"`
	Period            string `csv:"period"`
	ContractType      string `csv:"contract_type"`
	TaxTable          string `csv:"tax_table"`
	ProRataFactor     string `csv:"pro_rata_factor"`
	HoursWorked       string `csv:"hours_worked"`
	GrossSalary       string `csv:"gross_salary"`
	WageTax           string `csv:"wage_tax"`
	TaxCredit         string `csv:"tax_credit"`
	EmployeeSS        string `csv:"employee_social_security"`
	NetSalary         string `csv:"net_salary"`
	EmployerSS        string `csv:"employer_social_security"`
	HolidayAllowance  string `csv:"holiday_allowance_accrual"`
	EmployerCost      string `csv:"employer_cost"`
	YTDGross          string `csv:"ytd_gross"`
	YTDWageTax        string `csv:"ytd_wage_tax"`
	YTDNet            string `csv:"ytd_net"`
	Compliant         bool   `csv:"compliant"`
	DefaultsApplied   int    `csv:"defaults_applied"`
	WarningsGenerated int    `csv:"warnings"`
}

// RegisterCSVFormatter writes the payroll register: one row per calculated
// employee, amounts with two decimals and a dot separator.
type RegisterCSVFormatter struct{}

func (c RegisterCSVFormatter) Name() string      { return "csv" }
func (c RegisterCSVFormatter) Extension() string { return "csv" }

func (c RegisterCSVFormatter) Format(run *domain.PayrollRun) ([]byte, error) {
	rows := make([]*registerRow, 0, len(run.Reports))
	for i := range run.Reports {
		r := &run.Reports[i]
		p := r.Period
		rows = append(rows, &registerRow{
			EmployeeID:        p.Key.EmployeeID,
			Period:            fmt.Sprintf("%04d-%02d", p.Key.Year, p.Key.Month),
			ContractType:      string(p.ContractType),
			TaxTable:          string(p.TaxTable),
			ProRataFactor:     p.ProRataFactor.String(),
			HoursWorked:       p.HoursWorked.StringFixed(2),
			GrossSalary:       p.GrossSalary.StringFixed(2),
			WageTax:           p.TaxAmount.StringFixed(2),
			TaxCredit:         p.TaxCredit.StringFixed(2),
			EmployeeSS:        p.SocialSecurity.Total.StringFixed(2),
			NetSalary:         p.NetSalary.StringFixed(2),
			EmployerSS:        p.EmployerSocialSec.Total.StringFixed(2),
			HolidayAllowance:  p.HolidayAllowanceAccrual.StringFixed(2),
			EmployerCost:      p.EmployerCost.StringFixed(2),
			YTDGross:          r.Cumulative.GrossSalary.StringFixed(2),
			YTDWageTax:        r.Cumulative.TaxAmount.StringFixed(2),
			YTDNet:            r.Cumulative.NetSalary.StringFixed(2),
			Compliant:         r.IsCompliant(),
			DefaultsApplied:   len(p.Defaults),
			WarningsGenerated: len(r.Warnings),
		})
	}
	return marshalCSV(&rows)
}

// scheduleRow is one month of an employee's holiday allowance ledger
type scheduleRow struct {
	EmployeeID    string `csv:"employee_id"`
	Year          int    `csv:"year"`
	Month         int    `csv:"month"`
	Accrual       string `csv:"accrual"`
	Reserve       string `csv:"reserve"`
	Payout        string `csv:"payout"`
	Balance       string `csv:"balance"`
	IsPayoutMonth bool   `csv:"is_payout_month"`
}

// ScheduleCSVFormatter writes the holiday allowance ledger of every employee, twelve rows each.
type ScheduleCSVFormatter struct{}

func (c ScheduleCSVFormatter) Name() string      { return "schedule-csv" }
func (c ScheduleCSVFormatter) Extension() string { return "csv" }

func (c ScheduleCSVFormatter) Format(run *domain.PayrollRun) ([]byte, error) {
	var rows []*scheduleRow
	for _, r := range run.Reports {
		for _, e := range r.HolidaySchedule {
			rows = append(rows, &scheduleRow{
				EmployeeID:    r.Period.Key.EmployeeID,
				Year:          r.Period.Key.Year,
				Month:         e.Month,
				Accrual:       e.Accrual.StringFixed(2),
				Reserve:       e.Reserve.StringFixed(2),
				Payout:        e.Payout.StringFixed(2),
				Balance:       e.Balance.StringFixed(2),
				IsPayoutMonth: e.IsPayoutMonth,
			})
		}
	}
	return marshalCSV(&rows)
}

// complianceRow flattens a verdict with the employee it belongs to
type complianceRow struct {
	EmployeeID string `csv:"employee_id"`
	domain.ComplianceVerdict
}

// ComplianceCSVFormatter writes every compliance verdict of the run, one row per rule and employee.
type ComplianceCSVFormatter struct{}

func (c ComplianceCSVFormatter) Name() string      { return "compliance-csv" }
func (c ComplianceCSVFormatter) Extension() string { return "csv" }

func (c ComplianceCSVFormatter) Format(run *domain.PayrollRun) ([]byte, error) {
	var rows []*complianceRow
	for _, r := range run.Reports {
		for _, v := range r.Verdicts {
			rows = append(rows, &complianceRow{EmployeeID: r.Period.Key.EmployeeID, ComplianceVerdict: v})
		}
	}
	return marshalCSV(&rows)
}

func marshalCSV(rows interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}
