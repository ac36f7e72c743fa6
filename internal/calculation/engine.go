package calculation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/rates"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds RunBatch when Engine.Concurrency is not set
const DefaultConcurrency = 8

// CalculationEngine orchestrates one payroll period: gross-to-net, year-to-date
// aggregation, compliance and the holiday allowance ledger. It keeps no state
// between calls.
type CalculationEngine struct {
	Rates       *rates.Registry
	Calc        *PayrollCalculator
	Calendar    WorkingDayCalendar
	Concurrency int
	Logger      Logger
}

// NewCalculationEngine creates an engine over the built-in rate tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRates(rates.Builtin())
}

// NewCalculationEngineWithRates creates an engine over a specific registry
func NewCalculationEngineWithRates(reg *rates.Registry) *CalculationEngine {
	return &CalculationEngine{
		Rates:       reg,
		Calc:        NewPayrollCalculator(reg),
		Calendar:    WeekdayCalendar{},
		Concurrency: DefaultConcurrency,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its calculator. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Calc.Logger = l
}

// SetCalendar swaps the working-day calendar used for pro-rating
func (ce *CalculationEngine) SetCalendar(cal WorkingDayCalendar) {
	if cal == nil {
		cal = WeekdayCalendar{}
	}
	ce.Calendar = cal
	ce.Calc.Calendar = cal
}

// ProcessPeriod calculates the target period and builds the full report.
//
// prior is the stored history of the same employee and year. A stored record
// with the target PeriodKey is replaced by the fresh calculation and records
// after the target month are ignored, so processing the same period twice
// always yields the same report.
func (ce *CalculationEngine) ProcessPeriod(emp domain.EmployeeSnapshot, prior []domain.PeriodResult, input domain.PeriodInput) (*domain.PayrollReport, error) {
	period, err := ce.Calc.Calculate(emp, input)
	if err != nil {
		return nil, fmt.Errorf("ProcessPeriod failed: %w", err)
	}

	warnings := SequenceWarnings(prior)
	history := make([]domain.PeriodResult, 0, len(prior)+1)
	dropped := 0
	for _, p := range prior {
		switch {
		case p.Key == period.Key:
			warnings = append(warnings, fmt.Sprintf("stored result for %s replaced by recalculation", p.Key))
		case p.Key.EmployeeID == period.Key.EmployeeID && p.Key.Year == period.Key.Year && p.Key.Month > period.Key.Month:
			dropped++
		default:
			history = append(history, p)
		}
	}
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d stored period(s) after %s ignored", dropped, period.Key))
	}
	history = SortPeriods(append(history, period))

	cumulative, err := Aggregate(emp.ID, input.Year, history)
	if err != nil {
		return nil, fmt.Errorf("ProcessPeriod failed: %w", err)
	}
	if missing := cumulative.MissingMonths(); len(missing) > 0 {
		warnings = append(warnings, fmt.Sprintf("year-to-date totals exclude missing months %v", missing))
	}

	ref, _ := ResolveReferenceDate(input.ReferenceDate, input.Year, input.Month)
	rt, err := ce.Rates.Lookup(input.Year)
	if err != nil {
		return nil, fmt.Errorf("ProcessPeriod failed: %w", err)
	}
	verdicts := RunComplianceChecks(ComplianceInput{
		Employee:      emp,
		Period:        period,
		Cumulative:    cumulative,
		Table:         rt,
		ReferenceDate: ref,
		Calendar:      ce.calendar(),
	})
	for _, v := range verdicts {
		if !v.IsCompliant {
			ce.logger().Warnf("employee %s %s: %s non-compliant: %s", emp.ID, period.Key, v.RuleID, v.Message)
		}
	}

	schedule, scheduleWarnings := ce.holidaySchedule(emp, history, input.Year, input.Month, ref)
	warnings = append(warnings, scheduleWarnings...)

	for _, w := range warnings {
		ce.logger().Warnf("employee %s: %s", emp.ID, w)
	}

	return &domain.PayrollReport{
		Period:          period,
		Cumulative:      cumulative,
		Verdicts:        verdicts,
		HolidaySchedule: schedule,
		Warnings:        warnings,
	}, nil
}

// RecomputeYear recalculates months 1..throughMonth from the snapshot alone and
// reports on throughMonth. hours holds optional timesheet overrides per month.
// This is the reference path: it never depends on stored results.
func (ce *CalculationEngine) RecomputeYear(emp domain.EmployeeSnapshot, year, throughMonth int, hours map[int]decimal.Decimal, ref time.Time) (*domain.PayrollReport, error) {
	if throughMonth < 1 || throughMonth > 12 {
		return nil, fmt.Errorf("RecomputeYear failed: %w: month %d outside 1..12", ErrInvalidPeriod, throughMonth)
	}

	prior, err := ce.PriorPeriods(emp, year, throughMonth, hours)
	if err != nil {
		return nil, fmt.Errorf("RecomputeYear failed: %w", err)
	}

	return ce.ProcessPeriod(emp, prior, domain.PeriodInput{
		Year:          year,
		Month:         throughMonth,
		HoursWorked:   hoursFor(hours, throughMonth),
		ReferenceDate: ref,
	})
}

// PriorPeriods recalculates months 1..beforeMonth-1 of year from the snapshot.
// The result is suitable as PayrollRequest.PriorPeriods.
func (ce *CalculationEngine) PriorPeriods(emp domain.EmployeeSnapshot, year, beforeMonth int, hours map[int]decimal.Decimal) ([]domain.PeriodResult, error) {
	if beforeMonth < 1 {
		return nil, nil
	}
	prior := make([]domain.PeriodResult, 0, beforeMonth-1)
	for m := 1; m < beforeMonth && m <= 12; m++ {
		in := domain.PeriodInput{Year: year, Month: m, HoursWorked: hoursFor(hours, m)}
		p, err := ce.Calc.Calculate(emp, in)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", m, err)
		}
		prior = append(prior, p)
	}
	return prior, nil
}

// RunBatch processes many employees concurrently with bounded parallelism.
// A run covers a single period: requests for different periods are rejected
// with ErrInvalidPeriod before any work starts. A hard failure for one
// employee is recorded in PayrollRun.Failures and does not stop the others.
// Only context cancellation aborts the run.
func (ce *CalculationEngine) RunBatch(ctx context.Context, requests []domain.PayrollRequest) (*domain.PayrollRun, error) {
	run := &domain.PayrollRun{RunID: uuid.NewString()}
	if len(requests) > 0 {
		run.Year = requests[0].Input.Year
		run.Month = requests[0].Input.Month
	}
	for _, req := range requests {
		if req.Input.Year != run.Year || req.Input.Month != run.Month {
			return nil, fmt.Errorf("payroll run %s: %w: employee %s requests %04d-%02d in a %04d-%02d run",
				run.RunID, ErrInvalidPeriod, req.Employee.ID, req.Input.Year, req.Input.Month, run.Year, run.Month)
		}
	}
	ce.logger().Infof("payroll run %s: %d employee(s) for %04d-%02d", run.RunID, len(requests), run.Year, run.Month)

	// each goroutine writes only its own index
	reports := make([]*domain.PayrollReport, len(requests))
	failures := make([]*domain.RunFailure, len(requests))

	limit := ce.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range requests {
		if gctx.Err() != nil {
			break
		}
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := ce.ProcessPeriod(req.Employee, req.PriorPeriods, req.Input)
			if err != nil {
				ce.logger().Errorf("payroll run %s: employee %s: %v", run.RunID, req.Employee.ID, err)
				failures[i] = &domain.RunFailure{EmployeeID: req.Employee.ID, Error: err.Error()}
				return nil
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("payroll run %s cancelled: %w", run.RunID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("payroll run %s cancelled: %w", run.RunID, err)
	}

	run.Reports = make([]domain.PayrollReport, 0, len(requests))
	for i := range requests {
		if reports[i] != nil {
			run.Reports = append(run.Reports, *reports[i])
		}
		if failures[i] != nil {
			run.Failures = append(run.Failures, *failures[i])
		}
	}
	ce.logger().Infof("payroll run %s: %d report(s), %d failure(s)", run.RunID, len(run.Reports), len(run.Failures))
	return run, nil
}

// holidaySchedule builds the year's ledger from actual accruals through the
// current month and projected accruals for the months after it.
func (ce *CalculationEngine) holidaySchedule(emp domain.EmployeeSnapshot, history []domain.PeriodResult, year, month int, ref time.Time) ([]domain.HolidayScheduleEntry, []string) {
	var warnings []string
	accruals := AccrualsFromPeriods(year, history)
	for m := month + 1; m <= 12; m++ {
		p, err := ce.Calc.Calculate(emp, domain.PeriodInput{Year: year, Month: m, ReferenceDate: ref})
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("holiday schedule projection stopped at month %d: %v", m, err))
			break
		}
		accruals[m] = p.HolidayAllowanceAccrual
	}
	return HolidayAllowanceSchedule(accruals, TerminationMonth(emp, year)), warnings
}

// TerminationMonth returns the month in year in which employment ends, or 0
// when the contract does not end in that year.
func TerminationMonth(emp domain.EmployeeSnapshot, year int) int {
	if emp.EndDate == nil || emp.EndDate.Year() != year {
		return 0
	}
	end := dateutil.TruncateToDay(*emp.EndDate)
	return int(end.Month())
}

// SortPeriods orders periods by year and month, keeping input order for equal keys
func SortPeriods(periods []domain.PeriodResult) []domain.PeriodResult {
	out := append([]domain.PeriodResult(nil), periods...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Key.Year != out[j].Key.Year {
			return out[i].Key.Year < out[j].Key.Year
		}
		return out[i].Key.Month < out[j].Key.Month
	})
	return out
}

func hoursFor(hours map[int]decimal.Decimal, month int) *decimal.Decimal {
	h, ok := hours[month]
	if !ok {
		return nil
	}
	return &h
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

func (ce *CalculationEngine) calendar() WorkingDayCalendar {
	if ce.Calendar == nil {
		return WeekdayCalendar{}
	}
	return ce.Calendar
}
