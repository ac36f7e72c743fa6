package calculation

import (
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// factorPlaces is the precision a pro-rata factor is carried at. All pro-rated
// quantities of one period use the same rounded factor.
const factorPlaces = 6

// WorkingDayCalendar counts working days in an inclusive date range.
type WorkingDayCalendar interface {
	WorkingDays(from, to time.Time) int
}

// WeekdayCalendar counts Monday through Friday. Public holidays are not
// observed, which matches the statutory simplification used for payroll.
type WeekdayCalendar struct{}

func (WeekdayCalendar) WorkingDays(from, to time.Time) int {
	return dateutil.WeekdaysBetween(from, to)
}

// EmployedWorkingDays returns the working days of the month that fall inside
// the employment, and the working days of the whole month. A zero start date
// places no lower bound on employment.
func EmployedWorkingDays(start time.Time, end *time.Time, year, month int, cal WorkingDayCalendar) (int, int) {
	if cal == nil {
		cal = WeekdayCalendar{}
	}
	first := dateutil.StartOfMonth(year, time.Month(month))
	last := dateutil.EndOfMonth(year, time.Month(month))
	total := cal.WorkingDays(first, last)

	from, to := first, last
	if !start.IsZero() && dateutil.TruncateToDay(start).After(from) {
		from = dateutil.TruncateToDay(start)
	}
	if end != nil && dateutil.TruncateToDay(*end).Before(to) {
		to = dateutil.TruncateToDay(*end)
	}
	if to.Before(from) {
		return 0, total
	}
	return cal.WorkingDays(from, to), total
}

// ProRataFactor is the fraction of the month's working days the employee was
// under contract: 1 when tenure covers every working day, 0 when it covers
// none. Calendar days outside tenure that are not working days do not count,
// so starting on the first Monday after a weekend 1st still yields 1.
func ProRataFactor(start time.Time, end *time.Time, year, month int, cal WorkingDayCalendar) decimal.Decimal {
	worked, total := EmployedWorkingDays(start, end, year, month, cal)
	if total == 0 || worked == 0 {
		return decimal.Zero
	}
	if worked >= total {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(worked)).
		DivRound(decimal.NewFromInt(int64(total)), factorPlaces)
}
