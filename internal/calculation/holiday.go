package calculation

import (
	"sort"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	money "github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/decimal"
	"github.com/shopspring/decimal"
)

// PayoutMonth is when the accumulated holiday allowance is paid (May).
const PayoutMonth = 5

// HolidayAllowanceSchedule builds the signed holiday allowance ledger for the
// twelve months of a year. accruals maps month to that month's accrual; absent
// months accrue nothing.
//
// Every month's accrual goes into the reserve. In the payout month the
// reserve built up so far is released (Reserve is minus the balance carried
// in) and paid together with that month's own accrual, leaving a zero
// balance; accrual restarts the month after. When terminationMonth is set
// (1..12) the reserve is settled in that month the same way. Months after
// termination are expected to carry no accrual.
//
// The ledger opens at zero. The December balance is the reserve left for the
// following year's May payout; carrying it over is up to the caller, see
// ClosingBalance.
func HolidayAllowanceSchedule(accruals map[int]decimal.Decimal, terminationMonth int) []domain.HolidayScheduleEntry {
	entries := make([]domain.HolidayScheduleEntry, 0, 12)
	balance := decimal.Zero

	for month := 1; month <= 12; month++ {
		accrual := money.Cents(accruals[month])
		entry := domain.HolidayScheduleEntry{
			Month:   month,
			Accrual: accrual,
			Payout:  decimal.Zero,
		}

		settles := month == PayoutMonth || month == terminationMonth
		if terminationMonth > 0 && month > terminationMonth {
			settles = false
		}

		if settles {
			entry.IsPayoutMonth = true
			entry.Reserve = balance.Neg()
			entry.Payout = balance.Add(accrual)
			balance = decimal.Zero
		} else {
			entry.Reserve = accrual
			balance = balance.Add(accrual)
		}
		entry.Balance = balance
		entries = append(entries, entry)
	}
	return entries
}

// AccrualsFromPeriods collects holiday accruals of one year by month. When a
// month appears more than once the last record wins, matching the
// replace-on-recompute rule of the engine.
func AccrualsFromPeriods(year int, periods []domain.PeriodResult) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(periods))
	for _, p := range periods {
		if p.Key.Year != year {
			continue
		}
		out[p.Key.Month] = p.HolidayAllowanceAccrual
	}
	return out
}

// ClosingBalance returns the reserve still owed at the end of a schedule
func ClosingBalance(entries []domain.HolidayScheduleEntry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	return entries[len(entries)-1].Balance
}

// TotalPayout sums the payouts of a schedule
func TotalPayout(entries []domain.HolidayScheduleEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Payout)
	}
	return total
}

// PayoutMonths lists the months in which a payout is made, ascending
func PayoutMonths(entries []domain.HolidayScheduleEntry) []int {
	var months []int
	for _, e := range entries {
		if e.IsPayoutMonth {
			months = append(months, e.Month)
		}
	}
	sort.Ints(months)
	return months
}
