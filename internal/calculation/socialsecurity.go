package calculation

import (
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	money "github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/decimal"
	"github.com/shopspring/decimal"
)

// SOCIAL SECURITY ASSUMPTIONS:
//
// 1. Every function works per period (one month). Ceilings in the rate table
//    are annual and are divided by 12 here; callers holding an annual income
//    must divide it themselves.
// 2. Employee and employer premiums are computed against the same capped
//    income but from separate contribution lists, so the two never share state.
// 3. isFullTime does not change any rate today. It is threaded through so a
//    part-time franchise can be added without changing call sites.

// EmployeeContributions computes the premiums withheld from the employee for one period
func EmployeeContributions(periodIncome decimal.Decimal, isFullTime bool, contribs []domain.Contribution) domain.ContributionBreakdown {
	return contributions(periodIncome, isFullTime, contribs)
}

// EmployerContributions computes the premiums the employer pays on top of gross for one period
func EmployerContributions(periodIncome decimal.Decimal, isFullTime bool, contribs []domain.Contribution) domain.ContributionBreakdown {
	return contributions(periodIncome, isFullTime, contribs)
}

func contributions(periodIncome decimal.Decimal, _ bool, contribs []domain.Contribution) domain.ContributionBreakdown {
	out := domain.ContributionBreakdown{
		Lines: make([]domain.ContributionLine, 0, len(contribs)),
		Total: decimal.Zero,
	}
	income := periodIncome
	if income.IsNegative() {
		income = decimal.Zero
	}

	for _, c := range contribs {
		capped := decimal.Min(income, c.MonthlyCeiling())
		amount := capped.Mul(c.Rate)
		out.Lines = append(out.Lines, domain.ContributionLine{
			Name:         c.Name,
			Rate:         c.Rate,
			CappedIncome: capped,
			Amount:       amount,
		})
		out.Total = out.Total.Add(amount)
	}
	return out
}

// roundBreakdown rounds each line to cents and rebuilds the total from the
// rounded lines so a payslip always adds up.
func roundBreakdown(b domain.ContributionBreakdown) domain.ContributionBreakdown {
	out := domain.ContributionBreakdown{
		Lines: make([]domain.ContributionLine, len(b.Lines)),
		Total: decimal.Zero,
	}
	for i, l := range b.Lines {
		l.CappedIncome = money.Cents(l.CappedIncome)
		l.Amount = money.Cents(l.Amount)
		out.Lines[i] = l
		out.Total = out.Total.Add(l.Amount)
	}
	return out
}
