package calculation

import (
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// BracketTaxResult is the unrounded outcome of applying a bracket schedule
type BracketTaxResult struct {
	Total     decimal.Decimal
	Breakdown []domain.BracketContribution
}

// BracketTax applies a progressive schedule to an annual income. Brackets are
// expected contiguous and ascending (see rates.Validate). Zero or negative
// income yields zero tax. Every bracket appears in the breakdown so payslips
// can show the full schedule; brackets above income contribute zero.
func BracketTax(annualIncome decimal.Decimal, brackets []domain.TaxBracket) BracketTaxResult {
	result := BracketTaxResult{
		Total:     decimal.Zero,
		Breakdown: make([]domain.BracketContribution, 0, len(brackets)),
	}

	for _, b := range brackets {
		taxable := decimal.Zero
		if annualIncome.GreaterThan(b.Low) {
			top := annualIncome
			if !b.IsUnbounded() && b.High.LessThan(top) {
				top = *b.High
			}
			taxable = top.Sub(b.Low)
		}
		tax := taxable.Mul(b.Rate)
		result.Total = result.Total.Add(tax)
		result.Breakdown = append(result.Breakdown, domain.BracketContribution{
			Low:           b.Low,
			High:          b.High,
			Rate:          b.Rate,
			TaxableAmount: taxable,
			AnnualTax:     tax,
			MonthlyTax:    tax.Div(twelve),
		})
	}

	return result
}

// MonthlyBracketTax is BracketTax on an annualized income divided back to one
// month. Nothing is rounded here.
func MonthlyBracketTax(annualIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	return BracketTax(annualIncome, brackets).Total.Div(twelve)
}

// GeneralTaxCreditAmount returns the annual credit after phase-out, never negative
func GeneralTaxCreditAmount(annualIncome decimal.Decimal, credit domain.GeneralTaxCredit) decimal.Decimal {
	amount := credit.MaxAmount
	if annualIncome.GreaterThan(credit.PhaseOutThreshold) {
		reduction := annualIncome.Sub(credit.PhaseOutThreshold).Mul(credit.PhaseOutRate)
		amount = amount.Sub(reduction)
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// ApplyTaxCredit subtracts the phased-out general tax credit from annual tax.
// It returns the tax after credit (floored at zero) and the credit actually used.
func ApplyTaxCredit(annualTax, annualIncome decimal.Decimal, credit domain.GeneralTaxCredit) (decimal.Decimal, decimal.Decimal) {
	available := GeneralTaxCreditAmount(annualIncome, credit)
	if available.GreaterThan(annualTax) {
		return decimal.Zero, annualTax
	}
	return annualTax.Sub(available), available
}
