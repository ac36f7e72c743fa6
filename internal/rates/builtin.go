package rates

import (
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// RATE TABLE ASSUMPTIONS:
//
// 1. Brackets carry the wage tax share of box 1 only. The national insurance
//    share (AOW) is modelled as a separate capped contribution, so the first
//    bracket rate is the box 1 rate minus 27.65% of premiums.
// 2. WW/WIA employee rates are the simplified withholding rates used by the
//    payslip module; employer rates follow the Belastingdienst premium tables.
// 3. Minimum wage is the January hourly rate; the July indexation is not modelled.
// 4. 2026 figures are provisional (Belastingplan 2026) and may be overridden
//    from the payroll configuration file.

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func youthBands(r15, r16, r17, r18, r19, r20, adult string) []domain.MinimumWageBand {
	return []domain.MinimumWageBand{
		{MinAge: 15, MaxAge: 15, HourlyRate: d(r15)},
		{MinAge: 16, MaxAge: 16, HourlyRate: d(r16)},
		{MinAge: 17, MaxAge: 17, HourlyRate: d(r17)},
		{MinAge: 18, MaxAge: 18, HourlyRate: d(r18)},
		{MinAge: 19, MaxAge: 19, HourlyRate: d(r19)},
		{MinAge: 20, MaxAge: 20, HourlyRate: d(r20)},
		{MinAge: 21, MaxAge: 0, HourlyRate: d(adult)},
	}
}

// statutory fields shared by every year
func withStatutoryDefaults(rt domain.RateTable) domain.RateTable {
	rt.HolidayAllowanceMinimumRate = d("0.0833")
	rt.StatutoryVacationWeeks = d("4")
	rt.StandardWeekHours = d("40")
	rt.MaxWeeklyHours = d("60")
	rt.MinimumWage.WeeksPerYear = d("52")
	return rt
}

// Table2024 returns the 2024 rate table
func Table2024() domain.RateTable {
	return withStatutoryDefaults(domain.RateTable{
		Year: 2024,
		Brackets: []domain.TaxBracket{
			{Low: decimal.Zero, High: dp("38098"), Rate: d("0.0932")},
			{Low: d("38098"), High: dp("75518"), Rate: d("0.3697")},
			{Low: d("75518"), Rate: d("0.4950")},
		},
		GeneralTaxCredit: domain.GeneralTaxCredit{
			MaxAmount:         d("3362"),
			PhaseOutThreshold: d("24812"),
			PhaseOutRate:      d("0.06630"),
		},
		EmployeeContributions: []domain.Contribution{
			{Name: "AOW", Rate: d("0.1790"), AnnualCeiling: d("38098")},
			{Name: "WW", Rate: d("0.0125"), AnnualCeiling: d("66956")},
			{Name: "WIA", Rate: d("0.0060"), AnnualCeiling: d("66956")},
			{Name: "ZVW", Rate: d("0.0532"), AnnualCeiling: d("71628")},
		},
		EmployerContributions: []domain.Contribution{
			{Name: "AWF", Rate: d("0.0264"), AnnualCeiling: d("66956")},
			{Name: "AOF", Rate: d("0.0618"), AnnualCeiling: d("66956")},
			{Name: "WHK", Rate: d("0.0152"), AnnualCeiling: d("66956")},
			{Name: "ZVW", Rate: d("0.0657"), AnnualCeiling: d("71628")},
		},
		MinimumWage: domain.MinimumWageTable{
			Bands: youthBands("3.98", "4.58", "5.24", "6.64", "7.96", "10.62", "13.27"),
		},
	})
}

// Table2025 returns the 2025 rate table
func Table2025() domain.RateTable {
	return withStatutoryDefaults(domain.RateTable{
		Year: 2025,
		Brackets: []domain.TaxBracket{
			{Low: decimal.Zero, High: dp("38441"), Rate: d("0.0817")},
			{Low: d("38441"), High: dp("76817"), Rate: d("0.3748")},
			{Low: d("76817"), Rate: d("0.4950")},
		},
		GeneralTaxCredit: domain.GeneralTaxCredit{
			MaxAmount:         d("3068"),
			PhaseOutThreshold: d("28406"),
			PhaseOutRate:      d("0.06337"),
		},
		EmployeeContributions: []domain.Contribution{
			{Name: "AOW", Rate: d("0.1790"), AnnualCeiling: d("38441")},
			{Name: "WW", Rate: d("0.0125"), AnnualCeiling: d("75864")},
			{Name: "WIA", Rate: d("0.0060"), AnnualCeiling: d("75864")},
			{Name: "ZVW", Rate: d("0.0526"), AnnualCeiling: d("75864")},
		},
		EmployerContributions: []domain.Contribution{
			{Name: "AWF", Rate: d("0.0264"), AnnualCeiling: d("75864")},
			{Name: "AOF", Rate: d("0.0628"), AnnualCeiling: d("75864")},
			{Name: "WHK", Rate: d("0.0152"), AnnualCeiling: d("75864")},
			{Name: "ZVW", Rate: d("0.0651"), AnnualCeiling: d("75864")},
		},
		MinimumWage: domain.MinimumWageTable{
			Bands: youthBands("4.22", "4.85", "5.55", "7.03", "8.44", "11.25", "14.06"),
		},
	})
}

// Table2026 returns the provisional 2026 rate table
func Table2026() domain.RateTable {
	return withStatutoryDefaults(domain.RateTable{
		Year: 2026,
		Brackets: []domain.TaxBracket{
			{Low: decimal.Zero, High: dp("38883"), Rate: d("0.0810")},
			{Low: d("38883"), High: dp("78426"), Rate: d("0.3756")},
			{Low: d("78426"), Rate: d("0.4950")},
		},
		GeneralTaxCredit: domain.GeneralTaxCredit{
			MaxAmount:         d("3115"),
			PhaseOutThreshold: d("29736"),
			PhaseOutRate:      d("0.06398"),
		},
		EmployeeContributions: []domain.Contribution{
			{Name: "AOW", Rate: d("0.1790"), AnnualCeiling: d("38883")},
			{Name: "WW", Rate: d("0.0125"), AnnualCeiling: d("79409")},
			{Name: "WIA", Rate: d("0.0060"), AnnualCeiling: d("79409")},
			{Name: "ZVW", Rate: d("0.0485"), AnnualCeiling: d("79409")},
		},
		EmployerContributions: []domain.Contribution{
			{Name: "AWF", Rate: d("0.0264"), AnnualCeiling: d("79409")},
			{Name: "AOF", Rate: d("0.0628"), AnnualCeiling: d("79409")},
			{Name: "WHK", Rate: d("0.0152"), AnnualCeiling: d("79409")},
			{Name: "ZVW", Rate: d("0.0610"), AnnualCeiling: d("79409")},
		},
		MinimumWage: domain.MinimumWageTable{
			Bands: youthBands("4.41", "5.07", "5.81", "7.36", "8.83", "11.77", "14.71"),
		},
	})
}

// Builtin returns the registry of tables shipped with the engine
func Builtin() *Registry {
	r, err := NewRegistry(Table2024(), Table2025(), Table2026())
	if err != nil {
		// built-in tables are covered by tests; a failure here is a programming error
		panic(err)
	}
	return r
}
