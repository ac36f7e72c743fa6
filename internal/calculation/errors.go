package calculation

import (
	"errors"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/rates"
)

// Hard failures. These abort a calculation; everything else degrades to a
// default or an advisory verdict.
var (
	ErrInvalidContractHours = errors.New("contract hours per week must be positive")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrInvalidSalary        = errors.New("invalid salary input")
	ErrInvalidContract      = errors.New("invalid contract configuration")
	ErrInvalidDateRange     = errors.New("end date before start date")
	ErrPeriodMismatch       = errors.New("period does not belong to this employee and year")

	// ErrRateTableMissing is re-exported so callers of the engine need not import rates
	ErrRateTableMissing = rates.ErrRateTableMissing
)
