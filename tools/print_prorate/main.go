// print_prorate prints the employed working days and pro-rata factor of each
// month of a year for one employment window.
//
//	go run ./tools/print_prorate 2025 2025-08-11 [2025-12-15]
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/calculation"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/pkg/dateutil"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: print_prorate YEAR START_DATE [END_DATE]")
		os.Exit(2)
	}
	year, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid year %q\n", os.Args[1])
		os.Exit(2)
	}
	start, err := dateutil.ParseDate(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	var end *time.Time
	if len(os.Args) > 3 {
		if end, err = dateutil.ParseOptionalDate(os.Args[3]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	cal := calculation.WeekdayCalendar{}
	fmt.Printf("%-10s %6s %6s %10s\n", "month", "worked", "total", "factor")
	for m := 1; m <= 12; m++ {
		worked, total := calculation.EmployedWorkingDays(start, end, year, m, cal)
		factor := calculation.ProRataFactor(start, end, year, m, cal)
		fmt.Printf("%04d-%02d    %6d %6d %10s\n", year, m, worked, total, factor.StringFixed(6))
	}
}
