package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/calculation"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/config"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/domain"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/output"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/rates"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	envConfig   = "PAYROLL_CONFIG"
	envLogLevel = "PAYROLL_LOG_LEVEL"
	envRatesDir = "PAYROLL_RATES_DIR"
)

// app carries the flags and logger shared by every subcommand
type app struct {
	configPath  string
	ratesDir    string
	logLevel    string
	concurrency int
	logger      zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:          "payroll",
		Short:        "Dutch payroll calculation and compliance engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogger(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv(envConfig), "payroll YAML file (env "+envConfig+")")
	root.PersistentFlags().StringVar(&a.ratesDir, "rates-dir", os.Getenv(envRatesDir), "directory of YAML rate tables layered over the built-in years (env "+envRatesDir+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", envOr(envLogLevel, "warn"), "debug, info, warn or error (env "+envLogLevel+")")
	root.PersistentFlags().IntVar(&a.concurrency, "concurrency", calculation.DefaultConcurrency, "employees calculated in parallel")

	root.AddCommand(
		a.newCalculateCmd(),
		a.newScheduleCmd(),
		a.newExampleCmd(),
		a.newRatesCmd(),
		a.newFormatsCmd(),
	)
	return root
}

func (a *app) setupLogger(w io.Writer) error {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(a.logLevel)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.logLevel, err)
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}

func (a *app) newCalculateCmd() *cobra.Command {
	var format, outDir string
	var failOnError bool

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the configured period for every employee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, engine, err := a.load()
			if err != nil {
				return err
			}
			requests, err := a.requests(cfg, engine, nil)
			if err != nil {
				return err
			}
			run, err := engine.RunBatch(cmd.Context(), requests)
			if err != nil {
				return err
			}
			if err := a.emit(cmd.OutOrStdout(), run, format, outDir); err != nil {
				return err
			}
			if failOnError && len(run.Failures) > 0 {
				return fmt.Errorf("%d employee(s) could not be calculated", len(run.Failures))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write the report to this directory instead of stdout")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when any employee fails")
	return cmd
}

func (a *app) newScheduleCmd() *cobra.Command {
	var employeeID, format string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the holiday allowance ledger for one employee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, engine, err := a.load()
			if err != nil {
				return err
			}
			if _, ok := cfg.FindEmployee(employeeID); !ok {
				return fmt.Errorf("employee %q not found in %s", employeeID, a.configPath)
			}
			requests, err := a.requests(cfg, engine, func(e config.EmployeeInput) bool { return e.ID == employeeID })
			if err != nil {
				return err
			}
			run, err := engine.RunBatch(cmd.Context(), requests)
			if err != nil {
				return err
			}
			if len(run.Failures) > 0 {
				return fmt.Errorf("employee %s: %s", employeeID, run.Failures[0].Error)
			}
			return output.GenerateReport(cmd.OutOrStdout(), run, format)
		},
	}
	cmd.Flags().StringVarP(&employeeID, "employee", "e", "", "employee ID")
	cmd.Flags().StringVarP(&format, "format", "f", "schedule-csv", "output format")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func (a *app) newExampleCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example payroll file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if out == "" {
				return writeYAML(cmd.OutOrStdout(), cfg)
			}
			if err := output.SaveConfiguration(cfg, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write (stdout when empty)")
	return cmd
}

func (a *app) newRatesCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Print the rate table for a year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.baseRegistry()
			if err != nil {
				return err
			}
			if a.configPath != "" {
				cfg, err := config.NewInputParser().LoadFromFile(a.configPath)
				if err != nil {
					return err
				}
				if reg, err = cfg.Registry(reg); err != nil {
					return err
				}
			}
			if year == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Available years: %v\n", reg.Years())
				return nil
			}
			rt, err := reg.Lookup(year)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), rt)
		},
	}
	cmd.Flags().IntVarP(&year, "year", "y", 0, "tax year (lists available years when omitted)")
	return cmd
}

func (a *app) newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and aliases",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "Aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
		},
	}
}

// load reads the payroll file and builds an engine over its rate tables
func (a *app) load() (*config.PayrollConfiguration, *calculation.CalculationEngine, error) {
	if a.configPath == "" {
		return nil, nil, fmt.Errorf("no payroll file: pass --config or set %s", envConfig)
	}
	cfg, err := config.NewInputParser().LoadFromFile(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	base, err := a.baseRegistry()
	if err != nil {
		return nil, nil, err
	}
	reg, err := cfg.Registry(base)
	if err != nil {
		return nil, nil, err
	}

	engine := calculation.NewCalculationEngineWithRates(reg)
	engine.SetLogger(calculation.NewZerologLogger(a.logger))
	engine.Concurrency = a.concurrency
	a.logger.Info().Str("file", a.configPath).Int("employees", len(cfg.Employees)).
		Msgf("loaded payroll for %s", output.FormatPeriod(cfg.Period.Year, cfg.Period.Month))
	return cfg, engine, nil
}

// baseRegistry is the built-in tables plus any from --rates-dir. Tables in
// the payroll file itself are layered on top by the caller.
func (a *app) baseRegistry() (*rates.Registry, error) {
	reg := rates.Builtin()
	if a.ratesDir == "" {
		return reg, nil
	}
	tables, err := rates.LoadDir(a.ratesDir)
	if err != nil {
		return nil, err
	}
	a.logger.Info().Str("dir", a.ratesDir).Int("tables", len(tables)).Msg("loaded rate tables")
	return reg.With(tables...)
}

// requests recomputes each employee's earlier months from the file and
// returns one batch request per selected employee.
func (a *app) requests(cfg *config.PayrollConfiguration, engine *calculation.CalculationEngine, keep func(config.EmployeeInput) bool) ([]domain.PayrollRequest, error) {
	ref, err := cfg.Period.ParsedReferenceDate()
	if err != nil {
		return nil, err
	}

	snaps, err := cfg.Snapshots()
	if err != nil {
		return nil, err
	}

	var requests []domain.PayrollRequest
	for i, e := range cfg.Employees {
		if keep != nil && !keep(e) {
			continue
		}
		snap := snaps[i]
		prior, err := engine.PriorPeriods(snap, cfg.Period.Year, cfg.Period.Month, e.HoursWorked)
		if err != nil {
			// the target month fails the same way and lands in the run's failures
			a.logger.Debug().Str("employee", e.ID).Err(err).Msg("history not recomputed")
			prior = nil
		}
		requests = append(requests, domain.PayrollRequest{
			Employee:     snap,
			PriorPeriods: prior,
			Input:        cfg.Period.Input(e, ref),
		})
	}
	return requests, nil
}

func (a *app) emit(w io.Writer, run *domain.PayrollRun, format, outDir string) error {
	if outDir == "" {
		return output.GenerateReport(w, run, format)
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		return output.GenerateReport(w, run, format)
	}
	path, err := output.WriteFormatted(f, run, outDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Report written to %s\n", path)
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
