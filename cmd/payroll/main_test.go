package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/config"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/output"
	"github.com/glodinasflexwork/dutch-payroll-system-sub000/internal/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeExample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payroll.yaml")
	require.NoError(t, output.SaveConfiguration(config.NewInputParser().CreateExampleConfiguration(), path))
	return path
}

func TestExampleCommandWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	out, _, err := execute(t, "example", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Example configuration written to")

	cfg, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Employees, 3)
}

func TestExampleCommandToStdout(t *testing.T) {
	out, _, err := execute(t, "example")
	require.NoError(t, err)

	cfg, err := config.NewInputParser().Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 2025, cfg.Period.Year)
}

func TestCalculateCommandRegister(t *testing.T) {
	out, _, err := execute(t, "calculate", "--config", writeExample(t), "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, "header + three employees")
	assert.True(t, strings.HasPrefix(lines[1], "EMP-001,2025-10,monthly,with_credit,1,"))
	assert.True(t, strings.HasPrefix(lines[2], "EMP-002,2025-10,hourly,without_credit,"))
	// EMP-003 leaves on 15 October and is pro-rated
	assert.True(t, strings.HasPrefix(lines[3], "EMP-003,2025-10,monthly,with_credit,0.47826"))
}

func TestCalculateCommandPayslip(t *testing.T) {
	out, _, err := execute(t, "calculate", "-c", writeExample(t))
	require.NoError(t, err)
	assert.Contains(t, out, "PAYROLL OCTOBER 2025")
	assert.Contains(t, out, "EMPLOYEE EMP-002 (hourly, without_credit)")
}

func TestCalculateCommandWritesToDirectory(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, "calculate", "-c", writeExample(t), "-f", "json", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}

func TestCalculateCommandFailOnError(t *testing.T) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	cfg.Period.Year = 2019 // no rate table
	path := filepath.Join(t.TempDir(), "payroll.yaml")
	require.NoError(t, output.SaveConfiguration(cfg, path))

	out, _, err := execute(t, "calculate", "-c", path, "-f", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Failed: 3")

	_, _, err = execute(t, "calculate", "-c", path, "--fail-on-error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 employee(s)")
}

func TestCalculateCommandRequiresConfig(t *testing.T) {
	t.Setenv(envConfig, "")
	_, _, err := execute(t, "calculate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config")
}

func TestCalculateCommandLogsDefaults(t *testing.T) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	cfg.Employees[0].BirthDate = ""
	path := filepath.Join(t.TempDir(), "payroll.yaml")
	require.NoError(t, output.SaveConfiguration(cfg, path))

	_, stderr, err := execute(t, "calculate", "-c", path, "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, stderr, "birth_date defaulted")
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "formats", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestScheduleCommand(t *testing.T) {
	out, _, err := execute(t, "schedule", "-c", writeExample(t), "--employee", "EMP-001")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	// 54000 / 12 x 8% = 360 a month, four months reserved before May
	assert.Equal(t, "EMP-001,2025,5,360.00,-1440.00,1800.00,0.00,true", lines[5])

	_, _, err = execute(t, "schedule", "-c", writeExample(t), "--employee", "EMP-404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRatesCommand(t *testing.T) {
	out, _, err := execute(t, "rates")
	require.NoError(t, err)
	assert.Contains(t, out, "[2024 2025 2026]")

	out, _, err = execute(t, "rates", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "0.0817")
	assert.Contains(t, out, "employee_contributions")

	_, _, err = execute(t, "rates", "--year", "2019")
	require.Error(t, err)
}

func TestRatesDirAddsYears(t *testing.T) {
	dir := t.TempDir()
	next := rates.Table2026()
	next.Year = 2027
	data, err := yaml.Marshal(next)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2027.yaml"), data, 0o600))

	out, _, err := execute(t, "rates", "--rates-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "[2024 2025 2026 2027]")

	_, _, err = execute(t, "rates", "--rates-dir", filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestFormatsCommand(t *testing.T) {
	out, _, err := execute(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "schedule-csv")
	assert.Contains(t, out, "payslip")
}
