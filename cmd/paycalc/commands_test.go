package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/payroll"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestLevelCommand(t *testing.T) {
	t.Setenv("TABLES_PATH", "")

	out, err := run(t, "level", "1075")
	require.NoError(t, err)

	var progress map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &progress))
	assert.Equal(t, 10, progress["level"])
	assert.Equal(t, 75, progress["points_to_next"])

	_, err = run(t, "level", "-5")
	assert.Error(t, err)
}

func TestHoursCommand(t *testing.T) {
	out, err := run(t, "hours", "20:00-08:00", "--date", "2025-03-08", "--holiday")
	require.NoError(t, err)

	var result struct {
		Category  string  `json:"category"`
		WorkHours float64 `json:"work_hours"`
		Breakdown struct {
			Total        float64 `json:"total"`
			Night        float64 `json:"night"`
			NightHoliday float64 `json:"night_holiday"`
		} `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, "work", result.Category)
	assert.Equal(t, 11.0, result.WorkHours)
	assert.Equal(t, 11.0, result.Breakdown.Total)
	assert.Zero(t, result.Breakdown.Night)
	assert.InDelta(t, 8.0*11/12, result.Breakdown.NightHoliday, 1e-9)
}

func TestKPICommand(t *testing.T) {
	out, err := run(t, "kpi", "--tables", "", "--metric", "target", "--current", "320", "--normative", "300", "--lower")
	require.NoError(t, err)
	assert.Contains(t, out, "achieved: 93.75%")

	out, err = run(t, "kpi", "--tables", "", "--metric", "csi", "--current", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "premium: —%")
}

func TestParsePremiums(t *testing.T) {
	inputs, err := parsePremiums(map[string]string{"CSI": "10", "flr": " 2.5"})
	require.NoError(t, err)
	assert.Equal(t, payroll.PremiumInputs{kpi.CategoryCSI: 10, kpi.CategoryFLR: 2.5}, inputs)

	for _, bad := range []string{"Inf", "-Inf", "NaN", "abc"} {
		_, err := parsePremiums(map[string]string{"csi": bad})
		assert.Error(t, err, bad)
	}

	_, err = parsePremiums(map[string]string{"nps": "1"})
	assert.Error(t, err)
}

func TestParsePeriod(t *testing.T) {
	year, month, err := parsePeriod("03.2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.March, month)

	_, _, err = parsePeriod("2025-03")
	assert.Error(t, err)
}
