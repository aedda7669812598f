package handler

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/leveling"
	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/payroll"
)

var testNow = time.Date(2025, time.October, 19, 12, 0, 0, 0, time.UTC)

func TestParsePeriod(t *testing.T) {
	year, month, err := parsePeriod("", testNow)
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.October, month)

	year, month, err = parsePeriod("03.2024", testNow)
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.March, month)

	_, month, err = parsePeriod("7", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.July, month)

	for _, bad := range []string{"13.2025", "1.2.3", "ab", "05.1999"} {
		_, _, err := parsePeriod(bad, testNow)
		assert.Error(t, err, bad)
	}
}

func TestParseSalaryArgs(t *testing.T) {
	req, err := parseSalaryArgs("02.2025 csi=10 FLR=2,5 marketplace=1500.50", testNow)
	require.NoError(t, err)

	assert.Equal(t, 2025, req.Year)
	assert.Equal(t, time.February, req.Month)
	assert.Equal(t, payroll.PremiumInputs{kpi.CategoryCSI: 10, kpi.CategoryFLR: 2.5}, req.Premiums)
	require.NotNil(t, req.Marketplace)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(*req.Marketplace))

	_, err = parseSalaryArgs("nps=3", testNow)
	assert.Error(t, err)
	_, err = parseSalaryArgs("01.2025 02.2025", testNow)
	assert.Error(t, err)
}

func TestParseSalaryArgs_RejectsNonFinitePercent(t *testing.T) {
	for _, args := range []string{"03.2025 csi=Inf", "03.2025 flr=NaN", "csi=-inf", "gok=+Infinity"} {
		_, err := parseSalaryArgs(args, testNow)
		assert.Error(t, err, args)
	}
}

func TestParseKPIArgs_RejectsNonFinite(t *testing.T) {
	for _, args := range []string{"csi NaN 100", "csi 90 Inf", "target -Inf 300 lower"} {
		_, err := parseKPIArgs(args)
		assert.Error(t, err, args)
	}
}

func TestParseKPIArgs(t *testing.T) {
	req, err := parseKPIArgs("target 320 300 lower")
	require.NoError(t, err)
	assert.Equal(t, kpi.CategoryTarget, req.Metric)
	assert.Equal(t, kpi.LowerIsBetter, req.Direction)
	assert.Equal(t, kpi.Known(300), req.Normative)

	req, err = parseKPIArgs("csi 4,5 -")
	require.NoError(t, err)
	assert.Equal(t, 4.5, req.Current)
	assert.False(t, req.Normative.IsKnown())

	_, err = parseKPIArgs("csi 1")
	assert.Error(t, err)
	_, err = parseKPIArgs("csi 1 2 sideways")
	assert.Error(t, err)
}

func TestFormatProgressAndEvaluation(t *testing.T) {
	text := formatProgress(1075, leveling.Default().Progress(1075))
	assert.Contains(t, text, "level: 10")
	assert.Contains(t, text, "to next level: 75")

	eval, err := kpi.DefaultTables().RequiredValueForTier(kpi.Query{
		Unit:      kpi.Unit{Division: models.DivisionNTP, Role: models.RoleSpecialist},
		Metric:    kpi.CategoryCSI,
		Current:   4,
		Normative: kpi.Unknown(),
	})
	require.NoError(t, err)

	emp := &models.Employee{Division: models.DivisionNTP, Position: models.PositionSpecialist}
	text = formatEvaluation(emp, eval)
	assert.Contains(t, text, "premium: "+kpi.NotApplicableMark+"%")
	assert.Contains(t, text, "not_applicable")
}
