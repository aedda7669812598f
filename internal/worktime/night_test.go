package worktime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shift-payroll-bot/internal/worktime"
)

func TestNightOverlapHours(t *testing.T) {
	cases := []struct {
		name                       string
		startH, startM, endH, endM int
		want                       float64
	}{
		{"overnight 20-08", 20, 0, 8, 0, 8},
		{"daytime", 10, 0, 18, 0, 0},
		{"crosses midnight", 23, 0, 2, 0, 3},
		{"early morning", 3, 0, 9, 0, 3},
		{"evening tail", 18, 0, 23, 30, 1.5},
		{"ends at midnight", 16, 0, 0, 0, 2},
		{"whole night", 0, 0, 6, 0, 6},
		{"half hour steps", 21, 30, 6, 30, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := worktime.NightOverlapHours(tc.startH, tc.startM, tc.endH, tc.endM)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestHourBreakdown_AddAndValid(t *testing.T) {
	a := worktime.HourBreakdown{Total: 8, Regular: 6, Night: 2}
	b := worktime.HourBreakdown{Total: 4, Holiday: 3, NightHoliday: 1}

	sum := a.Add(b)
	assert.Equal(t, 12.0, sum.Total)
	assert.True(t, sum.Valid())

	broken := worktime.HourBreakdown{Total: 5, Regular: 1}
	assert.False(t, broken.Valid())
}
