package schedule_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-payroll-bot/internal/schedule"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		raw  string
		want schedule.Category
	}{
		{"", schedule.CategoryDayOff},
		{"   ", schedule.CategoryDayOff},
		{"Не указано", schedule.CategoryDayOff},
		{"not specified", schedule.CategoryDayOff},
		{"Отпуск", schedule.CategoryVacation},
		{"vacation", schedule.CategoryVacation},
		{"отпуск (б/с)", schedule.CategoryVacationExtended},
		{"vacation (no pay)", schedule.CategoryVacationExtended},
		{"военкомат", schedule.CategoryMilitary},
		{"Больничный лист", schedule.CategorySick},
		{"sick leave", schedule.CategorySick},
		{"прогул", schedule.CategoryAbsence},
		{"09:00-18:00", schedule.CategoryWork},
		{"учеба", schedule.CategoryWork},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.Categorize(tc.raw))
		})
	}
}

func TestParseRanges_Overnight(t *testing.T) {
	ranges := schedule.ParseRanges("20:00-08:00")
	require.Len(t, ranges, 1)
	assert.Equal(t, 20*60, ranges[0].StartMinute)
	assert.Equal(t, 32*60, ranges[0].EndMinute)
	assert.Equal(t, 12*60, ranges[0].Duration())
}

func TestParseRanges_MultipleAndInvalid(t *testing.T) {
	ranges := schedule.ParseRanges("08:00-12:00, 13:00 – 17:30 25:00-26:00 10:75-11:00")
	require.Len(t, ranges, 2)
	assert.Equal(t, 240, ranges[0].Duration())
	assert.Equal(t, 270, ranges[1].Duration())
}

func TestWorkHours_LunchDeduction(t *testing.T) {
	// Одна смена от 8 часов: минус час на обед
	for start := 0; start < 24; start++ {
		for length := 1; length <= 16; length++ {
			end := (start + length) % 24
			raw := fmt.Sprintf("%02d:00-%02d:00", start, end)
			want := float64(length)
			if length >= 8 {
				want--
			}
			assert.Equal(t, want, schedule.WorkHours(raw), raw)
		}
	}
}

func TestWorkHours_MultipleRangesNoLunch(t *testing.T) {
	assert.Equal(t, 9.0, schedule.WorkHours("08:00-12:00,13:00-18:00"))
}

func TestWorkHours_Rounding(t *testing.T) {
	assert.Equal(t, 0.3, schedule.WorkHours("10:00-10:20"))
	assert.Equal(t, 7.5, schedule.WorkHours("09:00-17:30"))
}

func TestWorkHours_NoRanges(t *testing.T) {
	assert.Zero(t, schedule.WorkHours("отпуск"))
	assert.Zero(t, schedule.WorkHours("9-18"))
	assert.Zero(t, schedule.WorkHours(""))
}

func TestDayOfMonth(t *testing.T) {
	day, ok := schedule.DayOfMonth("07 пн")
	assert.True(t, ok)
	assert.Equal(t, 7, day)

	_, ok = schedule.DayOfMonth("итого")
	assert.False(t, ok)

	_, ok = schedule.DayOfMonth("32")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	s := schedule.Summarize(map[string]string{
		"1": "09:00-18:00",
		"2": "09:00-18:00",
		"3": "отпуск",
		"4": "",
		"5": "больничный",
	})

	assert.Equal(t, 2, s.WorkDays)
	assert.Equal(t, 1, s.VacationDays)
	assert.Equal(t, 1, s.DaysOff)
	assert.Equal(t, 1, s.SickDays)
}
