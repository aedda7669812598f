package worktime_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-payroll-bot/internal/schedule"
	"shift-payroll-bot/internal/worktime"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func staticProvider(calls *int32, days map[string]string) worktime.HolidayProvider {
	return worktime.HolidayProviderFunc(func(ctx context.Context, year int) (map[string]string, error) {
		atomic.AddInt32(calls, 1)
		return days, nil
	})
}

func TestCalendar_HolidayLookupIsCachedPerYear(t *testing.T) {
	var calls int32
	cal := worktime.NewCalendar(staticProvider(&calls, map[string]string{
		"2025-01-01": "Новый год",
	}), quietLogger())
	ctx := context.Background()

	name, ok := cal.HolidayName(ctx, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "Новый год", name)

	assert.False(t, cal.IsHoliday(ctx, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, cal.Cached(2025))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCalendar_ConcurrentFirstQueries(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	provider := worktime.HolidayProviderFunc(func(ctx context.Context, year int) (map[string]string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return map[string]string{"2025-05-09": "День Победы"}, nil
	})
	cal := worktime.NewCalendar(provider, quietLogger())

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cal.IsHoliday(context.Background(), time.Date(2025, time.May, 9, 0, 0, 0, 0, time.UTC))
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.True(t, r)
	}
	// Допускаются повторные загрузки, но кэш должен стать согласованным
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
	assert.True(t, cal.Cached(2025))
}

func TestCalendar_FailOpen(t *testing.T) {
	var calls int32
	provider := worktime.HolidayProviderFunc(func(ctx context.Context, year int) (map[string]string, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("connection refused")
	})
	cal := worktime.NewCalendar(provider, quietLogger())
	date := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, cal.IsHoliday(context.Background(), date))
	assert.False(t, cal.Cached(2025))

	// Ошибка не кэшируется: следующий запрос снова идет к провайдеру
	cal.IsHoliday(context.Background(), date)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCalendar_NilProviderResultIsFailure(t *testing.T) {
	var calls int32
	cal := worktime.NewCalendar(staticProvider(&calls, nil), quietLogger())

	assert.False(t, cal.IsHoliday(context.Background(), time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cal.Cached(2025))
}

func TestClassifyDayHours_RegularDay(t *testing.T) {
	cal := worktime.NewCalendar(nil, quietLogger())
	ranges := schedule.ParseRanges("09:00-18:00")

	got := worktime.ClassifyDayHours(context.Background(), cal, ranges, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, worktime.HourBreakdown{Total: 8, Regular: 8}, got)
}

func TestClassifyDayHours_NightScaledByLunch(t *testing.T) {
	// 12 часов смены, 11 после обеда, 8 сырых ночных -> 8 * 11/12
	cal := worktime.NewCalendar(nil, quietLogger())
	ranges := schedule.ParseRanges("20:00-08:00")

	got := worktime.ClassifyDayHours(context.Background(), cal, ranges, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 11.0, got.Total)
	assert.InDelta(t, 8.0*11/12, got.Night, 1e-9)
	assert.InDelta(t, 11-8.0*11/12, got.Regular, 1e-9)
	assert.Zero(t, got.Holiday)
	assert.True(t, got.Valid())
}

func TestClassifyDayHours_MultiRangeNoScaling(t *testing.T) {
	cal := worktime.NewCalendar(nil, quietLogger())
	ranges := schedule.ParseRanges("18:00-23:00, 23:30-02:30")

	got := worktime.ClassifyDayHours(context.Background(), cal, ranges, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 8.0, got.Total)
	assert.InDelta(t, 4.0, got.Night, 1e-9)
	assert.InDelta(t, 4.0, got.Regular, 1e-9)
}

func TestClassifyDayHours_Holiday(t *testing.T) {
	var calls int32
	cal := worktime.NewCalendar(staticProvider(&calls, map[string]string{
		"2025-01-01": "Новый год",
	}), quietLogger())
	ranges := schedule.ParseRanges("20:00-08:00")

	got := worktime.ClassifyDayHours(context.Background(), cal, ranges, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	assert.Zero(t, got.Regular)
	assert.Zero(t, got.Night)
	assert.InDelta(t, 8.0*11/12, got.NightHoliday, 1e-9)
	assert.InDelta(t, 11-8.0*11/12, got.Holiday, 1e-9)
	assert.True(t, got.Valid())
}

func TestClassifyDay_NonWorkCategory(t *testing.T) {
	got := worktime.ClassifyDay(context.Background(), nil, "отпуск", time.Now())
	assert.True(t, got.IsZero())
}
