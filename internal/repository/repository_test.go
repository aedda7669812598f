package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "shift-payroll-bot/internal/logger"
	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/repository"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// in-memory база живет в одном соединении
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestEmployeeRepository_UpsertAndBind(t *testing.T) {
	db := openDB(t)
	repo, err := repository.NewGormEmployeeRepository(db, applog.Discard())
	require.NoError(t, err)

	emp := &models.Employee{FullName: "  Иванов   Иван ", Division: models.DivisionNTP, Position: models.PositionSpecialist}
	require.NoError(t, repo.Upsert(emp))
	assert.Equal(t, "Иванов Иван", emp.FullName)

	promoted := &models.Employee{FullName: "Иванов Иван", Division: models.DivisionNTP, Position: models.PositionExpert}
	require.NoError(t, repo.Upsert(promoted))
	assert.Equal(t, emp.ID, promoted.ID)

	bound, err := repo.BindChat("Иванов Иван", 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), bound.ChatID)

	byChat, err := repo.GetByChatID(42)
	require.NoError(t, err)
	require.NotNil(t, byChat)
	assert.Equal(t, models.PositionExpert, byChat.Position)

	missing, err := repo.GetByChatID(7)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.BindChat("Никто", 1)
	assert.ErrorIs(t, err, repository.ErrEmployeeNotFound)

	assert.ErrorIs(t, repo.Create(&models.Employee{FullName: "Иванов Иван", Division: models.DivisionNTP, Position: models.PositionSpecialist}), repository.ErrEmployeeExists)
	assert.ErrorIs(t, repo.Create(&models.Employee{FullName: "Без подразделения", Position: models.PositionSpecialist}), repository.ErrInvalidEmployee)
}

func TestScheduleRepository_ProvidesRawDays(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	employees, err := repository.NewGormEmployeeRepository(db, applog.Discard())
	require.NoError(t, err)
	schedules, err := repository.NewGormScheduleRepository(db, applog.Discard())
	require.NoError(t, err)

	emp := &models.Employee{FullName: "Петрова Анна", Division: models.DivisionNCK, Position: models.PositionSpecialist}
	require.NoError(t, employees.Create(emp))

	days := map[string]string{
		"1":     "09:00-18:00",
		"2":     "20:00 - 08:00",
		"3":     "отпуск",
		"4 сб":  "",
		"итого": "20",
	}
	require.NoError(t, schedules.ReplaceMonth(ctx, emp.ID, 2025, time.March, false, days))
	require.NoError(t, schedules.ReplaceMonth(ctx, emp.ID, 2025, time.March, true, map[string]string{"9": "10:00-14:00"}))

	got, err := schedules.MonthSchedule(ctx, "Петрова  Анна", time.March, models.DivisionNCK, 2025)
	require.NoError(t, err)
	assert.Equal(t, days, got)

	extra, err := schedules.AdditionalShifts(ctx, "Петрова Анна", time.March, models.DivisionNCK, 2025)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"9": "10:00-14:00"}, extra)

	// повторная загрузка заменяет месяц целиком
	require.NoError(t, schedules.ReplaceMonth(ctx, emp.ID, 2025, time.March, false, map[string]string{"5": "08:00-20:00"}))
	got, err = schedules.MonthSchedule(ctx, "Петрова Анна", time.March, models.DivisionNCK, 2025)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"5": "08:00-20:00"}, got)

	empty, err := schedules.MonthSchedule(ctx, "Петрова Анна", time.April, models.DivisionNCK, 2025)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = schedules.MonthSchedule(ctx, "Петрова Анна", time.March, models.DivisionNTP, 2025)
	assert.ErrorIs(t, err, repository.ErrEmployeeNotFound)
}

func TestHolidayRepository_ReplaceYear(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo, err := repository.NewGormHolidayRepository(db)
	require.NoError(t, err)

	_, loaded, err := repo.GetYear(ctx, 2025)
	require.NoError(t, err)
	assert.False(t, loaded)

	require.NoError(t, repo.ReplaceYear(ctx, 2025, "file", []models.Holiday{
		{Date: "2025-01-01", Year: 2025, Month: 1, Day: 1, Name: "Новый год"},
		{Date: "2025-03-08", Year: 2025, Month: 3, Day: 8, Name: "Международный женский день"},
	}))
	require.NoError(t, repo.ReplaceYear(ctx, 2025, "api", []models.Holiday{
		{Date: "2025-03-08", Year: 2025, Month: 3, Day: 8, Name: "Международный женский день"},
	}))

	days, loaded, err := repo.GetYear(ctx, 2025)
	require.NoError(t, err)
	assert.True(t, loaded)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-03-08", days[0].Date)

	isHoliday, err := repo.IsHoliday(ctx, time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, isHoliday)

	require.NoError(t, repo.ReplaceYear(ctx, 2030, "api", nil))
	none, loaded, err := repo.GetYear(ctx, 2030)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Empty(t, none)
}
