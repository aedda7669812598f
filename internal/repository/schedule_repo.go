package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"shift-payroll-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	ReplaceMonth(ctx context.Context, employeeID uint, year int, month time.Month, additional bool, days map[string]string) error
	GetMonth(ctx context.Context, employeeID uint, year int, month time.Month, additional bool) (map[string]string, error)
	DeleteMonth(ctx context.Context, employeeID uint, year int, month time.Month) error
	MonthSchedule(ctx context.Context, fullName string, month time.Month, division models.Division, year int) (map[string]string, error)
	AdditionalShifts(ctx context.Context, fullName string, month time.Month, division models.Division, year int) (map[string]string, error)
}

// GormScheduleRepository хранит сырые ячейки графика и отдает их калькулятору зарплаты
type GormScheduleRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormScheduleRepository(db *gorm.DB, logger *logrus.Logger) (*GormScheduleRepository, error) {
	// Автомиграция
	if err := db.AutoMigrate(&models.ScheduleDay{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate schedule_days table")
		return nil, err
	}

	logger.Info("Schedule repository initialized")

	return &GormScheduleRepository{
		db:     db,
		logger: logger,
	}, nil
}

// ReplaceMonth заменяет график сотрудника за месяц целиком
func (r *GormScheduleRepository) ReplaceMonth(ctx context.Context, employeeID uint, year int, month time.Month, additional bool, days map[string]string) error {
	fields := logrus.Fields{
		"employee_id": employeeID,
		"year":        year,
		"month":       int(month),
		"additional":  additional,
		"days":        len(days),
	}
	r.logger.WithFields(fields).Info("Replacing schedule month")

	labels := make([]string, 0, len(days))
	for label := range days {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rows := make([]models.ScheduleDay, 0, len(labels))
	for _, label := range labels {
		row := models.ScheduleDay{
			EmployeeID: employeeID,
			Year:       year,
			Month:      int(month),
			DayLabel:   label,
			Additional: additional,
			RawValue:   days[label],
		}
		if !row.IsValid() {
			r.logger.WithFields(fields).WithField("day_label", label).Warn("Invalid schedule cell")
			return ErrInvalidSchedule
		}
		rows = append(rows, row)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ? AND year = ? AND month = ? AND additional = ?", employeeID, year, int(month), additional).
			Delete(&models.ScheduleDay{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		r.logger.WithError(err).WithFields(fields).Error("Failed to replace schedule month")
		return err
	}

	return nil
}

// GetMonth возвращает ячейки графика: подпись дня -> сырое значение
func (r *GormScheduleRepository) GetMonth(ctx context.Context, employeeID uint, year int, month time.Month, additional bool) (map[string]string, error) {
	var rows []models.ScheduleDay
	result := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ? AND month = ? AND additional = ?", employeeID, year, int(month), additional).
		Order("day_label ASC").
		Find(&rows)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get schedule month")
		return nil, result.Error
	}

	days := make(map[string]string, len(rows))
	for _, row := range rows {
		days[row.DayLabel] = row.RawValue
	}

	r.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"year":        year,
		"month":       int(month),
		"additional":  additional,
		"count":       len(rows),
	}).Debug("Retrieved schedule month")

	return days, nil
}

func (r *GormScheduleRepository) DeleteMonth(ctx context.Context, employeeID uint, year int, month time.Month) error {
	result := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, int(month)).
		Delete(&models.ScheduleDay{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete schedule month")
		return result.Error
	}
	return nil
}

// MonthSchedule - основной график сотрудника за месяц
func (r *GormScheduleRepository) MonthSchedule(ctx context.Context, fullName string, month time.Month, division models.Division, year int) (map[string]string, error) {
	return r.lookup(ctx, fullName, month, division, year, false)
}

// AdditionalShifts - дополнительные смены сотрудника за месяц
func (r *GormScheduleRepository) AdditionalShifts(ctx context.Context, fullName string, month time.Month, division models.Division, year int) (map[string]string, error) {
	return r.lookup(ctx, fullName, month, division, year, true)
}

func (r *GormScheduleRepository) lookup(ctx context.Context, fullName string, month time.Month, division models.Division, year int, additional bool) (map[string]string, error) {
	var employee models.Employee
	result := r.db.WithContext(ctx).
		Where("full_name = ? AND division = ?", normalizeName(fullName), division).
		First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithFields(logrus.Fields{
			"full_name": fullName,
			"division":  division,
		}).Warn("Employee not found for schedule lookup")
		return nil, fmt.Errorf("%w: %s (%s)", ErrEmployeeNotFound, fullName, division)
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return r.GetMonth(ctx, employee.ID, year, month, additional)
}
