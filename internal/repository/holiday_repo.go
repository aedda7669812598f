package repository

import (
	"context"
	"errors"
	"time"

	"shift-payroll-bot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HolidayRepository interface {
	// ReplaceYear заменяет праздники за год и отмечает год загруженным
	ReplaceYear(ctx context.Context, year int, source string, days []models.Holiday) error
	// GetYear возвращает праздники за год; loaded=false, если год еще не загружался
	GetYear(ctx context.Context, year int) (days []models.Holiday, loaded bool, err error)
	GetByYearMonth(ctx context.Context, year, month int) ([]models.Holiday, error)
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

type GormHolidayRepository struct {
	db *gorm.DB
}

func NewGormHolidayRepository(db *gorm.DB) (*GormHolidayRepository, error) {
	// Автомиграция для таблиц holidays и holiday_years
	if err := db.AutoMigrate(&models.Holiday{}, &models.HolidayYear{}); err != nil {
		return nil, err
	}

	return &GormHolidayRepository{db: db}, nil
}

func (r *GormHolidayRepository) ReplaceYear(ctx context.Context, year int, source string, days []models.Holiday) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("year = ?", year).Delete(&models.Holiday{}).Error; err != nil {
			return err
		}

		if len(days) > 0 {
			if err := tx.Create(&days).Error; err != nil {
				return err
			}
		}

		marker := models.HolidayYear{
			Year:      year,
			Count:     len(days),
			Source:    source,
			FetchedAt: time.Now(),
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&marker).Error
	})
}

func (r *GormHolidayRepository) GetYear(ctx context.Context, year int) ([]models.Holiday, bool, error) {
	var marker models.HolidayYear
	err := r.db.WithContext(ctx).First(&marker, "year = ?", year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var days []models.Holiday
	err = r.db.WithContext(ctx).Where("year = ?", year).Order("date ASC").Find(&days).Error
	return days, true, err
}

func (r *GormHolidayRepository) GetByYearMonth(ctx context.Context, year, month int) ([]models.Holiday, error) {
	var days []models.Holiday
	err := r.db.WithContext(ctx).Where("year = ? AND month = ?", year, month).Order("date ASC").Find(&days).Error
	return days, err
}

func (r *GormHolidayRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Holiday{}).
		Where("date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}
