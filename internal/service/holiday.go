package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/repository"
	"shift-payroll-bot/internal/worktime"
	"shift-payroll-bot/pkg/holidays"

	"github.com/sirupsen/logrus"
)

var ErrHolidaysUnavailable = errors.New("holiday calendar unavailable")

// HolidaySource - именованный источник праздников (api, file)
type HolidaySource struct {
	Name     string
	Provider worktime.HolidayProvider
}

// HolidayService хранит праздники в БД и дозагружает отсутствующие годы из источников.
// Источники опрашиваются по порядку до первого успешного.
type HolidayService struct {
	repo    repository.HolidayRepository
	sources []HolidaySource
	logger  *logrus.Logger
}

func NewHolidayService(repo repository.HolidayRepository, logger *logrus.Logger, sources ...HolidaySource) *HolidayService {
	return &HolidayService{
		repo:    repo,
		sources: sources,
		logger:  logger,
	}
}

// Holidays реализует worktime.HolidayProvider
func (s *HolidayService) Holidays(ctx context.Context, year int) (map[string]string, error) {
	days, loaded, err := s.repo.GetYear(ctx, year)
	if err != nil {
		s.logger.WithError(err).WithField("year", year).Warn("Failed to read stored holidays")
	} else if loaded {
		return toDateMap(days), nil
	}

	fetched, _, err := s.Refresh(ctx, year)
	return fetched, err
}

// Refresh загружает год из источников и перезаписывает его в БД
func (s *HolidayService) Refresh(ctx context.Context, year int) (map[string]string, string, error) {
	var errs []error

	for _, source := range s.sources {
		if source.Provider == nil {
			continue
		}

		fetched, err := source.Provider.Holidays(ctx, year)
		if err == nil && fetched == nil {
			err = errors.New("empty response")
		}
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"year":   year,
				"source": source.Name,
			}).Warn("Holiday source failed")
			errs = append(errs, fmt.Errorf("%s: %w", source.Name, err))
			continue
		}

		if err := s.store(ctx, year, source.Name, fetched); err != nil {
			s.logger.WithError(err).WithField("year", year).Error("Failed to store holidays")
		}

		s.logger.WithFields(logrus.Fields{
			"year":     year,
			"source":   source.Name,
			"holidays": len(fetched),
		}).Info("Holidays fetched")

		return fetched, source.Name, nil
	}

	return nil, "", fmt.Errorf("%w for %d: %w", ErrHolidaysUnavailable, year, errors.Join(errs...))
}

// LoadFromJSON загружает производственный календарь из файла в базу данных
func (s *HolidayService) LoadFromJSON(ctx context.Context, filePath string) (int, error) {
	cal, err := holidays.LoadCalendarFile(filePath)
	if err != nil {
		return 0, err
	}

	days, err := cal.Holidays()
	if err != nil {
		return 0, err
	}

	if err := s.store(ctx, cal.Year, "file", days); err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"year":     cal.Year,
		"path":     filePath,
		"holidays": len(days),
	}).Info("Production calendar loaded")

	return len(days), nil
}

// ForMonth возвращает сохраненные праздники месяца
func (s *HolidayService) ForMonth(ctx context.Context, year int, month time.Month) ([]models.Holiday, error) {
	return s.repo.GetByYearMonth(ctx, year, int(month))
}

func (s *HolidayService) store(ctx context.Context, year int, source string, days map[string]string) error {
	rows := make([]models.Holiday, 0, len(days))
	for key, name := range days {
		date, err := time.Parse(worktime.DateLayout, key)
		if err != nil || date.Year() != year {
			continue
		}
		rows = append(rows, models.Holiday{
			Date:   key,
			Year:   year,
			Month:  int(date.Month()),
			Day:    date.Day(),
			Name:   strings.TrimSpace(name),
			Source: source,
		})
	}

	return s.repo.ReplaceYear(ctx, year, source, rows)
}

func toDateMap(days []models.Holiday) map[string]string {
	result := make(map[string]string, len(days))
	for _, d := range days {
		result[d.Date] = d.Name
	}
	return result
}
