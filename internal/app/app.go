package app

import (
	"fmt"
	"net/http"

	"shift-payroll-bot/internal/config"
	"shift-payroll-bot/internal/importer"
	"shift-payroll-bot/internal/payroll"
	"shift-payroll-bot/internal/repository"
	"shift-payroll-bot/internal/service"
	"shift-payroll-bot/internal/worktime"
	"shift-payroll-bot/pkg/holidays"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// App - собранные зависимости, общие для бота и CLI
type App struct {
	DB        *gorm.DB
	Tables    *config.Tables
	Employees *repository.GormEmployeeRepository
	Schedules *repository.GormScheduleRepository
	Holidays  *service.HolidayService
	Calendar  *worktime.Calendar
	Salary    *service.SalaryService
	Importer  *importer.Importer
	Logger    *logrus.Logger
}

func New(cfg *config.BotConfig, logger *logrus.Logger) (*App, error) {
	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		return nil, err
	}

	// Инициализируем SQLite базу данных
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return newWithDB(cfg, tables, db, logger)
}

// newWithDB собирает зависимости поверх открытой БД; при ошибке БД закрывается
func newWithDB(cfg *config.BotConfig, tables *config.Tables, db *gorm.DB, logger *logrus.Logger) (*App, error) {
	a, err := build(cfg, tables, db, logger)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				logger.WithError(closeErr).Error("Failed to close database")
			}
		}
		return nil, err
	}
	return a, nil
}

func build(cfg *config.BotConfig, tables *config.Tables, db *gorm.DB, logger *logrus.Logger) (*App, error) {
	employees, err := repository.NewGormEmployeeRepository(db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee repository: %w", err)
	}

	schedules, err := repository.NewGormScheduleRepository(db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule repository: %w", err)
	}

	holidayRepo, err := repository.NewGormHolidayRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create holiday repository: %w", err)
	}

	holidayService := service.NewHolidayService(holidayRepo, logger, holidaySources(cfg)...)
	calendar := worktime.NewCalendar(holidayService, logger)
	calculator := payroll.NewCalculator(tables.Rates, calendar, tables.Options)

	return &App{
		DB:        db,
		Tables:    tables,
		Employees: employees,
		Schedules: schedules,
		Holidays:  holidayService,
		Calendar:  calendar,
		Salary:    service.NewSalaryService(employees, schedules, calculator, tables.KPI, tables.Levels, logger),
		Importer:  importer.New(employees, schedules, logger),
		Logger:    logger,
	}, nil
}

// holidaySources: сначала файлы производственного календаря, затем API
func holidaySources(cfg *config.BotConfig) []service.HolidaySource {
	var sources []service.HolidaySource

	if cfg.HolidaysFileDir != "" {
		sources = append(sources, service.HolidaySource{
			Name:     "file",
			Provider: holidays.NewFileProvider(cfg.HolidaysFileDir),
		})
	}

	client := holidays.NewClient(cfg.HolidaysAPIURL, cfg.HolidaysCountry, &http.Client{Timeout: cfg.HolidaysTimeout})
	sources = append(sources, service.HolidaySource{Name: "api", Provider: client})

	return sources
}

// Close закрывает соединение с БД
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
