package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/leveling"
	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/payroll"
	"shift-payroll-bot/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrNotRegistered - чат не привязан к сотруднику
var ErrNotRegistered = errors.New("чат не привязан к сотруднику")

// SalaryRequest - параметры расчета за месяц
type SalaryRequest struct {
	Year        int
	Month       time.Month
	Premiums    payroll.PremiumInputs
	Marketplace *decimal.Decimal
}

// KPIRequest - параметры расчета ступеней KPI
type KPIRequest struct {
	Metric    kpi.Category
	Direction kpi.Direction
	Current   float64
	Normative kpi.Measure
}

// SalaryService связывает сотрудников, графики и калькуляторы
type SalaryService struct {
	employees  repository.EmployeeRepository
	schedules  payroll.ScheduleProvider
	calculator *payroll.Calculator
	kpi        *kpi.Tables
	levels     *leveling.Calculator
	logger     *logrus.Logger
}

func NewSalaryService(
	employees repository.EmployeeRepository,
	schedules payroll.ScheduleProvider,
	calculator *payroll.Calculator,
	kpiTables *kpi.Tables,
	levels *leveling.Calculator,
	logger *logrus.Logger,
) *SalaryService {
	return &SalaryService{
		employees:  employees,
		schedules:  schedules,
		calculator: calculator,
		kpi:        kpiTables,
		levels:     levels,
		logger:     logger,
	}
}

// Register привязывает чат к сотруднику по ФИО
func (s *SalaryService) Register(chatID int64, fullName string) (*models.Employee, error) {
	employee, err := s.employees.BindChat(fullName, chatID)
	if err != nil {
		s.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to bind chat")
		return nil, err
	}
	return employee, nil
}

// EmployeeByChat возвращает сотрудника, привязанного к чату
func (s *SalaryService) EmployeeByChat(chatID int64) (*models.Employee, error) {
	employee, err := s.employees.GetByChatID(chatID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrNotRegistered
	}
	return employee, nil
}

// CalculateForChat считает зарплату сотрудника, привязанного к чату
func (s *SalaryService) CalculateForChat(ctx context.Context, chatID int64, req SalaryRequest) (*payroll.SalaryResult, error) {
	employee, err := s.EmployeeByChat(chatID)
	if err != nil {
		return nil, err
	}
	return s.Calculate(ctx, *employee, req)
}

// CalculateByName считает зарплату сотрудника по ФИО
func (s *SalaryService) CalculateByName(ctx context.Context, fullName string, req SalaryRequest) (*payroll.SalaryResult, error) {
	employee, err := s.employees.GetByFullName(fullName)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrEmployeeNotFound, fullName)
	}
	return s.Calculate(ctx, *employee, req)
}

func (s *SalaryService) Calculate(ctx context.Context, employee models.Employee, req SalaryRequest) (*payroll.SalaryResult, error) {
	fields := logrus.Fields{
		"full_name": employee.FullName,
		"division":  employee.Division,
		"position":  employee.Position,
		"year":      req.Year,
		"month":     int(req.Month),
	}
	s.logger.WithFields(fields).Info("Calculating salary")

	result, err := s.calculator.CalculateSalary(ctx, employee, req.Month, req.Year, req.Premiums, s.schedules, req.Marketplace)
	if err != nil {
		s.logger.WithError(err).WithFields(fields).Error("Salary calculation failed")
		return nil, err
	}

	s.logger.WithFields(fields).WithFields(logrus.Fields{
		"hours": result.Hours.Total,
		"total": result.Total.StringFixed(2),
	}).Info("Salary calculated")

	return result, nil
}

// Level - уровень и прогресс по сумме очков
func (s *SalaryService) Level(points int) leveling.Progress {
	return s.levels.Progress(points)
}

// EvaluateKPI считает ступени премии для сотрудника
func (s *SalaryService) EvaluateKPI(employee models.Employee, req KPIRequest) (kpi.Evaluation, error) {
	return s.kpi.RequiredValueForTier(kpi.Query{
		Unit:      kpi.Unit{Division: employee.Division, Role: employee.Role()},
		Metric:    req.Metric,
		Direction: req.Direction,
		Current:   req.Current,
		Normative: req.Normative,
	})
}

// EvaluateKPIForChat - то же для сотрудника, привязанного к чату
func (s *SalaryService) EvaluateKPIForChat(chatID int64, req KPIRequest) (kpi.Evaluation, error) {
	employee, err := s.EmployeeByChat(chatID)
	if err != nil {
		return kpi.Evaluation{}, err
	}
	return s.EvaluateKPI(*employee, req)
}
