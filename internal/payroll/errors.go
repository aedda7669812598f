package payroll

import (
	"errors"
	"fmt"
	"time"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/models"
)

var (
	// ErrMissingRate - для подразделения и должности нет ставки, расчет невозможен
	ErrMissingRate = errors.New("pay rate not found")

	// ErrScheduleUnavailable - не удалось получить график сотрудника
	ErrScheduleUnavailable = errors.New("schedule unavailable")

	// ErrInvalidPremium - процент премии не является конечным числом
	ErrInvalidPremium = errors.New("invalid premium percent")
)

// MissingRateError уточняет, для какой пары не нашлось ставки
type MissingRateError struct {
	Division models.Division
	Position models.Position
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("pay rate not found for division %q, position %q", e.Division, e.Position)
}

func (e *MissingRateError) Unwrap() error {
	return ErrMissingRate
}

// ScheduleUnavailableError оборачивает ошибку поставщика графиков
type ScheduleUnavailableError struct {
	FullName   string
	Year       int
	Month      time.Month
	Additional bool
	Err        error
}

func (e *ScheduleUnavailableError) Error() string {
	kind := "schedule"
	if e.Additional {
		kind = "additional shifts"
	}
	return fmt.Sprintf("%s unavailable for %s (%02d.%d): %v", kind, e.FullName, int(e.Month), e.Year, e.Err)
}

func (e *ScheduleUnavailableError) Unwrap() []error {
	return []error{ErrScheduleUnavailable, e.Err}
}

// InvalidPremiumError указывает категорию с некорректным процентом
type InvalidPremiumError struct {
	Category kpi.Category
	Percent  float64
}

func (e *InvalidPremiumError) Error() string {
	return fmt.Sprintf("invalid premium percent for %s: %v", e.Category, e.Percent)
}

func (e *InvalidPremiumError) Unwrap() error {
	return ErrInvalidPremium
}
