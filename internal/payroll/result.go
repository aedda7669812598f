package payroll

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/schedule"
	"shift-payroll-bot/internal/worktime"
)

// PremiumInputs - проценты премии по категориям KPI.
// Отсутствующая категория означает "не применимо", а не ноль.
type PremiumInputs map[kpi.Category]float64

// Validate проверяет, что все проценты - конечные числа
func (p PremiumInputs) Validate() error {
	categories := make([]kpi.Category, 0, len(p))
	for category := range p {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	for _, category := range categories {
		if percent := p[category]; math.IsNaN(percent) || math.IsInf(percent, 0) {
			return &InvalidPremiumError{Category: category, Percent: percent}
		}
	}
	return nil
}
