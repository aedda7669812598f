package payroll

import (
	"github.com/shopspring/decimal"

	"shift-payroll-bot/internal/models"
)

// RateKey - ключ таблицы ставок
type RateKey struct {
	Division models.Division
	Position models.Position
}

// RateTable - часовые ставки по подразделению и должности
type RateTable map[RateKey]decimal.Decimal

// Rate возвращает часовую ставку
func (t RateTable) Rate(division models.Division, position models.Position) (decimal.Decimal, bool) {
	rate, ok := t[RateKey{Division: division, Position: position}]
	return rate, ok
}

// DefaultRates - ставки по умолчанию, руб/час
func DefaultRates() RateTable {
	return RateTable{
		{models.DivisionNTP, models.PositionSpecialist}:     decimal.NewFromInt(280),
		{models.DivisionNTP, models.PositionLeadSpecialist}: decimal.NewFromInt(320),
		{models.DivisionNTP, models.PositionExpert}:         decimal.NewFromInt(360),
		{models.DivisionNTP, models.PositionDeputyHead}:     decimal.NewFromInt(400),
		{models.DivisionNTP, models.PositionGroupHead}:      decimal.NewFromInt(450),

		{models.DivisionNCK, models.PositionSpecialist}:     decimal.NewFromInt(300),
		{models.DivisionNCK, models.PositionLeadSpecialist}: decimal.NewFromInt(340),
		{models.DivisionNCK, models.PositionExpert}:         decimal.NewFromInt(380),
		{models.DivisionNCK, models.PositionDeputyHead}:     decimal.NewFromInt(420),
		{models.DivisionNCK, models.PositionGroupHead}:      decimal.NewFromInt(480),
	}
}
