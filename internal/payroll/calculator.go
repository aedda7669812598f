package payroll

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/schedule"
	"shift-payroll-bot/internal/worktime"
)

const hoursPrecision = 4

// ScheduleProvider отдает сырые строки графика: подпись дня -> значение ячейки
type ScheduleProvider interface {
	MonthSchedule(ctx context.Context, fullName string, month time.Month, division models.Division, year int) (map[string]string, error)
	AdditionalShifts(ctx context.Context, fullName string, month time.Month, division models.Division, year int) (map[string]string, error)
}

// Differentials - коэффициенты доплат поверх базовой ставки
type Differentials struct {
	Night        decimal.Decimal
	Holiday      decimal.Decimal
	NightHoliday decimal.Decimal
}

// Options - параметры расчета
type Options struct {
	Differentials Differentials
	// Множитель ставки для дополнительных смен
	AdditionalMultiplier decimal.Decimal
	// Последний день месяца, входящий в аванс
	AdvanceLastDay int
	// Фиксированная компенсация за каждый рабочий день
	PerWorkDayCompensation decimal.Decimal
}

// DefaultOptions: ночь +20%, праздник +100%, праздничная ночь +20%,
// доп. смены по двойной ставке, аванс за 1-15 число.
func DefaultOptions() Options {
	return Options{
		Differentials: Differentials{
			Night:        decimal.NewFromFloat(0.2),
			Holiday:      decimal.NewFromInt(1),
			NightHoliday: decimal.NewFromFloat(0.2),
		},
		AdditionalMultiplier:   decimal.NewFromInt(2),
		AdvanceLastDay:         15,
		PerWorkDayCompensation: decimal.Zero,
	}
}

// Calculator считает зарплату по графику, ставкам и процентам KPI.
// Не хранит состояния между вызовами, кроме кэша праздников в календаре.
type Calculator struct {
	rates    RateTable
	calendar *worktime.Calendar
	opts     Options
}

func NewCalculator(rates RateTable, calendar *worktime.Calendar, opts Options) *Calculator {
	if opts.AdvanceLastDay <= 0 {
		opts.AdvanceLastDay = DefaultOptions().AdvanceLastDay
	}
	return &Calculator{rates: rates, calendar: calendar, opts: opts}
}

type scheduledDay struct {
	day   int
	label string
	raw   string
}

// CalculateSalary считает зарплату сотрудника за месяц.
//
// Базовая часть - все часы по ставке; ночные и праздничные часы дают
// доплаты сверх базы. Аванс - база и доплаты за дни до AdvanceLastDay
// включительно, основная выплата - остальное плюс премии, доп. смены и компенсации.
func (c *Calculator) CalculateSalary(
	ctx context.Context,
	emp models.Employee,
	month time.Month,
	year int,
	premiums PremiumInputs,
	provider ScheduleProvider,
	marketplace *decimal.Decimal,
) (*SalaryResult, error) {
	rate, ok := c.rates.Rate(emp.Division, emp.Position)
	if !ok {
		return nil, &MissingRateError{Division: emp.Division, Position: emp.Position}
	}

	if err := premiums.Validate(); err != nil {
		return nil, err
	}

	days, err := provider.MonthSchedule(ctx, emp.FullName, month, emp.Division, year)
	if err != nil {
		return nil, &ScheduleUnavailableError{FullName: emp.FullName, Year: year, Month: month, Err: err}
	}
	extra, err := provider.AdditionalShifts(ctx, emp.FullName, month, emp.Division, year)
	if err != nil {
		return nil, &ScheduleUnavailableError{FullName: emp.FullName, Year: year, Month: month, Additional: true, Err: err}
	}

	result := &SalaryResult{
		Employee: emp,
		Year:     year,
		Month:    month,
		Rate:     rate,
	}

	for _, d := range sortedDays(days, year, month) {
		category := schedule.Categorize(d.raw)
		result.Days.Add(category)
		if category != schedule.CategoryWork {
			continue
		}

		date := time.Date(year, month, d.day, 0, 0, 0, 0, time.UTC)
		hours := worktime.ClassifyDayHours(ctx, c.calendar, schedule.ParseRanges(d.raw), date)
		if hours.IsZero() {
			continue
		}

		result.WorkDays++
		if d.day <= c.opts.AdvanceLastDay {
			result.AdvanceHours = result.AdvanceHours.Add(hours)
		} else {
			result.MainHours = result.MainHours.Add(hours)
		}
	}
	result.Hours = result.AdvanceHours.Add(result.MainHours)

	for _, d := range sortedDays(extra, year, month) {
		date := time.Date(year, month, d.day, 0, 0, 0, 0, time.UTC)
		result.AdditionalHours = result.AdditionalHours.Add(worktime.ClassifyDay(ctx, c.calendar, d.raw, date))
	}

	diff := c.opts.Differentials
	result.Base = pay(result.Hours.Total, rate, decimal.NewFromInt(1))
	result.NightBonus = pay(result.Hours.Night, rate, diff.Night)
	result.HolidayBonus = pay(result.Hours.Holiday, rate, diff.Holiday)
	result.NightHolidayBonus = pay(result.Hours.NightHoliday, rate, diff.NightHoliday)

	advanceBase := pay(result.AdvanceHours.Total, rate, decimal.NewFromInt(1))
	advanceBonuses := pay(result.AdvanceHours.Night, rate, diff.Night).
		Add(pay(result.AdvanceHours.Holiday, rate, diff.Holiday)).
		Add(pay(result.AdvanceHours.NightHoliday, rate, diff.NightHoliday))
	result.Advance = advanceBase.Add(advanceBonuses)

	totalPercent := 0.0
	for _, category := range kpi.CategoriesFor(emp.Role()) {
		percent, ok := premiums[category]
		if !ok {
			continue
		}
		totalPercent += percent
		result.Premiums = append(result.Premiums, PremiumLine{
			Category: category,
			Percent:  percent,
			Amount:   percentOf(result.Base, percent),
		})
	}
	result.TotalPremiumPercent = totalPercent
	result.TotalPremium = percentOf(result.Base, totalPercent)

	premiumFactor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(totalPercent).Div(decimal.NewFromInt(100)))
	additionalRate := rate.Mul(c.opts.AdditionalMultiplier).Mul(premiumFactor)
	result.AdditionalRate = additionalRate.Round(2)
	result.AdditionalPay = hoursDecimal(result.AdditionalHours.Total).Mul(additionalRate).Round(2)

	result.Compensation = c.opts.PerWorkDayCompensation.Mul(decimal.NewFromInt(int64(result.WorkDays))).Round(2)

	// Основная выплата - все, что не вошло в аванс
	mainEarned := result.Base.Add(result.Bonuses()).Sub(result.Advance)
	result.Main = mainEarned.
		Add(result.TotalPremium).
		Add(result.AdditionalPay).
		Add(result.Compensation)
	result.Total = result.Advance.Add(result.Main)

	if marketplace != nil {
		m := marketplace.Round(2)
		withMarketplace := result.Total.Add(m)
		result.Marketplace = &m
		result.TotalWithMarketplace = &withMarketplace
	}

	return result, nil
}

// sortedDays упорядочивает дни по числу месяца; подписи без числа
// и дни вне месяца (31 февраля) пропускаются.
func sortedDays(days map[string]string, year int, month time.Month) []scheduledDay {
	result := make([]scheduledDay, 0, len(days))
	for label, raw := range days {
		day, ok := schedule.DayOfMonth(label)
		if !ok {
			continue
		}
		if time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Month() != month {
			continue
		}
		result = append(result, scheduledDay{day: day, label: label, raw: raw})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].day == result[j].day {
			return result[i].label < result[j].label
		}
		return result[i].day < result[j].day
	})
	return result
}

func hoursDecimal(hours float64) decimal.Decimal {
	return decimal.NewFromFloat(hours).Round(hoursPrecision)
}

func pay(hours float64, rate, coefficient decimal.Decimal) decimal.Decimal {
	return hoursDecimal(hours).Mul(rate).Mul(coefficient).Round(2)
}

func percentOf(amount decimal.Decimal, percent float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(percent)).Div(decimal.NewFromInt(100)).Round(2)
}
