package worktime

import "math"

const breakdownTolerance = 1e-6

// HourBreakdown - часы за период по видам оплаты
type HourBreakdown struct {
	Total        float64 `json:"total"`
	Regular      float64 `json:"regular"`
	Night        float64 `json:"night"`
	Holiday      float64 `json:"holiday"`
	NightHoliday float64 `json:"night_holiday"`
}

// Add возвращает сумму двух разбивок
func (b HourBreakdown) Add(o HourBreakdown) HourBreakdown {
	return HourBreakdown{
		Total:        b.Total + o.Total,
		Regular:      b.Regular + o.Regular,
		Night:        b.Night + o.Night,
		Holiday:      b.Holiday + o.Holiday,
		NightHoliday: b.NightHoliday + o.NightHoliday,
	}
}

// Valid проверяет, что все значения неотрицательны и сходятся с Total
func (b HourBreakdown) Valid() bool {
	for _, v := range []float64{b.Total, b.Regular, b.Night, b.Holiday, b.NightHoliday} {
		if v < -breakdownTolerance {
			return false
		}
	}
	sum := b.Regular + b.Night + b.Holiday + b.NightHoliday
	return math.Abs(sum-b.Total) <= breakdownTolerance
}

// IsZero - в периоде нет отработанных часов
func (b HourBreakdown) IsZero() bool {
	return b.Total == 0
}
