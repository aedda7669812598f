package kpi

import "strconv"

// NotApplicableMark - отображение отсутствующего значения
const NotApplicableMark = "—"

// Measure - число, которое может отсутствовать.
// Отсутствие не равно нулю: ноль - это реальное значение метрики.
type Measure struct {
	value float64
	known bool
}

func Known(v float64) Measure { return Measure{value: v, known: true} }
func Unknown() Measure        { return Measure{} }

// Get возвращает значение и признак его наличия
func (m Measure) Get() (float64, bool) {
	return m.value, m.known
}

func (m Measure) IsKnown() bool { return m.known }

// OrZero возвращает значение или 0, если его нет
func (m Measure) OrZero() float64 {
	return m.value
}

func (m Measure) String() string {
	if !m.known {
		return NotApplicableMark
	}
	return strconv.FormatFloat(m.value, 'f', -1, 64)
}
