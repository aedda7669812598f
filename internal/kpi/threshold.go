package kpi

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrNoTable = errors.New("no threshold table for unit and metric")

// Direction - в какую сторону метрика лучше
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// TierStatus - результат проверки одной ступени
type TierStatus int

const (
	StatusNotApplicable TierStatus = iota
	StatusSatisfied
	StatusUnsatisfied
)

func (s TierStatus) String() string {
	switch s {
	case StatusSatisfied:
		return "satisfied"
	case StatusUnsatisfied:
		return "unsatisfied"
	default:
		return "not_applicable"
	}
}

// Query - входные данные для расчета ступеней
type Query struct {
	Unit      Unit
	Metric    Category
	Direction Direction
	Current   float64
	Normative Measure
}

// TierResult - состояние одной ступени для текущего значения.
// Required - значение метрики, нужное для ступени; Gap - сколько до него осталось.
type TierResult struct {
	Threshold   float64
	Premium     float64
	Description string
	Status      TierStatus
	Required    Measure
	Gap         Measure
}

// Satisfied - ступень достигнута
func (r TierResult) Satisfied() bool {
	return r.Status == StatusSatisfied
}

// Evaluation - все ступени метрики от высшей к низшей
type Evaluation struct {
	Metric    Category
	Direction Direction
	Achieved  Measure
	Premium   Measure
	Tiers     []TierResult
}

// NotApplicable - норматив не задан, расчет не выполнялся
func (e Evaluation) NotApplicable() bool {
	return !e.Premium.IsKnown()
}

// Next возвращает ближайшую недостигнутую ступень над текущей
func (e Evaluation) Next() (TierResult, bool) {
	var next TierResult
	found := false
	for _, tier := range e.Tiers {
		if tier.Status == StatusSatisfied {
			break
		}
		if tier.Status == StatusUnsatisfied {
			next = tier
			found = true
		}
	}
	return next, found
}

// RequiredValueForTier считает по каждой ступени требуемое значение метрики
// и разрыв до него. Нулевой или отсутствующий норматив дает StatusNotApplicable
// для всех ступеней.
func (t *Tables) RequiredValueForTier(q Query) (Evaluation, error) {
	tiers, ok := t.Tiers(q.Unit, q.Metric)
	if !ok {
		return Evaluation{}, fmt.Errorf("%w: %s %s", ErrNoTable, q.Unit, q.Metric)
	}

	direction := q.Direction
	if q.Metric != CategoryTarget {
		direction = HigherIsBetter
	}

	eval := Evaluation{
		Metric:    q.Metric,
		Direction: direction,
		Tiers:     make([]TierResult, 0, len(tiers)),
	}

	normative, known := q.Normative.Get()
	if !known || normative == 0 {
		for _, tier := range tiers {
			eval.Tiers = append(eval.Tiers, TierResult{
				Threshold:   tier.Threshold,
				Premium:     tier.Premium,
				Description: describe(tier.Threshold),
				Status:      StatusNotApplicable,
			})
		}
		return eval, nil
	}

	eval.Achieved = achieved(direction, q.Current, normative)
	eval.Premium = Known(0)
	premiumSet := false

	for _, tier := range tiers {
		result := TierResult{
			Threshold:   tier.Threshold,
			Premium:     tier.Premium,
			Description: describe(tier.Threshold),
		}

		var needed, gap float64
		var satisfied bool
		if direction == LowerIsBetter {
			needed = normative / (tier.Threshold / 100)
			satisfied = q.Current <= needed
			gap = q.Current - needed
		} else {
			needed = (tier.Threshold / 100) * normative
			satisfied = q.Current >= needed
			gap = needed - q.Current
		}

		result.Required = Known(needed)
		if satisfied {
			result.Status = StatusSatisfied
			if !premiumSet {
				eval.Premium = Known(tier.Premium)
				premiumSet = true
			}
		} else {
			result.Status = StatusUnsatisfied
			result.Gap = Known(gap)
		}

		eval.Tiers = append(eval.Tiers, result)
	}

	return eval, nil
}

// PremiumPercent - процент премии по метрике; Unknown, если норматив не задан
func (t *Tables) PremiumPercent(q Query) (Measure, error) {
	eval, err := t.RequiredValueForTier(q)
	if err != nil {
		return Unknown(), err
	}
	return eval.Premium, nil
}

func achieved(direction Direction, current, normative float64) Measure {
	if direction == LowerIsBetter {
		if current == 0 {
			return Unknown()
		}
		return Known(normative / current * 100)
	}
	return Known(current / normative * 100)
}

func describe(threshold float64) string {
	return "≥ " + strconv.FormatFloat(threshold, 'f', -1, 64) + "% норматива"
}
