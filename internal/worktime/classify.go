package worktime

import (
	"context"
	"time"

	"shift-payroll-bot/internal/schedule"
)

// ClassifyDayHours раскладывает часы дня на обычные, ночные и праздничные.
//
// Ночные часы считаются по сырым интервалам. Если после вычета обеда часов
// стало меньше, ночная часть уменьшается пропорционально (adjusted/raw),
// чтобы обед списывался равномерно, а не только с дневных часов.
func ClassifyDayHours(ctx context.Context, cal *Calendar, ranges []schedule.ShiftRange, date time.Time) HourBreakdown {
	adjusted := schedule.WorkHoursOf(ranges)
	if adjusted == 0 {
		return HourBreakdown{}
	}

	nightMinutes := 0
	for _, r := range ranges {
		nightMinutes += nightOverlapMinutes(r.StartMinute, r.EndMinute)
	}
	night := float64(nightMinutes) / 60

	raw := schedule.RawHours(ranges)
	if raw > 0 && adjusted < raw {
		night *= adjusted / raw
	}
	if night > adjusted {
		night = adjusted
	}
	day := adjusted - night

	if cal.IsHoliday(ctx, date) {
		return HourBreakdown{Total: adjusted, Holiday: day, NightHoliday: night}
	}
	return HourBreakdown{Total: adjusted, Regular: day, Night: night}
}

// ClassifyDay - то же по сырому значению ячейки. Нерабочие дни дают нулевую разбивку.
func ClassifyDay(ctx context.Context, cal *Calendar, raw string, date time.Time) HourBreakdown {
	if schedule.Categorize(raw) != schedule.CategoryWork {
		return HourBreakdown{}
	}
	return ClassifyDayHours(ctx, cal, schedule.ParseRanges(raw), date)
}
