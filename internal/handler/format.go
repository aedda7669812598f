package handler

import (
	"fmt"
	"strings"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/leveling"
	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/payroll"
)

func formatSalary(r *payroll.SalaryResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s, %02d.%d\n", r.Employee.FullName, int(r.Month), r.Year)
	fmt.Fprintf(&b, "rate: %s\n", r.Rate.StringFixed(2))
	fmt.Fprintf(&b, "work days: %d, vacation: %d, sick: %d, days off: %d\n",
		r.WorkDays, r.Days.VacationDays+r.Days.VacationExtendedDays, r.Days.SickDays, r.Days.DaysOff)
	fmt.Fprintf(&b, "hours: %.1f (regular %.2f, night %.2f, holiday %.2f, night holiday %.2f)\n",
		r.Hours.Total, r.Hours.Regular, r.Hours.Night, r.Hours.Holiday, r.Hours.NightHoliday)
	fmt.Fprintf(&b, "base: %s\n", r.Base.StringFixed(2))
	fmt.Fprintf(&b, "night bonus: %s\n", r.NightBonus.StringFixed(2))
	fmt.Fprintf(&b, "holiday bonus: %s\n", r.HolidayBonus.StringFixed(2))
	fmt.Fprintf(&b, "night holiday bonus: %s\n", r.NightHolidayBonus.StringFixed(2))

	for _, p := range r.Premiums {
		fmt.Fprintf(&b, "premium %s %.2f%%: %s\n", p.Category, p.Percent, p.Amount.StringFixed(2))
	}
	fmt.Fprintf(&b, "premium total %.2f%%: %s\n", r.TotalPremiumPercent, r.TotalPremium.StringFixed(2))

	if r.AdditionalHours.Total > 0 {
		fmt.Fprintf(&b, "additional: %.1f h x %s = %s\n",
			r.AdditionalHours.Total, r.AdditionalRate.StringFixed(2), r.AdditionalPay.StringFixed(2))
	}
	if !r.Compensation.IsZero() {
		fmt.Fprintf(&b, "compensation: %s\n", r.Compensation.StringFixed(2))
	}

	fmt.Fprintf(&b, "advance: %s\n", r.Advance.StringFixed(2))
	fmt.Fprintf(&b, "main: %s\n", r.Main.StringFixed(2))
	fmt.Fprintf(&b, "total: %s", r.Total.StringFixed(2))

	if r.TotalWithMarketplace != nil {
		fmt.Fprintf(&b, "\nmarketplace: %s\ntotal with marketplace: %s",
			r.Marketplace.StringFixed(2), r.TotalWithMarketplace.StringFixed(2))
	}

	return b.String()
}

func formatProgress(points int, p leveling.Progress) string {
	return fmt.Sprintf("points: %d\nlevel: %d\nin level: %d / %d\nto next level: %d",
		points, p.Level, p.PointsIntoLevel, p.NextLevelCost, p.PointsToNext)
}

func formatEvaluation(emp *models.Employee, e kpi.Evaluation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s, %s)\n", e.Metric, emp.Division, emp.Role())
	fmt.Fprintf(&b, "achieved: %s%%\n", e.Achieved)
	fmt.Fprintf(&b, "premium: %s%%\n", e.Premium)

	for _, t := range e.Tiers {
		fmt.Fprintf(&b, "%s -> %g%%: %s, required %s, gap %s\n",
			t.Description, t.Premium, t.Status, t.Required, t.Gap)
	}

	return strings.TrimRight(b.String(), "\n")
}
