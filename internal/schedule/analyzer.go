package schedule

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Category - тип дня в графике
type Category int

const (
	CategoryDayOff Category = iota
	CategoryWork
	CategoryVacation
	CategoryVacationExtended
	CategoryMilitary
	CategorySick
	CategoryAbsence
)

func (c Category) String() string {
	switch c {
	case CategoryWork:
		return "work"
	case CategoryVacation:
		return "vacation"
	case CategoryVacationExtended:
		return "vacation_extended"
	case CategoryMilitary:
		return "military"
	case CategorySick:
		return "sick"
	case CategoryAbsence:
		return "absence"
	default:
		return "day_off"
	}
}

const (
	minutesPerDay = 24 * 60

	// Обед вычитается только из одной смены длиной от 8 часов
	lunchThresholdMinutes = 8 * 60
	lunchHours            = 1.0
)

var (
	notSpecifiedMarkers     = []string{"не указано", "not specified"}
	vacationMarkers         = []string{"отпуск", "vacation"}
	vacationExtendedMarkers = []string{"отпуск (б/с)", "отпуск б/с", "vacation (no pay)"}
	militaryMarkers         = []string{"военкомат", "military"}
	sickTokens              = []string{"больничн", "sick"}
	absenceMarkers          = []string{"прогул", "absence"}
)

var rangePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*[-–—]\s*(\d{1,2}):(\d{2})`)

// ShiftRange - интервал смены в минутах от начала дня.
// EndMinute всегда больше StartMinute: для ночной смены к концу прибавляются сутки.
type ShiftRange struct {
	StartMinute int
	EndMinute   int
}

// Duration возвращает длительность интервала в минутах
func (r ShiftRange) Duration() int {
	return r.EndMinute - r.StartMinute
}

func (r ShiftRange) StartHour() int { return r.StartMinute / 60 }
func (r ShiftRange) StartMin() int  { return r.StartMinute % 60 }
func (r ShiftRange) EndHour() int   { return (r.EndMinute % minutesPerDay) / 60 }
func (r ShiftRange) EndMin() int    { return r.EndMinute % 60 }

// Categorize определяет тип дня по сырому значению ячейки графика.
// Непустой нераспознанный текст считается рабочим днем.
func Categorize(raw string) Category {
	value := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case value == "" || matchesAny(value, notSpecifiedMarkers):
		return CategoryDayOff
	case matchesAny(value, vacationMarkers):
		return CategoryVacation
	case matchesAny(value, vacationExtendedMarkers):
		return CategoryVacationExtended
	case matchesAny(value, militaryMarkers):
		return CategoryMilitary
	case containsAny(value, sickTokens):
		return CategorySick
	case matchesAny(value, absenceMarkers):
		return CategoryAbsence
	case strings.ContainsAny(value, ":-"):
		return CategoryWork
	default:
		return CategoryWork
	}
}

// ParseRanges извлекает все интервалы ЧЧ:ММ-ЧЧ:ММ из строки.
// Некорректные совпадения (25:00, 10:75) пропускаются.
func ParseRanges(raw string) []ShiftRange {
	matches := rangePattern.FindAllStringSubmatch(raw, -1)
	ranges := make([]ShiftRange, 0, len(matches))

	for _, m := range matches {
		start, ok := clockMinutes(m[1], m[2])
		if !ok || start >= minutesPerDay {
			continue
		}
		end, ok := clockMinutes(m[3], m[4])
		if !ok {
			continue
		}
		if end <= start {
			end += minutesPerDay
		}
		ranges = append(ranges, ShiftRange{StartMinute: start, EndMinute: end})
	}

	return ranges
}

// WorkHours считает отработанные часы за день с учетом обеда
func WorkHours(raw string) float64 {
	return WorkHoursOf(ParseRanges(raw))
}

// WorkHoursOf - то же, что WorkHours, но по уже разобранным интервалам
func WorkHoursOf(ranges []ShiftRange) float64 {
	if len(ranges) == 0 {
		return 0
	}

	hours := RawHours(ranges)
	if len(ranges) == 1 && ranges[0].Duration() >= lunchThresholdMinutes {
		hours -= lunchHours
	}
	if hours < 0 {
		hours = 0
	}

	return math.Round(hours*10) / 10
}

// RawHours - сумма длительностей интервалов без вычета обеда и округления
func RawHours(ranges []ShiftRange) float64 {
	total := 0
	for _, r := range ranges {
		total += r.Duration()
	}
	return float64(total) / 60
}

// DayOfMonth достает число месяца из подписи дня ("7", "07 пн", "7.")
func DayOfMonth(label string) (int, bool) {
	label = strings.TrimSpace(label)
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	day, err := strconv.Atoi(label[:end])
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

func clockMinutes(hourStr, minStr string) (int, bool) {
	hours, err := strconv.Atoi(hourStr)
	if err != nil || hours < 0 || hours > 24 {
		return 0, false
	}
	minutes, err := strconv.Atoi(minStr)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	if hours == 24 && minutes != 0 {
		return 0, false
	}
	return hours*60 + minutes, true
}

func matchesAny(value string, markers []string) bool {
	for _, m := range markers {
		if value == m {
			return true
		}
	}
	return false
}

func containsAny(value string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(value, t) {
			return true
		}
	}
	return false
}
