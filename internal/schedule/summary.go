package schedule

// Summary - количество дней каждого типа за период
type Summary struct {
	WorkDays             int `json:"work_days"`
	VacationDays         int `json:"vacation_days"`
	VacationExtendedDays int `json:"vacation_extended_days"`
	MilitaryDays         int `json:"military_days"`
	SickDays             int `json:"sick_days"`
	AbsenceDays          int `json:"absence_days"`
	DaysOff              int `json:"days_off"`
}

// Add учитывает один день указанного типа
func (s *Summary) Add(c Category) {
	switch c {
	case CategoryWork:
		s.WorkDays++
	case CategoryVacation:
		s.VacationDays++
	case CategoryVacationExtended:
		s.VacationExtendedDays++
	case CategoryMilitary:
		s.MilitaryDays++
	case CategorySick:
		s.SickDays++
	case CategoryAbsence:
		s.AbsenceDays++
	default:
		s.DaysOff++
	}
}

// Summarize считает дни по категориям для графика "подпись дня -> значение"
func Summarize(days map[string]string) Summary {
	var s Summary
	for _, raw := range days {
		s.Add(Categorize(raw))
	}
	return s
}
