package worktime

const (
	minutesPerDay = 24 * 60

	nightStart = 22 * 60
	nightEnd   = 6 * 60
)

// Ночные окна на шкале 0..2880 минут: хвост текущих суток,
// начало следующих суток и утро текущих суток (для смен вида 03:00-09:00).
var nightWindows = [...][2]int{
	{nightStart, minutesPerDay},
	{minutesPerDay, minutesPerDay + nightEnd},
	{0, nightEnd},
}

// NightOverlapHours возвращает количество ночных часов (22:00-06:00) в смене.
// Если конец смены не позже начала, смена считается переходящей через полночь.
func NightOverlapHours(startHour, startMin, endHour, endMin int) float64 {
	start := startHour*60 + startMin
	end := endHour*60 + endMin
	if end <= start {
		end += minutesPerDay
	}

	return float64(nightOverlapMinutes(start, end)) / 60
}

func nightOverlapMinutes(start, end int) int {
	total := 0
	for _, w := range nightWindows {
		total += overlap(start, end, w[0], w[1])
	}
	return total
}

func overlap(aStart, aEnd, bStart, bEnd int) int {
	lo := max(aStart, bStart)
	hi := min(aEnd, bEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}
