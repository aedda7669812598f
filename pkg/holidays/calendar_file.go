package holidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Названия для дней без официального праздника
const (
	TransferredDayOffName = "Перенесенный выходной"
	NonWorkingDayName     = "Нерабочий день"
)

// ErrCalendarNotFound - файла производственного календаря за год нет
var ErrCalendarNotFound = errors.New("production calendar not found")

// ProductionCalendar - производственный календарь за год:
// {"year":2025,"months":[{"month":1,"days":"1,2,3,4,5,6,7,8,11,12,18,19,25,26"}],...}
// Суффикс "+" - перенесенный выходной, "*" - сокращенный рабочий день.
type ProductionCalendar struct {
	Year        int          `json:"year"`
	Months      []MonthDays  `json:"months"`
	Transitions []Transition `json:"transitions"`
	Statistic   Statistic    `json:"statistic"`
}

type MonthDays struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

type Transition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Statistic struct {
	Workdays int     `json:"workdays"`
	Holidays int     `json:"holidays"`
	Hours40  float64 `json:"hours40"`
	Hours36  float64 `json:"hours36"`
	Hours24  float64 `json:"hours24"`
}

// DayKind - отметка дня в календаре
type DayKind int

const (
	DayOff DayKind = iota
	DayTransferred
	DayShortened
)

// CalendarDay - разобранный день календаря
type CalendarDay struct {
	Date time.Time
	Kind DayKind
}

// официальные нерабочие праздники РФ (месяц, день)
var officialHolidays = map[[2]int]string{
	{1, 1}:  "Новогодние каникулы",
	{1, 2}:  "Новогодние каникулы",
	{1, 3}:  "Новогодние каникулы",
	{1, 4}:  "Новогодние каникулы",
	{1, 5}:  "Новогодние каникулы",
	{1, 6}:  "Новогодние каникулы",
	{1, 7}:  "Рождество Христово",
	{1, 8}:  "Новогодние каникулы",
	{2, 23}: "День защитника Отечества",
	{3, 8}:  "Международный женский день",
	{5, 1}:  "Праздник Весны и Труда",
	{5, 9}:  "День Победы",
	{6, 12}: "День России",
	{11, 4}: "День народного единства",
}

// ParseCalendar разбирает JSON производственного календаря
func ParseCalendar(r io.Reader) (*ProductionCalendar, error) {
	var cal ProductionCalendar
	if err := json.NewDecoder(r).Decode(&cal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if cal.Year == 0 {
		return nil, errors.New("production calendar has no year")
	}
	return &cal, nil
}

// LoadCalendarFile читает календарь из файла
func LoadCalendarFile(path string) (*ProductionCalendar, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, path)
		}
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	defer f.Close()

	return ParseCalendar(f)
}

// Days возвращает все отмеченные дни календаря в порядке возрастания даты
func (c *ProductionCalendar) Days() ([]CalendarDay, error) {
	var days []CalendarDay

	for _, m := range c.Months {
		if m.Month < 1 || m.Month > 12 {
			return nil, fmt.Errorf("invalid month %d", m.Month)
		}

		for _, token := range strings.Split(m.Days, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}

			kind := DayOff
			switch {
			case strings.HasSuffix(token, "+"):
				kind = DayTransferred
				token = strings.TrimSuffix(token, "+")
			case strings.HasSuffix(token, "*"):
				kind = DayShortened
				token = strings.TrimSuffix(token, "*")
			}

			day, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("failed to parse day '%s' in month %d: %w", token, m.Month, err)
			}

			date := time.Date(c.Year, time.Month(m.Month), day, 0, 0, 0, 0, time.UTC)
			if date.Month() != time.Month(m.Month) {
				return nil, fmt.Errorf("day %d out of range in month %d", day, m.Month)
			}

			days = append(days, CalendarDay{Date: date, Kind: kind})
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

// Holidays возвращает праздничные дни: официальные праздники, перенесенные
// выходные и нерабочие будни. Обычные субботы и воскресенья и сокращенные дни не входят.
func (c *ProductionCalendar) Holidays() (map[string]string, error) {
	days, err := c.Days()
	if err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for _, d := range days {
		if d.Kind == DayShortened {
			continue
		}

		key := d.Date.Format(dateLayout)
		if name, ok := officialHolidays[[2]int{int(d.Date.Month()), d.Date.Day()}]; ok {
			result[key] = name
			continue
		}

		switch {
		case d.Kind == DayTransferred:
			result[key] = TransferredDayOffName
		case d.Date.Weekday() != time.Saturday && d.Date.Weekday() != time.Sunday:
			result[key] = NonWorkingDayName
		}
	}

	return result, nil
}

// FileProvider отдает праздники из каталога с файлами {year}.json
type FileProvider struct {
	dir string
}

func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

func (p *FileProvider) Path(year int) string {
	return filepath.Join(p.dir, strconv.Itoa(year)+".json")
}

func (p *FileProvider) Holidays(ctx context.Context, year int) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cal, err := LoadCalendarFile(p.Path(year))
	if err != nil {
		return nil, err
	}
	if cal.Year != year {
		return nil, fmt.Errorf("calendar file %s is for year %d", p.Path(year), cal.Year)
	}

	return cal.Holidays()
}
