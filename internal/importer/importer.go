package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/repository"
	"shift-payroll-bot/internal/schedule"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoWorksheet  = errors.New("no worksheet found")
	ErrEmptySheet   = errors.New("worksheet is empty")
	ErrNoNameColumn = errors.New("full name column not found")
	ErrNoDayColumns = errors.New("day columns not found")
)

var (
	nameHeaders     = []string{"фио", "сотрудник", "full name", "name"}
	divisionHeaders = []string{"подразделение", "division"}
	positionHeaders = []string{"должность", "position"}
)

// EmployeeSchedule - строка листа: сотрудник и его ячейки по дням
type EmployeeSchedule struct {
	FullName string
	Division string
	Position string
	Days     map[string]string
}

// Options - параметры импорта
type Options struct {
	Year       int
	Month      time.Month
	Sheet      string // пусто - первый лист
	Additional bool   // лист дополнительных смен
}

// Result - итог импорта
type Result struct {
	Employees int
	Cells     int
	Skipped   []string
}

// ReadRows читает строки листа xlsx
func ReadRows(r io.Reader, sheet string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	if sheet == "" {
		sheet = file.GetSheetName(0)
	}
	if sheet == "" {
		return nil, ErrNoWorksheet
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

// ParseRows разбирает лист: первая строка - заголовок с ФИО и подписями дней.
// Столбцы, чья подпись не начинается с числа месяца (итого, норма), пропускаются.
func ParseRows(rows [][]string) ([]EmployeeSchedule, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	header := rows[0]
	nameCol, divisionCol, positionCol := -1, -1, -1
	dayCols := make(map[int]string)

	for i, cell := range header {
		label := strings.TrimSpace(cell)
		lower := strings.ToLower(label)
		switch {
		case matches(lower, nameHeaders):
			nameCol = i
		case matches(lower, divisionHeaders):
			divisionCol = i
		case matches(lower, positionHeaders):
			positionCol = i
		default:
			if _, ok := schedule.DayOfMonth(label); ok {
				dayCols[i] = label
			}
		}
	}

	if nameCol < 0 {
		return nil, ErrNoNameColumn
	}
	if len(dayCols) == 0 {
		return nil, ErrNoDayColumns
	}

	var result []EmployeeSchedule
	for _, row := range rows[1:] {
		name := cellAt(row, nameCol)
		if name == "" {
			continue
		}

		entry := EmployeeSchedule{
			FullName: strings.Join(strings.Fields(name), " "),
			Division: cellAt(row, divisionCol),
			Position: cellAt(row, positionCol),
			Days:     make(map[string]string, len(dayCols)),
		}
		for col, label := range dayCols {
			entry.Days[label] = cellAt(row, col)
		}
		result = append(result, entry)
	}

	return result, nil
}

// Importer сохраняет график из xlsx в базу
type Importer struct {
	employees repository.EmployeeRepository
	schedules repository.ScheduleRepository
	logger    *logrus.Logger
}

func New(employees repository.EmployeeRepository, schedules repository.ScheduleRepository, logger *logrus.Logger) *Importer {
	return &Importer{employees: employees, schedules: schedules, logger: logger}
}

// Import загружает лист. Сотрудники с подразделением и должностью в строке
// создаются или обновляются; без них - должны уже существовать, иначе строка пропускается.
func (i *Importer) Import(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	if opts.Month < time.January || opts.Month > time.December {
		return nil, fmt.Errorf("invalid month %d", opts.Month)
	}

	rows, err := ReadRows(r, opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	entries, err := ParseRows(rows)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, entry := range entries {
		employee, err := i.resolveEmployee(entry)
		if err != nil {
			i.logger.WithError(err).WithField("full_name", entry.FullName).Warn("Skipping schedule row")
			result.Skipped = append(result.Skipped, entry.FullName)
			continue
		}

		if err := i.schedules.ReplaceMonth(ctx, employee.ID, opts.Year, opts.Month, opts.Additional, entry.Days); err != nil {
			return result, fmt.Errorf("failed to save schedule for %s: %w", entry.FullName, err)
		}

		result.Employees++
		result.Cells += len(entry.Days)
	}

	i.logger.WithFields(logrus.Fields{
		"year":       opts.Year,
		"month":      int(opts.Month),
		"additional": opts.Additional,
		"employees":  result.Employees,
		"cells":      result.Cells,
		"skipped":    len(result.Skipped),
	}).Info("Schedule imported")

	return result, nil
}

func (i *Importer) resolveEmployee(entry EmployeeSchedule) (*models.Employee, error) {
	if entry.Division == "" || entry.Position == "" {
		employee, err := i.employees.GetByFullName(entry.FullName)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, repository.ErrEmployeeNotFound
		}
		return employee, nil
	}

	division, err := models.ParseDivision(entry.Division)
	if err != nil {
		return nil, err
	}
	position, err := models.ParsePosition(entry.Position)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{FullName: entry.FullName, Division: division, Position: position}
	if err := i.employees.Upsert(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func matches(value string, candidates []string) bool {
	for _, c := range candidates {
		if value == c {
			return true
		}
	}
	return false
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
