package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/leveling"
	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/payroll"
)

// Tables - справочники расчета: ставки, коэффициенты, таблицы KPI и уровней
type Tables struct {
	Rates   payroll.RateTable
	Options payroll.Options
	KPI     *kpi.Tables
	Levels  *leveling.Calculator
}

// DefaultTables - справочники, встроенные в бинарник
func DefaultTables() *Tables {
	return &Tables{
		Rates:   payroll.DefaultRates(),
		Options: payroll.DefaultOptions(),
		KPI:     kpi.DefaultTables(),
		Levels:  leveling.Default(),
	}
}

type tablesFile struct {
	Rates         []rateEntry        `yaml:"rates"`
	Differentials *differentialsFile `yaml:"differentials"`
	KPI           []kpiEntry         `yaml:"kpi"`
	Levels        []leveling.Band    `yaml:"levels"`
}

type rateEntry struct {
	Division string `yaml:"division"`
	Position string `yaml:"position"`
	Rate     string `yaml:"rate"`
}

type differentialsFile struct {
	Night                  *string `yaml:"night"`
	Holiday                *string `yaml:"holiday"`
	NightHoliday           *string `yaml:"night_holiday"`
	AdditionalMultiplier   *string `yaml:"additional_multiplier"`
	AdvanceLastDay         *int    `yaml:"advance_last_day"`
	PerWorkDayCompensation *string `yaml:"per_work_day_compensation"`
}

type kpiEntry struct {
	Division string     `yaml:"division"`
	Role     string     `yaml:"role"`
	Metric   string     `yaml:"metric"`
	Tiers    []kpi.Tier `yaml:"tiers"`
}

// LoadTables читает YAML со справочниками. Пустой путь - встроенные значения.
// Секции файла заменяют встроенные целиком, отсутствующие секции остаются по умолчанию.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	return ParseTables(bytes.NewReader(data))
}

func ParseTables(r io.Reader) (*Tables, error) {
	var file tablesFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse tables: %w", err)
	}

	tables := DefaultTables()

	if len(file.Rates) > 0 {
		rates, err := file.rates()
		if err != nil {
			return nil, err
		}
		tables.Rates = rates
	}

	if file.Differentials != nil {
		if err := file.Differentials.apply(&tables.Options); err != nil {
			return nil, err
		}
	}

	if len(file.KPI) > 0 {
		kpiTables, err := file.kpiTables()
		if err != nil {
			return nil, err
		}
		tables.KPI = kpiTables
	}

	if len(file.Levels) > 0 {
		levels, err := leveling.New(file.Levels)
		if err != nil {
			return nil, fmt.Errorf("levels: %w", err)
		}
		tables.Levels = levels
	}

	return tables, nil
}

func (f *tablesFile) rates() (payroll.RateTable, error) {
	rates := make(payroll.RateTable, len(f.Rates))
	for i, entry := range f.Rates {
		division, err := models.ParseDivision(entry.Division)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: %w", i, err)
		}
		position, err := models.ParsePosition(entry.Position)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: %w", i, err)
		}
		rate, err := decimal.NewFromString(entry.Rate)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: invalid rate %q: %w", i, entry.Rate, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rates[%d]: rate must be positive", i)
		}
		rates[payroll.RateKey{Division: division, Position: position}] = rate
	}
	return rates, nil
}

func (f *tablesFile) kpiTables() (*kpi.Tables, error) {
	tables := kpi.NewTables()
	for i, entry := range f.KPI {
		division, err := models.ParseDivision(entry.Division)
		if err != nil {
			return nil, fmt.Errorf("kpi[%d]: %w", i, err)
		}
		role, err := models.ParseRole(entry.Role)
		if err != nil {
			return nil, fmt.Errorf("kpi[%d]: %w", i, err)
		}
		metric, err := kpi.ParseCategory(entry.Metric)
		if err != nil {
			return nil, fmt.Errorf("kpi[%d]: %w", i, err)
		}
		if len(entry.Tiers) == 0 {
			return nil, fmt.Errorf("kpi[%d]: no tiers", i)
		}
		for j, tier := range entry.Tiers {
			if !(tier.Threshold > 0) {
				return nil, fmt.Errorf("kpi[%d].tiers[%d]: threshold must be positive", i, j)
			}
		}
		tables.Set(kpi.Unit{Division: division, Role: role}, metric, entry.Tiers)
	}
	return tables, nil
}

func (d *differentialsFile) apply(opts *payroll.Options) error {
	fields := []struct {
		name  string
		value *string
		dst   *decimal.Decimal
	}{
		{"night", d.Night, &opts.Differentials.Night},
		{"holiday", d.Holiday, &opts.Differentials.Holiday},
		{"night_holiday", d.NightHoliday, &opts.Differentials.NightHoliday},
		{"additional_multiplier", d.AdditionalMultiplier, &opts.AdditionalMultiplier},
		{"per_work_day_compensation", d.PerWorkDayCompensation, &opts.PerWorkDayCompensation},
	}

	for _, field := range fields {
		if field.value == nil {
			continue
		}
		v, err := decimal.NewFromString(*field.value)
		if err != nil {
			return fmt.Errorf("differentials.%s: %w", field.name, err)
		}
		if v.IsNegative() {
			return fmt.Errorf("differentials.%s must not be negative", field.name)
		}
		*field.dst = v
	}

	if d.AdvanceLastDay != nil {
		if *d.AdvanceLastDay < 1 || *d.AdvanceLastDay > 31 {
			return fmt.Errorf("differentials.advance_last_day out of range: %d", *d.AdvanceLastDay)
		}
		opts.AdvanceLastDay = *d.AdvanceLastDay
	}

	return nil
}
