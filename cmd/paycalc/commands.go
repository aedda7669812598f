package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"shift-payroll-bot/internal/app"
	"shift-payroll-bot/internal/config"
	"shift-payroll-bot/internal/importer"
	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/logger"
	"shift-payroll-bot/internal/models"
	"shift-payroll-bot/internal/payroll"
	"shift-payroll-bot/internal/schedule"
	"shift-payroll-bot/internal/service"
	"shift-payroll-bot/internal/worktime"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func parsePeriod(s string) (int, time.Month, error) {
	if s == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("01.2006", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period %q, expected MM.YYYY", s)
	}
	return t.Year(), t.Month(), nil
}

// parsePremiums разбирает пары категория=процент; NaN и Inf не принимаются
func parsePremiums(values map[string]string) (payroll.PremiumInputs, error) {
	inputs := payroll.PremiumInputs{}
	for key, value := range values {
		category, err := kpi.ParseCategory(strings.ToLower(key))
		if err != nil {
			return nil, err
		}
		percent, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(percent) || math.IsInf(percent, 0) {
			return nil, fmt.Errorf("invalid premium %s=%s", key, value)
		}
		inputs[category] = percent
	}
	return inputs, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSalaryCommand(open appOpener) *cobra.Command {
	var (
		name        string
		period      string
		premiums    map[string]string
		marketplace string
	)

	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Calculate monthly salary for an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return errors.New("--name is required")
			}
			year, month, err := parsePeriod(period)
			if err != nil {
				return err
			}

			inputs, err := parsePremiums(premiums)
			if err != nil {
				return err
			}
			req := service.SalaryRequest{Year: year, Month: month, Premiums: inputs}
			if marketplace != "" {
				amount, err := decimal.NewFromString(marketplace)
				if err != nil {
					return fmt.Errorf("invalid marketplace amount %q", marketplace)
				}
				req.Marketplace = &amount
			}

			return withApp(open, func(a *app.App) error {
				result, err := a.Salary.CalculateByName(cmd.Context(), name, req)
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "employee full name")
	cmd.Flags().StringVar(&period, "month", "", "period MM.YYYY (default: current month)")
	cmd.Flags().StringToStringVar(&premiums, "premium", nil, "premium percent per category, e.g. csi=10,flr=5")
	cmd.Flags().StringVar(&marketplace, "marketplace", "", "marketplace amount added to the total")

	return cmd
}

func newImportCommand(open appOpener) *cobra.Command {
	var (
		file       string
		period     string
		sheet      string
		additional bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a monthly schedule from an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parsePeriod(period)
			if err != nil {
				return err
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			return withApp(open, func(a *app.App) error {
				result, err := a.Importer.Import(cmd.Context(), f, importer.Options{
					Year:       year,
					Month:      month,
					Sheet:      sheet,
					Additional: additional,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d employees, %d cells\n", result.Employees, result.Cells)
				for _, skipped := range result.Skipped {
					fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s\n", skipped)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "xlsx workbook")
	cmd.Flags().StringVar(&period, "month", "", "period MM.YYYY (default: current month)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (default: first sheet)")
	cmd.Flags().BoolVar(&additional, "additional", false, "sheet holds additional shifts")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newHolidaysCommand(open appOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage the stored holiday calendar",
	}

	load := &cobra.Command{
		Use:   "load <calendar.json>",
		Short: "Load a production calendar file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(open, func(a *app.App) error {
				count, err := a.Holidays.LoadFromJSON(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "loaded %d holidays\n", count)
				return nil
			})
		},
	}

	refresh := &cobra.Command{
		Use:   "refresh <year>",
		Short: "Fetch a year from the configured sources and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			return withApp(open, func(a *app.App) error {
				days, source, err := a.Holidays.Refresh(cmd.Context(), year)
				if err != nil {
					return err
				}
				dates := make([]string, 0, len(days))
				for date := range days {
					dates = append(dates, date)
				}
				sort.Strings(dates)
				for _, date := range dates {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", date, days[date])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d holidays from %s\n", len(days), source)
				return nil
			})
		},
	}

	cmd.AddCommand(load, refresh)
	return cmd
}

func newKPICommand() *cobra.Command {
	var (
		tablesPath string
		division   string
		role       string
		metric     string
		current    float64
		normative  float64
		lower      bool
	)

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Show required metric values for each premium tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := config.LoadTables(tablesPath)
			if err != nil {
				return err
			}
			div, err := models.ParseDivision(division)
			if err != nil {
				return err
			}
			r, err := models.ParseRole(role)
			if err != nil {
				return err
			}
			m, err := kpi.ParseCategory(strings.ToLower(metric))
			if err != nil {
				return err
			}

			norm := kpi.Unknown()
			if cmd.Flags().Changed("normative") {
				norm = kpi.Known(normative)
			}
			direction := kpi.HigherIsBetter
			if lower {
				direction = kpi.LowerIsBetter
			}

			eval, err := tables.KPI.RequiredValueForTier(kpi.Query{
				Unit:      kpi.Unit{Division: div, Role: r},
				Metric:    m,
				Direction: direction,
				Current:   current,
				Normative: norm,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "achieved: %s%%  premium: %s%%\n", eval.Achieved, eval.Premium)
			for _, t := range eval.Tiers {
				fmt.Fprintf(out, "%-16s %6g%%  %-14s required %-10s gap %s\n",
					t.Description, t.Premium, t.Status, t.Required, t.Gap)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tablesPath, "tables", os.Getenv("TABLES_PATH"), "YAML tables file")
	cmd.Flags().StringVar(&division, "division", "НТП", "division (НТП/НЦК)")
	cmd.Flags().StringVar(&role, "role", "specialist", "role (specialist/head)")
	cmd.Flags().StringVar(&metric, "metric", "", "metric: csi, flr, gok, target, ...")
	cmd.Flags().Float64Var(&current, "current", 0, "current value")
	cmd.Flags().Float64Var(&normative, "normative", 0, "normative value (omit if unknown)")
	cmd.Flags().BoolVar(&lower, "lower", false, "lower value is better (target only)")
	_ = cmd.MarkFlagRequired("metric")

	return cmd
}

func newLevelCommand() *cobra.Command {
	var tablesPath string

	cmd := &cobra.Command{
		Use:   "level <points>",
		Short: "Show level and progress for accumulated points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := strconv.Atoi(args[0])
			if err != nil || points < 0 {
				return fmt.Errorf("points must be a non-negative integer, got %q", args[0])
			}
			tables, err := config.LoadTables(tablesPath)
			if err != nil {
				return err
			}
			return printJSON(cmd, tables.Levels.Progress(points))
		},
	}

	cmd.Flags().StringVar(&tablesPath, "tables", os.Getenv("TABLES_PATH"), "YAML tables file")
	return cmd
}

func newHoursCommand() *cobra.Command {
	var (
		date    string
		holiday bool
	)

	cmd := &cobra.Command{
		Use:   "hours <cell>",
		Short: "Classify one schedule cell into regular, night and holiday hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := time.Parse(worktime.DateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid date %q", date)
				}
				day = parsed
			}

			var cal *worktime.Calendar
			if holiday {
				key := day.Format(worktime.DateLayout)
				cal = worktime.NewCalendar(worktime.HolidayProviderFunc(func(ctx context.Context, year int) (map[string]string, error) {
					return map[string]string{key: "holiday"}, nil
				}), logger.Discard())
			}

			raw := args[0]
			return printJSON(cmd, struct {
				Category  string                 `json:"category"`
				Ranges    []schedule.ShiftRange  `json:"ranges"`
				WorkHours float64                `json:"work_hours"`
				Breakdown worktime.HourBreakdown `json:"breakdown"`
			}{
				Category:  schedule.Categorize(raw).String(),
				Ranges:    schedule.ParseRanges(raw),
				WorkHours: schedule.WorkHours(raw),
				Breakdown: worktime.ClassifyDay(cmd.Context(), cal, raw, day),
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&holiday, "holiday", false, "treat the date as a public holiday")
	return cmd
}
