package handler

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/payroll"
	"shift-payroll-bot/internal/service"

	"github.com/shopspring/decimal"
)

const marketplaceKey = "marketplace"

// parsePeriod разбирает "MM.YYYY" или "MM"; пустая строка - текущий месяц
func parsePeriod(s string, now time.Time) (int, time.Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Year(), now.Month(), nil
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("неверный период %q, ожидается ММ.ГГГГ", s)
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("неверный месяц %q", parts[0])
	}

	year := now.Year()
	if len(parts) == 2 {
		year, err = strconv.Atoi(parts[1])
		if err != nil || year < 2000 || year > 2100 {
			return 0, 0, fmt.Errorf("неверный год %q", parts[1])
		}
	}

	return year, time.Month(month), nil
}

// parseSalaryArgs: [ММ.ГГГГ] [категория=процент ...] [marketplace=сумма]
func parseSalaryArgs(args string, now time.Time) (service.SalaryRequest, error) {
	req := service.SalaryRequest{Premiums: payroll.PremiumInputs{}}
	period := ""

	for _, token := range strings.Fields(args) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			if period != "" {
				return req, fmt.Errorf("лишний аргумент %q", token)
			}
			period = token
			continue
		}

		key = strings.ToLower(key)
		if key == marketplaceKey {
			amount, err := decimal.NewFromString(strings.ReplaceAll(value, ",", "."))
			if err != nil {
				return req, fmt.Errorf("неверная сумма маркетплейса %q", value)
			}
			req.Marketplace = &amount
			continue
		}

		category, err := kpi.ParseCategory(key)
		if err != nil {
			return req, err
		}
		percent, err := parseNumber(value)
		if err != nil {
			return req, fmt.Errorf("неверный процент %s=%q", key, value)
		}
		req.Premiums[category] = percent
	}

	year, month, err := parsePeriod(period, now)
	if err != nil {
		return req, err
	}
	req.Year, req.Month = year, month

	return req, nil
}

// parseKPIArgs: метрика текущее норматив [lower]; норматив "-" - неизвестен
func parseKPIArgs(args string) (service.KPIRequest, error) {
	fields := strings.Fields(args)
	if len(fields) < 3 || len(fields) > 4 {
		return service.KPIRequest{}, errors.New("использование: /kpi метрика текущее норматив [lower]")
	}

	metric, err := kpi.ParseCategory(strings.ToLower(fields[0]))
	if err != nil {
		return service.KPIRequest{}, err
	}

	current, err := parseNumber(fields[1])
	if err != nil {
		return service.KPIRequest{}, fmt.Errorf("неверное текущее значение %q", fields[1])
	}

	normative := kpi.Unknown()
	if fields[2] != kpi.NotApplicableMark && fields[2] != "-" {
		v, err := parseNumber(fields[2])
		if err != nil {
			return service.KPIRequest{}, fmt.Errorf("неверный норматив %q", fields[2])
		}
		normative = kpi.Known(v)
	}

	direction := kpi.HigherIsBetter
	if len(fields) == 4 {
		switch strings.ToLower(fields[3]) {
		case "lower", "меньше":
			direction = kpi.LowerIsBetter
		case "higher", "больше":
		default:
			return service.KPIRequest{}, fmt.Errorf("неверное направление %q", fields[3])
		}
	}

	return service.KPIRequest{
		Metric:    metric,
		Direction: direction,
		Current:   current,
		Normative: normative,
	}, nil
}

// parseNumber принимает только конечные числа, запятая допускается как разделитель
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("недопустимое число %q", s)
	}
	return v, nil
}
