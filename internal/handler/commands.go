package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shift-payroll-bot/internal/kpi"
	"shift-payroll-bot/internal/payroll"
	"shift-payroll-bot/internal/repository"
	"shift-payroll-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Команды:
/register ФИО - привязать чат к сотруднику
/salary [ММ.ГГГГ] [csi=10 flr=5 ...] [marketplace=1500] - расчет зарплаты
/kpi метрика текущее норматив [lower] - ступени премии по KPI
/level очки - уровень и прогресс
/holidays [ММ.ГГГГ] - праздники месяца
/help - это сообщение

Категории премий: csi, flr, gok, target, discipline, testing, gratitude, mentoring, manual_adjustment`

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	args := message.CommandArguments()

	switch message.Command() {
	case "start", "help":
		h.reply(message, helpText)
	case "register":
		h.register(message, args)
	case "salary":
		h.salary(ctx, message, args)
	case "kpi":
		h.kpi(message, args)
	case "level":
		h.level(message, args)
	case "holidays":
		h.holidays(ctx, message, args)
	default:
		h.reply(message, "Неизвестная команда. Используйте /help для списка команд.")
	}
}

func (h *Handler) register(message *tgbotapi.Message, args string) {
	fullName := strings.TrimSpace(args)
	if fullName == "" {
		h.reply(message, "Использование: /register ФИО")
		return
	}

	employee, err := h.salaryService.Register(message.Chat.ID, fullName)
	if err != nil {
		h.replyError(message, err)
		return
	}

	h.reply(message, fmt.Sprintf("Чат привязан: %s, %s, %s", employee.FullName, employee.Division, employee.Position))
}

func (h *Handler) salary(ctx context.Context, message *tgbotapi.Message, args string) {
	req, err := parseSalaryArgs(args, h.now())
	if err != nil {
		h.reply(message, err.Error())
		return
	}

	result, err := h.salaryService.CalculateForChat(ctx, message.Chat.ID, req)
	if err != nil {
		h.replyError(message, err)
		return
	}

	h.reply(message, formatSalary(result))
}

func (h *Handler) kpi(message *tgbotapi.Message, args string) {
	req, err := parseKPIArgs(args)
	if err != nil {
		h.reply(message, err.Error())
		return
	}

	employee, err := h.salaryService.EmployeeByChat(message.Chat.ID)
	if err != nil {
		h.replyError(message, err)
		return
	}

	eval, err := h.salaryService.EvaluateKPI(*employee, req)
	if err != nil {
		h.replyError(message, err)
		return
	}

	h.reply(message, formatEvaluation(employee, eval))
}

func (h *Handler) level(message *tgbotapi.Message, args string) {
	points, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || points < 0 {
		h.reply(message, "Использование: /level очки (целое число >= 0)")
		return
	}

	h.reply(message, formatProgress(points, h.salaryService.Level(points)))
}

func (h *Handler) holidays(ctx context.Context, message *tgbotapi.Message, args string) {
	year, month, err := parsePeriod(args, h.now())
	if err != nil {
		h.reply(message, err.Error())
		return
	}

	// загружаем год, если его еще нет в БД
	if _, err := h.holidayService.Holidays(ctx, year); err != nil {
		h.replyError(message, err)
		return
	}

	days, err := h.holidayService.ForMonth(ctx, year, month)
	if err != nil {
		h.replyError(message, err)
		return
	}
	if len(days) == 0 {
		h.reply(message, fmt.Sprintf("%02d.%d: праздников нет", int(month), year))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%02d.%d:", int(month), year)
	for _, d := range days {
		fmt.Fprintf(&b, "\n%s %s", d.Date, d.Name)
	}
	h.reply(message, b.String())
}

// replyError отвечает понятным текстом для известных ошибок
func (h *Handler) replyError(message *tgbotapi.Message, err error) {
	var rateErr *payroll.MissingRateError

	switch {
	case errors.Is(err, service.ErrNotRegistered):
		h.reply(message, "Чат не привязан к сотруднику. Используйте /register ФИО")
	case errors.Is(err, repository.ErrEmployeeNotFound):
		h.reply(message, "Сотрудник не найден")
	case errors.As(err, &rateErr):
		h.reply(message, fmt.Sprintf("Нет ставки для %s / %s", rateErr.Division, rateErr.Position))
	case errors.Is(err, payroll.ErrInvalidPremium):
		h.reply(message, "Неверный процент премии: "+err.Error())
	case errors.Is(err, payroll.ErrScheduleUnavailable):
		h.reply(message, "График недоступен: "+err.Error())
	case errors.Is(err, kpi.ErrNoTable):
		h.reply(message, "Для этой метрики нет таблицы премий")
	default:
		h.logger.WithError(err).WithField("chat_id", message.Chat.ID).Error("Command failed")
		h.reply(message, "Ошибка: "+err.Error())
	}
}
