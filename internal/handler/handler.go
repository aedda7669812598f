package handler

import (
	"context"
	"time"

	"shift-payroll-bot/internal/service"
	"shift-payroll-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const commandTimeout = 30 * time.Second

type Handler struct {
	client         *telegram.Client
	salaryService  *service.SalaryService
	holidayService *service.HolidayService
	logger         *logrus.Logger
	now            func() time.Time
}

func NewHandler(
	client *telegram.Client,
	salaryService *service.SalaryService,
	holidayService *service.HolidayService,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		client:         client,
		salaryService:  salaryService,
		holidayService: holidayService,
		logger:         logger,
		now:            time.Now,
	}
}

// HandleUpdates обрабатывает обновления до закрытия канала или отмены контекста
func (h *Handler) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userName := ""
	if message.From != nil {
		userName = message.From.UserName
	}
	h.logger.WithFields(logrus.Fields{
		"user":    userName,
		"chat_id": message.Chat.ID,
	}).Info(message.Text)

	if !message.IsCommand() {
		h.reply(message, "Используйте /help для списка команд.")
		return
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.WithFields(logrus.Fields{
				"chat_id": message.Chat.ID,
				"panic":   r,
			}).Error("Command panicked")
			h.reply(message, "Внутренняя ошибка, попробуйте позже.")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	h.handleCommand(ctx, message)
}

func (h *Handler) reply(message *tgbotapi.Message, text string) {
	if err := h.client.SendText(message.Chat.ID, text); err != nil {
		h.logger.WithError(err).WithField("chat_id", message.Chat.ID).Error("Failed to send message")
	}
}
