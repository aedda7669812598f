package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shift-payroll-bot/internal/app"
	"shift-payroll-bot/internal/config"
	"shift-payroll-bot/internal/handler"
	"shift-payroll-bot/internal/logger"
	"shift-payroll-bot/internal/scheduler"
	"shift-payroll-bot/pkg/telegram"
)

func main() {
	cfg := config.GetBotConfig()
	log := logger.New(cfg.LogLevel, cfg.Environment)
	log.Info("Config initialized...")

	application, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}

	// Прогреваем календарь на текущий год
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 30*time.Second)
	application.Calendar.Warm(warmCtx, time.Now().Year())
	cancelWarm()

	holidayScheduler := scheduler.NewHolidayScheduler(application.Holidays, application.Calendar, log, cfg.HolidaysPrefetchCron)
	if err := holidayScheduler.Start(); err != nil {
		log.WithError(err).Fatal("Failed to start holiday scheduler")
	}

	// Создаем клиент Telegram
	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Telegram client")
	}

	log.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(client, application.Salary, application.Holidays, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		botHandler.HandleUpdates(ctx, client.Updates())
		close(done)
	}()

	log.Info("Bot started. Press Ctrl+C to stop.")

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	cancel()
	client.Stop()
	<-done
	holidayScheduler.Stop()

	// Закрываем соединение с БД
	if err := application.Close(); err != nil {
		log.WithError(err).Error("Error closing database")
	}

	log.Info("Bot stopped gracefully")
}
