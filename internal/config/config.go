package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken string
	TelegramDebug bool
	DatabaseURL   string

	TablesPath string

	HolidaysAPIURL       string
	HolidaysCountry      string
	HolidaysFileDir      string
	HolidaysPrefetchCron string
	HolidaysTimeout      time.Duration

	LogLevel    string
	Environment string
}

var instance *BotConfig
var once sync.Once

// GetBotConfig - конфиг бота; при ошибке процесс завершается
func GetBotConfig() *BotConfig {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}

		if cfg.TelegramToken == "" {
			logrus.Fatal("could not get bot token")
		}

		instance = cfg
	})

	return instance
}

// Load читает .env (если есть) и переменные окружения.
// Токен бота не обязателен: CLI работает без него.
func Load() (*BotConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading env variables: %w", err)
	}

	cfg := &BotConfig{
		TelegramToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramDebug:        getEnvAsBool("TELEGRAM_DEBUG", false),
		DatabaseURL:          getEnv("DATABASE_URL", "payroll.db"),
		TablesPath:           getEnv("TABLES_PATH", ""),
		HolidaysAPIURL:       getEnv("HOLIDAYS_API_URL", ""),
		HolidaysCountry:      getEnv("HOLIDAYS_COUNTRY", "RU"),
		HolidaysFileDir:      getEnv("HOLIDAYS_FILE_DIR", ""),
		HolidaysPrefetchCron: getEnv("HOLIDAYS_PREFETCH_CRON", "0 3 * * *"),
		HolidaysTimeout:      time.Duration(getEnvAsInt("HOLIDAYS_TIMEOUT_SECONDS", 10)) * time.Second,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Environment:          getEnv("ENVIRONMENT", "development"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("could not get db url")
	}

	return cfg, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
