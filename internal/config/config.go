package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultSubadminID — запасной идентификатор subadmin для потока
// посещаемости, когда в сессии нет subAdminId.
// Поток реестра сотрудников, наоборот, без сессии не работает.
const DefaultSubadminID = 2

type BotConfig struct {
	TelegramToken     string
	HRMAPIBaseURL     string
	DatabaseURL       string
	DefaultSubadminID int64
	HTTPTimeoutSec    int64
}

var instance *BotConfig
var once sync.Once

func GetBotConfig() *BotConfig {
	once.Do(func() {
		instance = &BotConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Fatalf("error loading env variables: %s", err.Error())
		}

		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
		if instance.TelegramToken == "" {
			logrus.Fatal("could not get bot token")
		}

		instance.HRMAPIBaseURL = getEnv("HRM_API_URL", "")
		if instance.HRMAPIBaseURL == "" {
			logrus.Fatal("could not get hrm api url")
		}

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.DefaultSubadminID = getEnvAsInt("DEFAULT_SUBADMIN_ID", DefaultSubadminID)
		instance.HTTPTimeoutSec = getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30)
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
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
