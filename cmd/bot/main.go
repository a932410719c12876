package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hr-admin-bot/internal/config"
	"hr-admin-bot/internal/handler"
	"hr-admin-bot/internal/repository"
	"hr-admin-bot/internal/service"
	"hr-admin-bot/pkg/hrmapi"
	"hr-admin-bot/pkg/telegram"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.Info("Config initialized...")

	// Локальное хранилище сессий (аналог localStorage браузера)
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	sessionRepo, err := repository.NewSessionRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create session repository")
	}

	// Клиент удаленного HRM API — вся бизнес-логика живет там
	apiClient := hrmapi.NewClient(cfg.HRMAPIBaseURL, time.Duration(cfg.HTTPTimeoutSec)*time.Second)

	sessionService := service.NewSessionService(&sessionRepo)
	rosterService := service.NewRosterService(apiClient)
	attendanceService := service.NewAttendanceService(apiClient)
	salaryService := service.NewSalaryService(apiClient)

	// Создаем клиент Telegram
	client, err := telegram.NewClient(cfg.TelegramToken)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client:", err)
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(
		client,
		sessionService,
		rosterService,
		attendanceService,
		salaryService,
		cfg,
	)

	// Настраиваем канал обновлений
	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Запускаем обработку сообщений
	go botHandler.HandleUpdates(updates)

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	// Закрываем соединение с БД
	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}
