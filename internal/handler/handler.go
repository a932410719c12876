package handler

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"hr-admin-bot/internal/config"
	"hr-admin-bot/internal/models"
	"hr-admin-bot/internal/service"
	"hr-admin-bot/pkg/telegram"
)

type Handler struct {
	client            *telegram.Client
	sessionService    *service.SessionService
	rosterService     *service.RosterService
	attendanceService *service.AttendanceService
	salaryService     *service.SalaryService
	userStates        map[int64]string
	empDrafts         map[int64]*models.EmployeeDraft
	calendarMonths    map[int64]time.Time
	config            *config.BotConfig
}

func NewHandler(
	client *telegram.Client,
	sessionService *service.SessionService,
	rosterService *service.RosterService,
	attendanceService *service.AttendanceService,
	salaryService *service.SalaryService,
	cfg *config.BotConfig,
) *Handler {
	return &Handler{
		client:            client,
		sessionService:    sessionService,
		rosterService:     rosterService,
		attendanceService: attendanceService,
		salaryService:     salaryService,
		userStates:        make(map[int64]string),
		empDrafts:         make(map[int64]*models.EmployeeDraft),
		calendarMonths:    make(map[int64]time.Time),
		config:            cfg,
	}
}

// HandleUpdates обрабатывает все обновления в одной горутине —
// состояние сервисов мутируется только отсюда
func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		// Обработка callback query (для inline кнопок)
		if update.CallbackQuery != nil {
			h.handleCallbackQuery(update.CallbackQuery)
			continue
		}

		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

// handleCallbackQuery обрабатывает inline кнопки
func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Удаляем клавиатуру
	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.client.Bot.Send(editMsg)

	switch {
	// Календарь посещаемости
	case strings.HasPrefix(data, "att_"):
		h.handleAttendanceCallback(chatID, data)

	// Реестр сотрудников
	case data == "emp_prev" || data == "emp_next" || data == "emp_refresh":
		h.handleRosterNavCallback(chatID, data)

	case strings.HasPrefix(data, "confirm_delete_emp_"):
		h.handleDeleteEmployeeConfirm(chatID, strings.TrimPrefix(data, "confirm_delete_emp_"))

	case data == "cancel_delete_emp":
		msg := tgbotapi.NewMessage(chatID, "❌ Удаление сотрудника отменено.")
		h.client.Bot.Send(msg)

	// Зарплатная ведомость
	case strings.HasPrefix(data, "sal_view_"):
		h.handleSalaryViewCallback(chatID, strings.TrimPrefix(data, "sal_view_"))
	}

	// Отвечаем на callback (убираем "часики" у кнопки)
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	h.client.Bot.Send(callbackConfig)
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	logrus.Infof("[%s] %s", message.From.UserName, message.Text)

	chatID := message.Chat.ID

	// Проверяем, находится ли пользователь в диалоге (форма, имя сотрудника)
	if state, exists := h.userStates[chatID]; exists && !message.IsCommand() {
		h.handleState(message, state)
		return
	}

	// Обработка команд
	if message.IsCommand() {
		// Команда прерывает любой начатый диалог
		delete(h.userStates, chatID)
		delete(h.empDrafts, chatID)

		h.handleCommand(message)
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🤖 Я понимаю только команды. Используйте /help для списка.")
	h.client.Bot.Send(msg)
}

// handleState продолжает начатый диалог
func (h *Handler) handleState(message *tgbotapi.Message, state string) {
	switch {
	case state == "awaiting_att_name":
		h.handleAttendanceNameInput(message)

	case strings.HasPrefix(state, "addemp:") || strings.HasPrefix(state, "editemp:"):
		h.handleEmployeeFormInput(message, state)

	default:
		delete(h.userStates, message.Chat.ID)
	}
}

// sendText отправляет простое текстовое сообщение
func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	h.client.Bot.Send(msg)
}

// sendError отправляет сообщение об ошибке
func (h *Handler) sendError(chatID int64, prefix string, err error) {
	logrus.WithError(err).Error(prefix)
	h.sendText(chatID, "❌ "+prefix+": "+err.Error())
}
