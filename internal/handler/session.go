package handler

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// login сохраняет сессию чата
func (h *Handler) login(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if strings.TrimSpace(args) == "" {
		h.sendText(chatID, `🔐 Вход

Формат команды:
/login ID
/login ID subAdminID

Примеры:
/login 7 — войти как subadmin 7
/login 7 2 — пользователь 7, запросы от subadmin 2`)
		return
	}

	parts := strings.Fields(args)

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID == 0 {
		h.sendText(chatID, "❌ Неверный ID пользователя. Используйте число, например: /login 7")
		return
	}

	var subAdminID int64
	if len(parts) > 1 {
		subAdminID, err = strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			h.sendText(chatID, "❌ Неверный subadmin ID. Используйте число, например: /login 7 2")
			return
		}
	}

	session, err := h.sessionService.Login(chatID, userID, subAdminID)
	if err != nil {
		h.sendError(chatID, "Ошибка входа", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"chat_id": chatID,
		"user_id": userID,
	}).Info("Session stored")

	h.sendText(chatID, "✅ Вход выполнен!\n\n"+h.sessionService.FormatSessionInfo(session))
}

// whoami показывает текущую сессию
func (h *Handler) whoami(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	session, err := h.sessionService.Current(chatID)
	if err != nil {
		h.sendText(chatID, "❌ Вы не вошли. Используйте /login чтобы войти.")
		return
	}

	h.sendText(chatID, h.sessionService.FormatSessionInfo(session))
}

// logout удаляет сессию чата
func (h *Handler) logout(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if err := h.sessionService.Logout(chatID); err != nil {
		h.sendText(chatID, "❌ Вы не вошли.")
		return
	}

	h.sendText(chatID, "✅ Выход выполнен.")
}
