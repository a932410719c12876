package handler

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showSalarySheet загружает и показывает зарплатную ведомость.
// Ведомость читается заново при каждом вызове, мутаций нет.
func (h *Handler) showSalarySheet(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	session, err := h.sessionService.Current(chatID)
	if err != nil {
		h.sendText(chatID, "❌ Сессия не найдена. Войдите командой /login.")
		return
	}

	if err := h.salaryService.Load(session.EffectiveSubAdminID()); err != nil {
		h.sendError(chatID, "Ошибка загрузки ведомости", err)
		return
	}

	h.salaryService.SetSearchTerm(strings.TrimSpace(args))

	msg := tgbotapi.NewMessage(chatID, h.salaryService.FormatSalarySheet())

	// Кнопки деталей по каждому сотруднику из отфильтрованного набора
	filtered := h.salaryService.FilteredEmployees()
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(filtered) && i < 10; i++ {
		e := filtered[i]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("💳 %s", e.FullName()),
				fmt.Sprintf("sal_view_%d", e.EmpID),
			),
		))
	}
	if len(rows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	h.client.Bot.Send(msg)
}

// showSalaryDetails показывает банковские реквизиты сотрудника
func (h *Handler) showSalaryDetails(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	empID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.sendText(chatID, "❌ Укажите ID сотрудника: /salaryemp 15")
		return
	}

	h.sendSalaryDetails(chatID, empID)
}

// handleSalaryViewCallback показывает реквизиты по кнопке
func (h *Handler) handleSalaryViewCallback(chatID int64, idStr string) {
	empID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return
	}

	h.sendSalaryDetails(chatID, empID)
}

func (h *Handler) sendSalaryDetails(chatID, empID int64) {
	employee := h.salaryService.FindByID(empID)
	if employee == nil {
		h.sendText(chatID, "❌ Сотрудник не найден. Откройте ведомость заново: /salary")
		return
	}

	h.sendText(chatID, h.salaryService.FormatSalaryDetails(employee))
}
