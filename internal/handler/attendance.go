package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"hr-admin-bot/internal/models"
	"hr-admin-bot/internal/service"
)

// startAttendance начинает поток отметки посещаемости
func (h *Handler) startAttendance(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	name := strings.TrimSpace(args)
	if name == "" {
		h.userStates[chatID] = "awaiting_att_name"
		h.sendText(chatID, `📅 Отметка посещаемости

✏️ Отправьте имя и фамилию сотрудника:`)
		return
	}

	h.attendanceService.SetEmployeeName(name)
	h.sendText(chatID, fmt.Sprintf("👤 Сотрудник: %s", name))
	h.sendCalendar(chatID)
}

// handleAttendanceNameInput принимает имя сотрудника из диалога
func (h *Handler) handleAttendanceNameInput(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	name := strings.TrimSpace(message.Text)
	if name == "" {
		h.sendText(chatID, "❌ Имя не может быть пустым. Отправьте имя и фамилию сотрудника:")
		return
	}

	delete(h.userStates, chatID)
	h.attendanceService.SetEmployeeName(name)
	h.sendText(chatID, fmt.Sprintf("👤 Сотрудник: %s", name))
	h.sendCalendar(chatID)
}

// showCalendar показывает календарь текущего месяца
func (h *Handler) showCalendar(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if h.attendanceService.EmployeeName() == "" {
		h.sendText(chatID, "❌ Сначала укажите сотрудника: /attendance Имя Фамилия")
		return
	}

	h.sendCalendar(chatID)
}

// sendCalendar отправляет клавиатуру-календарь месяца чата
func (h *Handler) sendCalendar(chatID int64) {
	month, ok := h.calendarMonths[chatID]
	if !ok {
		now := time.Now()
		month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		h.calendarMonths[chatID] = month
	}

	text := fmt.Sprintf("📅 %s — выберите день\n👤 %s\n📌 Отмечено дат: %d",
		formatMonth(month), h.attendanceService.EmployeeName(), len(h.attendanceService.SelectedDates()))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = h.buildCalendarKeyboard(month)
	h.client.Bot.Send(msg)
}

// buildCalendarKeyboard собирает сетку месяца.
// Отмеченные дни получают эмодзи своего статуса.
func (h *Handler) buildCalendarKeyboard(month time.Time) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️", "att_nav_prev"),
		tgbotapi.NewInlineKeyboardButtonData(formatMonth(month), "att_noop"),
		tgbotapi.NewInlineKeyboardButtonData("▶️", "att_nav_next"),
	))

	weekdays := []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}
	var header []tgbotapi.InlineKeyboardButton
	for _, wd := range weekdays {
		header = append(header, tgbotapi.NewInlineKeyboardButtonData(wd, "att_noop"))
	}
	rows = append(rows, header)

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Сдвиг до понедельника
	offset := (int(first.Weekday()) + 6) % 7

	day := 1
	for day <= daysInMonth {
		var row []tgbotapi.InlineKeyboardButton
		for i := 0; i < 7; i++ {
			if (len(rows) == 2 && i < offset) || day > daysInMonth {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", "att_noop"))
				continue
			}

			date := fmt.Sprintf("%04d-%02d-%02d", month.Year(), int(month.Month()), day)
			label := strconv.Itoa(day)
			if record := h.attendanceService.RecordForDate(date); record != nil {
				label = models.StatusEmoji(record.Status) + label
			}

			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "att_day_"+date))
			day++
		}
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📤 Отправить", "att_submit"),
		tgbotapi.NewInlineKeyboardButtonData("📋 Отмеченные", "att_marked"),
		tgbotapi.NewInlineKeyboardButtonData("🗑 Очистить", "att_cancel_all"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// handleAttendanceCallback обрабатывает кнопки календаря
func (h *Handler) handleAttendanceCallback(chatID int64, data string) {
	switch {
	case data == "att_noop":
		return

	case data == "att_nav_prev":
		h.calendarMonths[chatID] = h.currentMonth(chatID).AddDate(0, -1, 0)
		h.sendCalendar(chatID)

	case data == "att_nav_next":
		h.calendarMonths[chatID] = h.currentMonth(chatID).AddDate(0, 1, 0)
		h.sendCalendar(chatID)

	case strings.HasPrefix(data, "att_day_"):
		h.handleDayPick(chatID, strings.TrimPrefix(data, "att_day_"))

	case strings.HasPrefix(data, "att_set_"):
		h.handleStatusPick(chatID, strings.TrimPrefix(data, "att_set_"))

	case strings.HasPrefix(data, "att_remove_"):
		h.handleRemoveDate(chatID, strings.TrimPrefix(data, "att_remove_"))

	case data == "att_marked":
		h.sendMarkedDates(chatID)

	case data == "att_submit":
		h.doSubmitAttendance(chatID)

	case data == "att_cancel_all":
		h.attendanceService.CancelAll()
		h.sendText(chatID, "🗑 Все отметки очищены.")
		h.sendCalendar(chatID)
	}
}

// handleDayPick выбирает день и показывает выбор статуса.
// Невыбранный прежде день сразу становится отметкой
// со статусом Present без серверного идентификатора.
func (h *Handler) handleDayPick(chatID int64, date string) {
	if h.attendanceService.EmployeeName() == "" {
		h.sendText(chatID, "❌ Сначала укажите сотрудника: /attendance Имя Фамилия")
		return
	}

	record := h.attendanceService.SelectDate(date)

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(models.AttendanceStatuses); i += 2 {
		var row []tgbotapi.InlineKeyboardButton
		for j := i; j < i+2 && j < len(models.AttendanceStatuses); j++ {
			status := models.AttendanceStatuses[j]
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				models.StatusEmoji(status)+" "+status,
				fmt.Sprintf("att_set_%d_%s", j, date),
			))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Убрать дату", "att_remove_"+date),
	))

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("📆 %s\nТекущий статус: %s %s\n\nВыберите статус:",
		record.FormatDate(), models.StatusEmoji(record.Status), record.Status))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	h.client.Bot.Send(msg)
}

// handleStatusPick отмечает статус за день на сервере
func (h *Handler) handleStatusPick(chatID int64, payload string) {
	parts := strings.SplitN(payload, "_", 2)
	if len(parts) != 2 {
		return
	}

	idx, err := strconv.Atoi(parts[0])
	if err != nil || idx < 0 || idx >= len(models.AttendanceStatuses) {
		return
	}
	status := models.AttendanceStatuses[idx]
	date := parts[1]

	// Поток посещаемости живет и без сессии — с запасным subadmin id
	subadminID := h.sessionService.SubadminIDOrDefault(chatID, h.config.DefaultSubadminID)

	outcome, err := h.attendanceService.MarkStatus(subadminID, date, status)
	if err != nil {
		h.sendError(chatID, "Ошибка отметки посещаемости", err)
		return
	}

	display := (&models.AttendanceRecord{Date: outcome.Date}).FormatDate()

	switch outcome.Kind {
	case service.MarkCreated:
		h.sendText(chatID, fmt.Sprintf("✅ Новая отметка «%s» за %s", outcome.Status, display))
	case service.MarkAlreadyMarked:
		// Информационное, а не успешное уведомление
		h.sendText(chatID, fmt.Sprintf("ℹ️ Посещаемость за %s уже отмечена как «%s»", display, outcome.Status))
	case service.MarkUpdated:
		h.sendText(chatID, fmt.Sprintf("✅ Отметка за %s изменена с «%s» на «%s»", display, outcome.PreviousStatus, outcome.Status))
	}

	h.sendCalendar(chatID)
}

// handleRemoveDate убирает дату локально (на сервере запись остается)
func (h *Handler) handleRemoveDate(chatID int64, date string) {
	h.attendanceService.RemoveDate(date)
	h.sendText(chatID, fmt.Sprintf("🗑 Дата %s убрана из отметок (запись на сервере не удаляется).",
		(&models.AttendanceRecord{Date: date}).FormatDate()))
	h.sendCalendar(chatID)
}

// showMarkedDates показывает отмеченные даты
func (h *Handler) showMarkedDates(message *tgbotapi.Message) {
	h.sendMarkedDates(message.Chat.ID)
}

func (h *Handler) sendMarkedDates(chatID int64) {
	records := h.attendanceService.Records()
	if len(records) == 0 {
		h.sendText(chatID, "📭 Нет отмеченных дат.")
		return
	}

	var lines []string
	lines = append(lines, "📋 Отмеченные даты:")
	lines = append(lines, "")
	for _, r := range records {
		state := "⏳ новая"
		if r.IsPersisted() {
			state = fmt.Sprintf("💾 id %d", r.ID)
		}
		lines = append(lines, fmt.Sprintf("%s %s — %s (%s)",
			models.StatusEmoji(r.Status), r.FormatDate(), r.Status, state))
	}

	h.sendText(chatID, strings.Join(lines, "\n"))
}

// submitAttendance отправляет все отметки (команда)
func (h *Handler) submitAttendance(message *tgbotapi.Message) {
	h.doSubmitAttendance(message.Chat.ID)
}

// cancelAttendance очищает все отметки (команда)
func (h *Handler) cancelAttendance(message *tgbotapi.Message) {
	h.attendanceService.CancelAll()
	h.sendText(message.Chat.ID, "🗑 Все отметки очищены.")
}

// doSubmitAttendance выполняет пакетную отправку и рассылает
// уведомления по каждому пакету независимо от исхода соседнего
func (h *Handler) doSubmitAttendance(chatID int64) {
	subadminID := h.sessionService.SubadminIDOrDefault(chatID, h.config.DefaultSubadminID)

	result, err := h.attendanceService.Submit(subadminID)
	if err != nil {
		h.sendText(chatID, "❌ "+err.Error())
		return
	}

	for _, batch := range result.Batches {
		if batch.Err != nil {
			h.sendText(chatID, "❌ Ошибка пакетной отправки: "+batch.Err.Error())
			continue
		}

		for _, rec := range batch.Records {
			if batch.Type == service.BatchAdd {
				h.sendText(chatID, fmt.Sprintf("✅ Добавлена посещаемость за %s: %s", rec.FormatDate(), rec.Status))
			} else {
				h.sendText(chatID, fmt.Sprintf("✅ Обновлена посещаемость за %s: %s", rec.FormatDate(), rec.Status))
			}
		}
	}

	logrus.WithField("dates", result.SubmittedDates).Info("Attendance submitted")
	h.sendText(chatID, fmt.Sprintf("🎉 Отправка завершена!\n📅 Дат отправлено: %d\n\nФорма очищена, можно отмечать следующего сотрудника.", result.SubmittedDates))
}

// currentMonth возвращает месяц календаря чата (по умолчанию текущий)
func (h *Handler) currentMonth(chatID int64) time.Time {
	if month, ok := h.calendarMonths[chatID]; ok {
		return month
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// formatMonth форматирует месяц для заголовка календаря
func formatMonth(t time.Time) string {
	months := []string{
		"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	}
	return fmt.Sprintf("%s %d", months[int(t.Month())-1], t.Year())
}
