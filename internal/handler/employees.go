package handler

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"hr-admin-bot/internal/models"
)

// empFormField — один шаг анкеты сотрудника
type empFormField struct {
	label  string
	prompt string
	set    func(d *models.EmployeeDraft, v string)
}

// Поля анкеты в порядке опроса. Значения не валидируются —
// что прислали, то и уходит на сервер.
var empFormFields = []empFormField{
	{"Имя", "✏️ Имя сотрудника:", func(d *models.EmployeeDraft, v string) { d.FirstName = v }},
	{"Фамилия", "✏️ Фамилия:", func(d *models.EmployeeDraft, v string) { d.LastName = v }},
	{"Email", "📧 Email:", func(d *models.EmployeeDraft, v string) { d.Email = v }},
	{"Телефон", "📱 Телефон (10 цифр):", func(d *models.EmployeeDraft, v string) { d.Phone = v }},
	{"Aadhar", "🪪 Номер Aadhar (12 цифр):", func(d *models.EmployeeDraft, v string) { d.AadharNo = v }},
	{"PAN", "🪪 Номер PAN (например ABCDE1234F):", func(d *models.EmployeeDraft, v string) { d.PanCard = v }},
	{"Образование", "🎓 Образование (hsc / graduate / post-graduate):", func(d *models.EmployeeDraft, v string) { d.Education = v }},
	{"Группа крови", "🩸 Группа крови (a+ / b+ / o+ / ab+):", func(d *models.EmployeeDraft, v string) { d.BloodGroup = v }},
	{"Должность", "💼 Должность (HR / MANAGER / SUPERVISOR / ...):", func(d *models.EmployeeDraft, v string) { d.JobRole = v }},
	{"Пол", "⚧ Пол (male / female / other):", func(d *models.EmployeeDraft, v string) { d.Gender = v }},
	{"Адрес", "🏠 Адрес:", func(d *models.EmployeeDraft, v string) { d.Address = v }},
	{"Дата рождения", "🎂 Дата рождения (ГГГГ-ММ-ДД):", func(d *models.EmployeeDraft, v string) { d.BirthDate = v }},
	{"Дата приема", "📅 Дата приема (ГГГГ-ММ-ДД):", func(d *models.EmployeeDraft, v string) { d.JoiningDate = v }},
	{"Статус", "🚦 Статус (Active / Inactive):", func(d *models.EmployeeDraft, v string) { d.Status = v }},
	{"Банк", "🏦 Название банка:", func(d *models.EmployeeDraft, v string) { d.BankName = v }},
	{"Счет", "💳 Номер счета:", func(d *models.EmployeeDraft, v string) { d.BankAccountNo = v }},
	{"IFSC", "🔢 Код IFSC (например ABCD0EF1234):", func(d *models.EmployeeDraft, v string) { d.BankIfscCode = v }},
	{"Отделение", "🏢 Отделение банка:", func(d *models.EmployeeDraft, v string) { d.BranchName = v }},
	{"Зарплата", "💰 Зарплата (число):", func(d *models.EmployeeDraft, v string) { d.Salary = v }},
}

// rosterKeyboard — навигация по страницам реестра
func rosterKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "emp_prev"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", "emp_refresh"),
			tgbotapi.NewInlineKeyboardButtonData("Вперед ➡️", "emp_next"),
		),
	)
}

// showEmployees перечитывает и показывает страницу реестра
func (h *Handler) showEmployees(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	session, err := h.sessionService.Current(chatID)
	if err != nil {
		h.sendText(chatID, "❌ Сессия не найдена. Войдите командой /login.")
		return
	}

	if err := h.rosterService.Refresh(session.EffectiveSubAdminID()); err != nil {
		// Прежний список остается на месте
		h.sendError(chatID, "Ошибка загрузки", err)
		return
	}

	h.sendRosterPage(chatID)
}

// sendRosterPage показывает текущую страницу без перечитывания
func (h *Handler) sendRosterPage(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, h.rosterService.FormatEmployeePage())
	if h.rosterService.TotalPages() > 1 {
		msg.ReplyMarkup = rosterKeyboard()
	}
	h.client.Bot.Send(msg)
}

// handleRosterNavCallback листает страницы реестра
func (h *Handler) handleRosterNavCallback(chatID int64, data string) {
	switch data {
	case "emp_prev":
		h.rosterService.PrevPage()
	case "emp_next":
		h.rosterService.NextPage()
	case "emp_refresh":
		session, err := h.sessionService.Current(chatID)
		if err != nil {
			h.sendText(chatID, "❌ Сессия не найдена. Войдите командой /login.")
			return
		}
		if err := h.rosterService.Refresh(session.EffectiveSubAdminID()); err != nil {
			h.sendError(chatID, "Ошибка загрузки", err)
			return
		}
	}

	h.sendRosterPage(chatID)
}

// searchEmployees задает строку поиска по реестру.
// Номер страницы нарочно не сбрасывается — как в исходной форме.
func (h *Handler) searchEmployees(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	term := strings.TrimSpace(args)
	if term == "" {
		h.sendText(chatID, "🔍 Укажите текст поиска: /search иван")
		return
	}

	h.rosterService.SetSearchTerm(term)
	h.sendRosterPage(chatID)
}

// resetSearch сбрасывает поиск
func (h *Handler) resetSearch(message *tgbotapi.Message) {
	h.rosterService.SetSearchTerm("")
	h.sendRosterPage(message.Chat.ID)
}

// showEmployeeDetails показывает карточку сотрудника
func (h *Handler) showEmployeeDetails(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	empID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.sendText(chatID, "❌ Укажите ID сотрудника: /emp 15")
		return
	}

	employee := h.rosterService.FindByID(empID)
	if employee == nil {
		h.sendText(chatID, "❌ Сотрудник не найден. Обновите список командой /employees.")
		return
	}

	h.sendText(chatID, h.rosterService.FormatEmployeeDetails(employee))
}

// startAddEmployee начинает анкету нового сотрудника
func (h *Handler) startAddEmployee(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, err := h.sessionService.Current(chatID); err != nil {
		h.sendText(chatID, "❌ Сессия истекла. Войдите снова командой /login.")
		return
	}

	h.empDrafts[chatID] = &models.EmployeeDraft{}
	h.userStates[chatID] = "addemp:0"

	h.sendText(chatID, fmt.Sprintf(`👤 Новый сотрудник

Анкета из %d шагов. Отправьте "-" чтобы оставить поле пустым.

Шаг 1 из %d
%s`, len(empFormFields), len(empFormFields), empFormFields[0].prompt))
}

// startEditEmployee начинает анкету обновления сотрудника
func (h *Handler) startEditEmployee(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if _, err := h.sessionService.Current(chatID); err != nil {
		h.sendText(chatID, "❌ Сессия истекла. Войдите снова командой /login.")
		return
	}

	empID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.sendText(chatID, "❌ Укажите ID сотрудника: /editemp 15")
		return
	}

	employee := h.rosterService.FindByID(empID)
	if employee == nil {
		h.sendText(chatID, "❌ Сотрудник не найден. Обновите список командой /employees.")
		return
	}

	// Анкета заполняется текущими значениями, "-" оставляет значение
	h.empDrafts[chatID] = models.NewDraftFromEmployee(employee)
	h.userStates[chatID] = fmt.Sprintf("editemp:%d:0", empID)

	h.sendText(chatID, fmt.Sprintf(`✏️ Обновление сотрудника #%d (%s)

Отправьте "-" чтобы оставить текущее значение.

Шаг 1 из %d
%s
Сейчас: %s`, empID, employee.FullName(), len(empFormFields), empFormFields[0].prompt, orDash(employee.FirstName)))
}

// handleEmployeeFormInput обрабатывает очередной шаг анкеты
func (h *Handler) handleEmployeeFormInput(message *tgbotapi.Message, state string) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	draft, ok := h.empDrafts[chatID]
	if !ok {
		delete(h.userStates, chatID)
		h.sendText(chatID, "❌ Анкета потеряна. Начните заново: /addemp")
		return
	}

	editing := strings.HasPrefix(state, "editemp:")
	var empID int64
	var idx int

	if editing {
		parts := strings.Split(state, ":")
		empID, _ = strconv.ParseInt(parts[1], 10, 64)
		idx, _ = strconv.Atoi(parts[2])
	} else {
		idx, _ = strconv.Atoi(strings.TrimPrefix(state, "addemp:"))
	}

	if idx < 0 || idx >= len(empFormFields) {
		delete(h.userStates, chatID)
		delete(h.empDrafts, chatID)
		return
	}

	// "-" пропускает шаг: пустое поле при создании,
	// прежнее значение при обновлении
	if text != "-" {
		empFormFields[idx].set(draft, text)
	} else if !editing {
		empFormFields[idx].set(draft, "")
	}

	idx++
	if idx < len(empFormFields) {
		if editing {
			h.userStates[chatID] = fmt.Sprintf("editemp:%d:%d", empID, idx)
		} else {
			h.userStates[chatID] = fmt.Sprintf("addemp:%d", idx)
		}

		h.sendText(chatID, fmt.Sprintf("Шаг %d из %d\n%s", idx+1, len(empFormFields), empFormFields[idx].prompt))
		return
	}

	// Анкета заполнена — отправляем
	delete(h.userStates, chatID)
	delete(h.empDrafts, chatID)

	session, err := h.sessionService.Current(chatID)
	if err != nil {
		h.sendText(chatID, "❌ Сессия истекла. Войдите снова командой /login.")
		return
	}

	if editing {
		if err := h.rosterService.Update(session.EffectiveSubAdminID(), empID, draft); err != nil {
			h.sendError(chatID, "Ошибка обновления сотрудника", err)
			return
		}

		logrus.WithField("emp_id", empID).Info("Employee updated")
		h.sendText(chatID, "✅ Сотрудник успешно обновлен!")
	} else {
		if err := h.rosterService.Create(session.EffectiveSubAdminID(), draft); err != nil {
			h.sendError(chatID, "Ошибка создания сотрудника", err)
			return
		}

		logrus.Info("Employee registered")
		h.sendText(chatID, "✅ Сотрудник успешно зарегистрирован!")
	}

	h.sendRosterPage(chatID)
}

// deleteEmployee запрашивает подтверждение удаления
func (h *Handler) deleteEmployee(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	empID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.sendText(chatID, "❌ Укажите ID сотрудника: /delemp 15")
		return
	}

	employee := h.rosterService.FindByID(empID)
	if employee == nil {
		h.sendText(chatID, "❌ Сотрудник не найден.")
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", fmt.Sprintf("confirm_delete_emp_%d", empID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет, отменить", "cancel_delete_emp"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⚠️ Удалить сотрудника #%d (%s)?\nЭто действие нельзя отменить.", empID, employee.FullName()))
	msg.ReplyMarkup = keyboard
	h.client.Bot.Send(msg)
}

// handleDeleteEmployeeConfirm выполняет подтвержденное удаление
func (h *Handler) handleDeleteEmployeeConfirm(chatID int64, idStr string) {
	empID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.sendText(chatID, "❌ Неверный идентификатор.")
		return
	}

	session, err := h.sessionService.Current(chatID)
	if err != nil {
		h.sendText(chatID, "❌ Сессия не найдена. Войдите командой /login.")
		return
	}

	if err := h.rosterService.Delete(session.EffectiveSubAdminID(), empID); err != nil {
		h.sendError(chatID, "Ошибка удаления сотрудника", err)
		return
	}

	logrus.WithField("emp_id", empID).Info("Employee deleted")
	h.sendText(chatID, "✅ Сотрудник удален.")
	h.sendRosterPage(chatID)
}

// orDash подставляет "-" вместо пустой строки
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
