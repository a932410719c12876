package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start", "help":
		h.sendHelpMessage(message)

	// Сессия
	case "login":
		h.login(message, args)
	case "logout":
		h.logout(message)
	case "whoami":
		h.whoami(message)

	// Реестр сотрудников
	case "employees", "emps":
		h.showEmployees(message)
	case "search":
		h.searchEmployees(message, args)
	case "resetsearch":
		h.resetSearch(message)
	case "emp":
		h.showEmployeeDetails(message, args)
	case "addemp":
		h.startAddEmployee(message)
	case "editemp":
		h.startEditEmployee(message, args)
	case "delemp":
		h.deleteEmployee(message, args)

	// Посещаемость
	case "attendance", "att":
		h.startAttendance(message, args)
	case "calendar":
		h.showCalendar(message)
	case "marked":
		h.showMarkedDates(message)
	case "attsubmit":
		h.submitAttendance(message)
	case "attcancel":
		h.cancelAttendance(message)

	// Зарплатная ведомость
	case "salary":
		h.showSalarySheet(message, args)
	case "salaryemp":
		h.showSalaryDetails(message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
	h.client.Bot.Send(msg)
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	text := `📋 Доступные команды:

🔐 Сессия:
/login [ID] - Войти как subadmin
/login [ID subAdminID] - Войти с отдельным subadmin ID
/whoami - Показать текущую сессию
/logout - Выйти

👥 Сотрудники:
/employees - Список сотрудников (страницами по 5)
/search [текст] - Поиск по имени, фамилии или email
/resetsearch - Сбросить поиск
/emp [ID] - Карточка сотрудника
/addemp - Добавить сотрудника (анкета по шагам)
/editemp [ID] - Изменить сотрудника
/delemp [ID] - Удалить сотрудника

📅 Посещаемость:
/attendance [имя фамилия] - Начать отметку посещаемости
/calendar - Показать календарь
/marked - Отмеченные даты
/attsubmit - Отправить все отметки
/attcancel - Очистить отметки

💰 Зарплата:
/salary [поиск] - Зарплатная ведомость
/salaryemp [ID] - Банковские реквизиты сотрудника

💡 Как пользоваться:
1. Войдите командой /login с вашим ID
2. Управляйте сотрудниками через /employees и /addemp
3. Отмечайте посещаемость: /attendance Имя Фамилия,
   затем выбирайте дни в календаре и статусы
4. Отправьте отметки командой /attsubmit
5. Смотрите ведомость командой /salary

⚠️ Примечания:
• После каждого изменения список перечитывается с сервера
• Удаление даты из отметок не удаляет запись на сервере
• Отметка без входа использует запасной subadmin ID`

	msg := tgbotapi.NewMessage(chatID, text)
	h.client.Bot.Send(msg)
}
