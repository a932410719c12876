package models

import "time"

// Статусы посещаемости (закрытый набор, значения фиксированы API)
const (
	AttendancePresent   = "Present"
	AttendanceAbsent    = "Absent"
	AttendanceHalfDay   = "Half-Day"
	AttendancePaidLeave = "Paid Leave"
	AttendanceWeekOff   = "Week Off"
	AttendanceHoliday   = "Holiday"
)

// AttendanceStatuses — порядок отображения статусов в клавиатуре
var AttendanceStatuses = []string{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceHalfDay,
	AttendancePaidLeave,
	AttendanceWeekOff,
	AttendanceHoliday,
}

// AttendanceRecord — отметка посещаемости за календарный день.
// ID == 0 означает, что запись еще не создана на сервере (pending);
// ненулевой ID приходит только от сервера.
type AttendanceRecord struct {
	ID           int64  `json:"id,omitempty"`
	Date         string `json:"date"` // YYYY-MM-DD
	Status       string `json:"status"`
	EmployeeName string `json:"employeeName"`
}

// IsPersisted проверяет, есть ли у записи серверный идентификатор
func (r *AttendanceRecord) IsPersisted() bool {
	return r.ID != 0
}

// FormatDate форматирует дату записи как dd-mm-yyyy для вывода
func (r *AttendanceRecord) FormatDate() string {
	t, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return r.Date
	}
	return t.Format("02-01-2006")
}

// IsValidAttendanceStatus проверяет, входит ли статус в закрытый набор
func IsValidAttendanceStatus(status string) bool {
	for _, s := range AttendanceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// StatusEmoji возвращает эмодзи для статуса посещаемости
func StatusEmoji(status string) string {
	switch status {
	case AttendancePresent:
		return "✅"
	case AttendanceAbsent:
		return "❌"
	case AttendanceHalfDay:
		return "🌓"
	case AttendancePaidLeave:
		return "💰"
	case AttendanceWeekOff:
		return "🏖️"
	case AttendanceHoliday:
		return "🎉"
	}
	return "▫️"
}
