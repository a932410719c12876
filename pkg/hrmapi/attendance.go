package hrmapi

import (
	"fmt"
	"net/http"
	"net/url"

	"hr-admin-bot/internal/models"
)

// GetAttendance возвращает существующие отметки посещаемости
// сотрудника за дату (ожидается ноль или одна запись)
func (c *Client) GetAttendance(employeeName, date string) ([]models.AttendanceRecord, error) {
	reqURL := fmt.Sprintf("%s/api/employee/bulk/%s/%s",
		c.BaseURL, url.PathEscape(employeeName), date)

	var records []models.AttendanceRecord
	if err := c.doJSON(http.MethodGet, reqURL, nil, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// AddAttendanceBulk создает пакет новых отметок (JSON массив).
// Сервер возвращает созданные записи с назначенными идентификаторами.
func (c *Client) AddAttendanceBulk(subadminID int64, employeeName string, records []models.AttendanceRecord) ([]models.AttendanceRecord, error) {
	reqURL := fmt.Sprintf("%s/api/employee/%d/%s/attendance/add/bulk",
		c.BaseURL, subadminID, url.PathEscape(employeeName))

	var created []models.AttendanceRecord
	if err := c.doJSON(http.MethodPost, reqURL, records, &created); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateAttendanceBulk обновляет пакет существующих отметок (PUT)
func (c *Client) UpdateAttendanceBulk(subadminID int64, employeeName string, records []models.AttendanceRecord) ([]models.AttendanceRecord, error) {
	reqURL := fmt.Sprintf("%s/api/employee/%d/%s/attendance/update/bulk",
		c.BaseURL, subadminID, url.PathEscape(employeeName))

	var updated []models.AttendanceRecord
	if err := c.doJSON(http.MethodPut, reqURL, records, &updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// SubmitUpdateBulk отправляет пакет обновлений POST-ом на маршрут update.
// Маршрут принимает и POST; пакетная отправка исторически пользуется
// именно им, в отличие от одиночного обновления через PUT.
func (c *Client) SubmitUpdateBulk(subadminID int64, employeeName string, records []models.AttendanceRecord) ([]models.AttendanceRecord, error) {
	reqURL := fmt.Sprintf("%s/api/employee/%d/%s/attendance/update/bulk",
		c.BaseURL, subadminID, url.PathEscape(employeeName))

	var updated []models.AttendanceRecord
	if err := c.doJSON(http.MethodPost, reqURL, records, &updated); err != nil {
		return nil, err
	}

	return updated, nil
}
