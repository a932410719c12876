package service

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"hr-admin-bot/internal/models"
	"hr-admin-bot/pkg/hrmapi"
)

// Исходы отметки статуса за день
const (
	MarkCreated       = "created"        // создана новая запись
	MarkUpdated       = "updated"        // статус изменен
	MarkAlreadyMarked = "already_marked" // тот же статус уже стоял
)

// MarkOutcome — результат отметки статуса за одну дату
type MarkOutcome struct {
	Kind           string
	Date           string
	Status         string
	PreviousStatus string
}

// Типы пакетов при отправке
const (
	BatchAdd    = "add"
	BatchUpdate = "update"
)

// BatchResult — исход одного пакетного запроса.
// Неудача одного пакета не откатывает второй.
type BatchResult struct {
	Type    string
	Records []models.AttendanceRecord
	Err     error
}

// SubmitResult — итог пакетной отправки
type SubmitResult struct {
	Batches        []BatchResult
	SubmittedDates int
}

// AttendanceService сверяет локальные отметки посещаемости с сервером.
// Выбранная дата живет без серверного идентификатора (pending), пока
// первый успешный запрос не принесет id. Не больше одной записи на дату.
// Состояние принадлежит циклу обработки обновлений.
type AttendanceService struct {
	client        *hrmapi.Client
	employeeName  string
	selectedDates []string
	records       []models.AttendanceRecord
}

func NewAttendanceService(client *hrmapi.Client) *AttendanceService {
	return &AttendanceService{client: client}
}

// SetEmployeeName задает имя сотрудника для отметок
func (s *AttendanceService) SetEmployeeName(name string) {
	s.employeeName = name
}

// EmployeeName возвращает текущее имя сотрудника
func (s *AttendanceService) EmployeeName() string {
	return s.employeeName
}

// Records возвращает локальные отметки
func (s *AttendanceService) Records() []models.AttendanceRecord {
	return s.records
}

// SelectedDates возвращает выбранные даты в порядке выбора
func (s *AttendanceService) SelectedDates() []string {
	return s.selectedDates
}

// RecordForDate ищет локальную отметку за дату
func (s *AttendanceService) RecordForDate(date string) *models.AttendanceRecord {
	for i := range s.records {
		if s.records[i].Date == date {
			return &s.records[i]
		}
	}
	return nil
}

// SelectDate добавляет дату в выбор. Новая дата получает отметку
// без серверного идентификатора со статусом Present по умолчанию.
// Повторный выбор той же даты ничего не меняет.
func (s *AttendanceService) SelectDate(date string) *models.AttendanceRecord {
	if record := s.RecordForDate(date); record != nil {
		return record
	}

	s.selectedDates = append(s.selectedDates, date)
	s.records = append(s.records, models.AttendanceRecord{
		Date:         date,
		Status:       models.AttendancePresent,
		EmployeeName: s.employeeName,
	})

	return &s.records[len(s.records)-1]
}

// MarkStatus отмечает статус за дату по протоколу "проверь, потом действуй":
// сначала запрашивается существующая запись (имя, дата); найденная
// обновляется PUT-ом с ее идентификатором, отсутствующая создается POST-ом,
// и серверный id прикрепляется к локальной отметке.
//
// Известная гонка: две сессии могут одновременно не найти запись и обе
// создать ее — дубликаты на сервере никак не предотвращаются.
func (s *AttendanceService) MarkStatus(subadminID int64, date, status string) (*MarkOutcome, error) {
	if s.employeeName == "" {
		return nil, fmt.Errorf("сначала укажите имя сотрудника")
	}

	// Ошибка проверки глотается: нет ответа — считаем, что записи нет
	existing, err := s.client.GetAttendance(s.employeeName, date)
	if err != nil {
		logrus.WithError(err).Warn("Failed to check existing attendance")
		existing = nil
	}

	payload := []models.AttendanceRecord{{
		Date:         date,
		Status:       status,
		EmployeeName: s.employeeName,
	}}

	if len(existing) > 0 {
		payload[0].ID = existing[0].ID

		if _, err := s.client.UpdateAttendanceBulk(subadminID, s.employeeName, payload); err != nil {
			return nil, fmt.Errorf("не удалось отметить посещаемость: %v", err)
		}

		s.attachRecord(date, status, existing[0].ID)

		outcome := &MarkOutcome{
			Kind:           MarkUpdated,
			Date:           date,
			Status:         status,
			PreviousStatus: existing[0].Status,
		}
		if existing[0].Status == status {
			// Идемпотентное обновление: статус не изменился
			outcome.Kind = MarkAlreadyMarked
		}
		return outcome, nil
	}

	created, err := s.client.AddAttendanceBulk(subadminID, s.employeeName, payload)
	if err != nil {
		return nil, fmt.Errorf("не удалось отметить посещаемость: %v", err)
	}

	if len(created) > 0 {
		s.attachRecord(date, status, created[0].ID)
	}

	return &MarkOutcome{
		Kind:   MarkCreated,
		Date:   date,
		Status: status,
	}, nil
}

// attachRecord проставляет статус и серверный id локальной отметке,
// добавляя отметку и дату в выбор, если их там еще нет
func (s *AttendanceService) attachRecord(date, status string, id int64) {
	if record := s.RecordForDate(date); record != nil {
		record.Status = status
		record.ID = id
		return
	}

	s.selectedDates = append(s.selectedDates, date)
	s.records = append(s.records, models.AttendanceRecord{
		ID:           id,
		Date:         date,
		Status:       status,
		EmployeeName: s.employeeName,
	})
}

// RemoveDate убирает дату из выбора и отметок.
// Удаление только локальное: запрос на сервер не отправляется,
// уже созданная там запись остается.
func (s *AttendanceService) RemoveDate(date string) {
	dates := s.selectedDates[:0]
	for _, d := range s.selectedDates {
		if d != date {
			dates = append(dates, d)
		}
	}
	s.selectedDates = dates

	records := s.records[:0]
	for _, r := range s.records {
		if r.Date != date {
			records = append(records, r)
		}
	}
	s.records = records
}

// CancelAll очищает весь выбор
func (s *AttendanceService) CancelAll() {
	s.selectedDates = nil
	s.records = nil
}

// Validate проверяет готовность к отправке
func (s *AttendanceService) Validate() error {
	if s.employeeName == "" {
		return fmt.Errorf("укажите имя сотрудника")
	}
	if len(s.selectedDates) == 0 {
		return fmt.Errorf("выберите хотя бы одну дату")
	}
	return nil
}

// Submit отправляет все отметки. Записи без серверного идентификатора
// уходят пакетом создания, записи с идентификатором — пакетом обновления;
// оба запроса выполняются одновременно, исход каждого независим
// (частичная неудача не откатывается). Локальное состояние очищается
// после завершения обоих независимо от результата.
func (s *AttendanceService) Submit(subadminID int64) (*SubmitResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var newRecords, updateRecords []models.AttendanceRecord
	for _, r := range s.records {
		r.EmployeeName = s.employeeName
		if r.IsPersisted() {
			updateRecords = append(updateRecords, r)
		} else {
			r.ID = 0
			newRecords = append(newRecords, r)
		}
	}

	result := &SubmitResult{SubmittedDates: len(s.selectedDates)}

	var wg sync.WaitGroup
	results := make(chan BatchResult, 2)

	if len(newRecords) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.client.AddAttendanceBulk(subadminID, s.employeeName, newRecords)
			results <- BatchResult{Type: BatchAdd, Records: newRecords, Err: err}
		}()
	}

	if len(updateRecords) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.client.SubmitUpdateBulk(subadminID, s.employeeName, updateRecords)
			results <- BatchResult{Type: BatchUpdate, Records: updateRecords, Err: err}
		}()
	}

	wg.Wait()
	close(results)

	for r := range results {
		if r.Err != nil {
			logrus.WithError(r.Err).WithField("batch", r.Type).Error("Bulk attendance request failed")
		}
		result.Batches = append(result.Batches, r)
	}

	// Форма сбрасывается в любом случае
	s.employeeName = ""
	s.selectedDates = nil
	s.records = nil

	return result, nil
}
