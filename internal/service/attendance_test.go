package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hr-admin-bot/internal/models"
	"hr-admin-bot/pkg/hrmapi"
)

// attendanceServer — HRM API посещаемости для тестов: хранит записи
// по (имя, дата) и журналирует запросы
type attendanceServer struct {
	mu      sync.Mutex
	records map[string]models.AttendanceRecord // ключ "имя|дата"
	nextID  int64
	calls   []string // "METHOD путь"
	failGet bool
}

func newAttendanceServer() (*attendanceServer, *httptest.Server) {
	as := &attendanceServer{
		records: map[string]models.AttendanceRecord{},
		nextID:  100,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		as.mu.Lock()
		defer as.mu.Unlock()
		as.calls = append(as.calls, r.Method+" "+r.URL.Path)

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

		switch {
		// GET /api/employee/bulk/{name}/{date}
		case r.Method == http.MethodGet && len(parts) == 5 && parts[2] == "bulk":
			if as.failGet {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			name, date := parts[3], parts[4]
			if rec, ok := as.records[name+"|"+date]; ok {
				json.NewEncoder(w).Encode([]models.AttendanceRecord{rec})
				return
			}
			w.Write([]byte("[]"))

		// POST .../attendance/add/bulk
		case strings.HasSuffix(r.URL.Path, "/attendance/add/bulk"):
			var incoming []models.AttendanceRecord
			json.NewDecoder(r.Body).Decode(&incoming)
			name := parts[3]
			created := make([]models.AttendanceRecord, 0, len(incoming))
			for _, rec := range incoming {
				rec.ID = as.nextID
				as.nextID++
				as.records[name+"|"+rec.Date] = rec
				created = append(created, rec)
			}
			json.NewEncoder(w).Encode(created)

		// PUT или POST .../attendance/update/bulk
		case strings.HasSuffix(r.URL.Path, "/attendance/update/bulk"):
			var incoming []models.AttendanceRecord
			json.NewDecoder(r.Body).Decode(&incoming)
			name := parts[3]
			for _, rec := range incoming {
				as.records[name+"|"+rec.Date] = rec
			}
			json.NewEncoder(w).Encode(incoming)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	return as, httptest.NewServer(mux)
}

func (as *attendanceServer) callsWith(substr string) []string {
	as.mu.Lock()
	defer as.mu.Unlock()
	var matched []string
	for _, c := range as.calls {
		if strings.Contains(c, substr) {
			matched = append(matched, c)
		}
	}
	return matched
}

func newAttendanceService(serverURL string) *AttendanceService {
	return NewAttendanceService(hrmapi.NewClient(serverURL, 5*time.Second))
}

func TestSelectDateDefaultsToPresent(t *testing.T) {
	_, server := newAttendanceServer()
	defer server.Close()

	s := newAttendanceService(server.URL)
	s.SetEmployeeName("Ivan Petrov")

	record := s.SelectDate("2024-01-15")
	if record.Status != models.AttendancePresent {
		t.Errorf("status = %q, want Present", record.Status)
	}
	if record.IsPersisted() {
		t.Error("fresh selection must not carry a server id")
	}

	// Повторный выбор той же даты ничего не меняет
	record.Status = models.AttendanceAbsent
	again := s.SelectDate("2024-01-15")
	if again.Status != models.AttendanceAbsent {
		t.Error("re-selecting a date must return the existing record unchanged")
	}
	if len(s.SelectedDates()) != 1 {
		t.Errorf("selectedDates = %d, want 1", len(s.SelectedDates()))
	}
}

func TestMarkStatusCreatesWhenAbsent(t *testing.T) {
	as, server := newAttendanceServer()
	defer server.Close()

	s := newAttendanceService(server.URL)
	s.SetEmployeeName("Ivan Petrov")

	outcome, err := s.MarkStatus(2, "2024-01-15", models.AttendancePresent)
	if err != nil {
		t.Fatalf("MarkStatus: %v", err)
	}

	if outcome.Kind != MarkCreated {
		t.Errorf("kind = %q, want created", outcome.Kind)
	}
	if len(as.callsWith("add/bulk")) != 1 {
		t.Errorf("add/bulk calls = %d, want 1", len(as.callsWith("add/bulk")))
	}

	// Серверный id прикреплен к локальной отметке
	record := s.RecordForDate("2024-01-15")
	if record == nil || !record.IsPersisted() {
		t.Fatalf("record must carry the assigned id, got %+v", record)
	}
}

func TestMarkStatusSameStatusIsInformational(t *testing.T) {
	as, server := newAttendanceServer()
	defer server.Close()

	s := newAttendanceService(server.URL)
	s.SetEmployeeName("Ivan Petrov")

	if _, err := s.MarkStatus(2, "2024-01-15", models.AttendanceHalfDay); err != nil {
		t.Fatalf("first MarkStatus: %v", err)
	}

	outcome, err := s.MarkStatus(2, "2024-01-15", models.AttendanceHalfDay)
	if err != nil {
		t.Fatalf("second MarkStatus: %v", err)
	}

	// Повтор того же статуса — информационный исход, но PUT все равно ушел
	if outcome.Kind != MarkAlreadyMarked {
		t.Errorf("kind = %q, want already_marked", outcome.Kind)
	}
	puts := as.callsWith("update/bulk")
	if len(puts) != 1 || !strings.HasPrefix(puts[0], "PUT ") {
		t.Errorf("update/bulk calls = %v, want one PUT", puts)
	}
}

func TestMarkStatusUpdatesExisting(t *testing.T) {
	_, server := newAttendanceServer()
	defer server.Close()

	s := newAttendanceService(server.URL)
	s.SetEmployeeName("Ivan Petrov")

	if _, err := s.MarkStatus(2, "2024-01-15", models.AttendancePresent); err != nil {
		t.Fatalf("first MarkStatus: %v", err)
	}

	outcome, err := s.MarkStatus(2, "2024-01-15", models.AttendancePaidLeave)
	if err != nil {
		t.Fatalf("second MarkStatus: %v", err)
	}

	if outcome.Kind != MarkUpdated {
		t.Errorf("kind = %q, want updated", outcome.Kind)
	}
	if outcome.PreviousStatus != models.AttendancePresent {
		t.Errorf("previous = %q, want Present", outcome.PreviousStatus)
	}
	if record := s.RecordForDate("2024-01-15"); record.Status != models.AttendancePaidLeave {
		t.Errorf("local record status = %q", record.Status)
	}
}

func TestMarkStatusSwallowsCheckError(t *testing.T) {
	as, server := newAttendanceServer()
	defer server.Close()

	as.failGet = true

	s := newAttendanceService(server.URL)
	s.SetEmployeeName("Ivan Petrov")

	// Проверка упала — запись считается отсутствующей, идет создание
	outcome, err := s.MarkStatus(2, "2024-01-15", models.AttendancePresent)
	if err != nil {
		t.Fatalf("MarkStatus must not fail on check error: %v", err)
	}
	if outcome.Kind != MarkCreated {
		t.Errorf("kind = %q, want created", outcome.Kind)
	}
	if len(as.callsWith("add/bulk")) != 1 {
		t.Error("expected a create request after failed check")
	}
}

func TestMarkStatusRequiresName(t *testing.T) {
	_, server := newAttendanceServer()
	defer server.Close()

	s := newAttendanceService(server.URL)
	if _, err := s.MarkStatus(2, "2024-01-15", models.AttendancePresent); err == nil {
		t.Fatal("expected error without employee name")
	}
}

func TestRemoveDateIsLocalOnly(t *testing.T) {
	as, server := newAttendanceServer()
	defer server.Close()

	s := newAttendanceService(server.URL)
	s.SetEmployeeName("Ivan Petrov")

	if _, err := s.MarkStatus(2, "2024-01-15", models.AttendancePresent); err != nil {
		t.Fatalf("MarkStatus: %v", err)
	}
	callsBefore := len(as.callsWith(""))

	s.RemoveDate("2024-01-15")

	if s.RecordForDate("2024-01-15") != nil {
		t.Error("record must be gone locally")
	}
	if len(s.SelectedDates()) != 0 {
		t.Error("date must be gone from the selection")
	}
	// Никакого запроса на удаление: запись на сервере остается
	if len(as.callsWith("")) != callsBefore {
		t.Error("RemoveDate must not talk to the server")
	}
	as.mu.Lock()
	_, stillThere := as.records["Ivan Petrov|2024-01-15"]
	as.mu.Unlock()
	if !stillThere {
		t.Error("server record must survive a local removal")
	}
}

func TestSubmitPartitionsByPersistence(t *testing.T) {
	as, server := newAttendanceServer()
	defer server.Close()

	s := newAttendanceService(server.URL)
	s.SetEmployeeName("Ivan Petrov")

	// Одна запись уже на сервере, две новых только локально
	if _, err := s.MarkStatus(2, "2024-01-10", models.AttendancePresent); err != nil {
		t.Fatalf("MarkStatus: %v", err)
	}
	s.SelectDate("2024-01-11")
	s.SelectDate("2024-01-12")

	result, err := s.Submit(2)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.SubmittedDates != 3 {
		t.Errorf("SubmittedDates = %d, want 3", result.SubmittedDates)
	}
	if len(result.Batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(result.Batches))
	}

	for _, batch := range result.Batches {
		if batch.Err != nil {
			t.Errorf("batch %s failed: %v", batch.Type, batch.Err)
		}
		switch batch.Type {
		case BatchAdd:
			if len(batch.Records) != 2 {
				t.Errorf("add batch size = %d, want 2", len(batch.Records))
			}
		case BatchUpdate:
			if len(batch.Records) != 1 {
				t.Errorf("update batch size = %d, want 1", len(batch.Records))
			}
		}
	}

	// Пакетное обновление уходит POST-ом на маршрут update
	var postUpdates int
	for _, c := range as.callsWith("update/bulk") {
		if strings.HasPrefix(c, "POST ") {
			postUpdates++
		}
	}
	if postUpdates != 1 {
		t.Errorf("POST update/bulk calls = %d, want 1", postUpdates)
	}

	// Состояние очищено независимо от исхода
	if s.EmployeeName() != "" || len(s.SelectedDates()) != 0 || len(s.Records()) != 0 {
		t.Error("submit must clear all local state")
	}
}

func TestSubmitClearsStateOnFailure(t *testing.T) {
	_, server := newAttendanceServer()

	s := newAttendanceService(server.URL)
	s.SetEmployeeName("Ivan Petrov")
	s.SelectDate("2024-01-11")

	server.Close()

	result, err := s.Submit(2)
	if err != nil {
		t.Fatalf("Submit returns batch errors inside the result, got: %v", err)
	}

	if len(result.Batches) != 1 || result.Batches[0].Err == nil {
		t.Errorf("expected one failed batch, got %+v", result.Batches)
	}
	if s.EmployeeName() != "" || len(s.Records()) != 0 {
		t.Error("state must be cleared even when a batch fails")
	}
}

func TestSubmitValidation(t *testing.T) {
	_, server := newAttendanceServer()
	defer server.Close()

	s := newAttendanceService(server.URL)

	if _, err := s.Submit(2); err == nil {
		t.Fatal("expected error without employee name")
	}

	s.SetEmployeeName("Ivan Petrov")
	if _, err := s.Submit(2); err == nil {
		t.Fatal("expected error without selected dates")
	}
}

func TestCancelAll(t *testing.T) {
	_, server := newAttendanceServer()
	defer server.Close()

	s := newAttendanceService(server.URL)
	s.SetEmployeeName("Ivan Petrov")
	s.SelectDate("2024-01-11")
	s.SelectDate("2024-01-12")

	s.CancelAll()

	if len(s.SelectedDates()) != 0 || len(s.Records()) != 0 {
		t.Error("CancelAll must drop all selections")
	}
	// Имя сотрудника при этом сохраняется
	if s.EmployeeName() != "Ivan Petrov" {
		t.Error("CancelAll must keep the employee name")
	}
}
