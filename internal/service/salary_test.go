package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hr-admin-bot/internal/models"
	"hr-admin-bot/pkg/hrmapi"
)

func newSalaryService(t *testing.T, employees []models.Employee) (*SalaryService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(employees)
	}))
	return NewSalaryService(hrmapi.NewClient(server.URL, 5*time.Second)), server
}

func TestSalaryFilterByNameOnly(t *testing.T) {
	employees := []models.Employee{
		{EmpID: 1, FirstName: "Anna", LastName: "Orlova", Email: "anna@corp.ru", Salary: 50000},
		{EmpID: 2, FirstName: "Boris", LastName: "Petrov", Email: "anka@corp.ru", Salary: 60000},
		{EmpID: 3, FirstName: "Clara", LastName: "Annenkova", Email: "clara@corp.ru", Salary: 70000},
	}
	s, server := newSalaryService(t, employees)
	defer server.Close()

	if err := s.Load(2); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s.SetSearchTerm("ann")
	filtered := s.FilteredEmployees()

	// Поиск только по имени и фамилии: Boris отпадает,
	// хотя его email содержит подстроку
	if len(filtered) != 2 {
		t.Fatalf("filtered = %d, want 2", len(filtered))
	}
	for _, e := range filtered {
		if e.EmpID == 2 {
			t.Error("email match must not count in the salary sheet")
		}
	}

	s.SetSearchTerm("")
	if len(s.FilteredEmployees()) != 3 {
		t.Error("empty search must return the full sheet")
	}
}

func TestSalarySheetTitleUsesSubadminName(t *testing.T) {
	employees := []models.Employee{
		{EmpID: 1, FirstName: "Anna", LastName: "Orlova", Salary: 50000, SubadminName: "ООО Ромашка"},
	}
	s, server := newSalaryService(t, employees)
	defer server.Close()

	if err := s.Load(2); err != nil {
		t.Fatalf("Load: %v", err)
	}

	sheet := s.FormatSalarySheet()
	if !strings.Contains(sheet, "ООО Ромашка") {
		t.Errorf("sheet title must carry the subadmin name, got:\n%s", sheet)
	}
	if !strings.Contains(sheet, "50000.00") {
		t.Errorf("sheet must list salaries, got:\n%s", sheet)
	}
}

func TestSalaryLoadError(t *testing.T) {
	s, server := newSalaryService(t, nil)
	server.Close()

	err := s.Load(2)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "не удалось загрузить ведомость") {
		t.Errorf("error = %q", err.Error())
	}
}
