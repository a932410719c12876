package service

import (
	"fmt"
	"strings"

	"hr-admin-bot/internal/models"
	"hr-admin-bot/pkg/hrmapi"
)

// SalaryService — зарплатная ведомость, только чтение.
// Список загружается один раз на просмотр, мутаций нет.
// Поиск фильтрует по имени и фамилии (не по email — в отличие
// от реестра).
type SalaryService struct {
	client     *hrmapi.Client
	employees  []models.Employee
	searchTerm string
}

func NewSalaryService(client *hrmapi.Client) *SalaryService {
	return &SalaryService{client: client}
}

// Load загружает ведомость для subadmin-а
func (s *SalaryService) Load(subadminID int64) error {
	employees, err := s.client.GetAllEmployees(subadminID)
	if err != nil {
		return fmt.Errorf("не удалось загрузить ведомость: %v", err)
	}

	s.employees = employees
	return nil
}

// Employees возвращает загруженный список
func (s *SalaryService) Employees() []models.Employee {
	return s.employees
}

// SetSearchTerm задает строку поиска по имени
func (s *SalaryService) SetSearchTerm(term string) {
	s.searchTerm = term
}

// FilteredEmployees возвращает подмножество списка по поиску
func (s *SalaryService) FilteredEmployees() []models.Employee {
	if s.searchTerm == "" {
		return s.employees
	}

	filtered := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.MatchesNameSearch(s.searchTerm) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FindByID ищет сотрудника в загруженной ведомости
func (s *SalaryService) FindByID(empID int64) *models.Employee {
	for i := range s.employees {
		if s.employees[i].EmpID == empID {
			return &s.employees[i]
		}
	}
	return nil
}

// FormatSalarySheet форматирует ведомость для вывода
func (s *SalaryService) FormatSalarySheet() string {
	filtered := s.FilteredEmployees()
	if len(filtered) == 0 {
		if s.searchTerm != "" {
			return "📭 Никто не подходит под поиск «" + s.searchTerm + "»."
		}
		return "📭 Ведомость пуста."
	}

	title := "Зарплатная ведомость"
	if filtered[0].SubadminName != "" {
		title = filtered[0].SubadminName + " — зарплатная ведомость"
	}

	var lines []string
	lines = append(lines, "💰 "+title)
	if s.searchTerm != "" {
		lines = append(lines, fmt.Sprintf("🔍 Поиск: «%s» — найдено %d", s.searchTerm, len(filtered)))
	}
	lines = append(lines, "")

	for _, e := range filtered {
		lines = append(lines, fmt.Sprintf("#%d %s — %s", e.EmpID, e.FullName(), e.FormatSalary()))
	}

	return strings.Join(lines, "\n")
}

// FormatSalaryDetails форматирует банковскую карточку сотрудника
func (s *SalaryService) FormatSalaryDetails(e *models.Employee) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("💰 Зарплата: %s", e.FullName()))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("📧 Email: %s", e.Email))
	lines = append(lines, fmt.Sprintf("🏦 Банк: %s", e.BankName))
	lines = append(lines, fmt.Sprintf("🏢 Отделение: %s", e.BranchName))
	lines = append(lines, fmt.Sprintf("💳 Счет: %s", e.BankAccountNo))
	lines = append(lines, fmt.Sprintf("🔢 IFSC: %s", e.BankIfscCode))
	lines = append(lines, fmt.Sprintf("💵 Сумма: %s", e.FormatSalary()))

	return strings.Join(lines, "\n")
}
