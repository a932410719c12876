package service

import (
	"fmt"
	"strings"

	"hr-admin-bot/internal/models"
	"hr-admin-bot/pkg/hrmapi"
)

// EmployeesPerPage — фиксированный размер страницы реестра
const EmployeesPerPage = 5

// RosterService владеет локальным снимком списка сотрудников,
// строкой поиска и окном пагинации. Снимок всегда перечитывается
// целиком после каждой мутации, локально ничего не дописывается.
// Состояние принадлежит циклу обработки обновлений и мутируется
// только из него.
type RosterService struct {
	client      *hrmapi.Client
	employees   []models.Employee
	loading     bool
	searchTerm  string
	currentPage int
}

func NewRosterService(client *hrmapi.Client) *RosterService {
	return &RosterService{
		client:      client,
		currentPage: 1,
	}
}

// Refresh перечитывает список сотрудников с сервера.
// При ошибке прежний снимок остается нетронутым,
// флаг загрузки снимается в любом случае.
func (s *RosterService) Refresh(subadminID int64) error {
	s.loading = true
	defer func() { s.loading = false }()

	employees, err := s.client.GetAllEmployees(subadminID)
	if err != nil {
		return fmt.Errorf("не удалось загрузить сотрудников: %v", err)
	}

	s.employees = employees
	return nil
}

// IsLoading проверяет, идет ли загрузка списка
func (s *RosterService) IsLoading() bool {
	return s.loading
}

// Employees возвращает текущий снимок списка
func (s *RosterService) Employees() []models.Employee {
	return s.employees
}

// FindByID ищет сотрудника в локальном снимке
func (s *RosterService) FindByID(empID int64) *models.Employee {
	for i := range s.employees {
		if s.employees[i].EmpID == empID {
			return &s.employees[i]
		}
	}
	return nil
}

// Create создает сотрудника и перечитывает список.
// Поля формы не валидируются — любые значения уходят как есть.
func (s *RosterService) Create(subadminID int64, draft *models.EmployeeDraft) error {
	_, err := s.client.AddEmployee(subadminID, draft.FormValues())
	if err != nil {
		return fmt.Errorf("не удалось создать сотрудника: %v", err)
	}

	return s.Refresh(subadminID)
}

// Update обновляет сотрудника и перечитывает список.
// Телефон и зарплата приводятся к числам перед отправкой.
func (s *RosterService) Update(subadminID, empID int64, draft *models.EmployeeDraft) error {
	_, err := s.client.UpdateEmployee(subadminID, empID, draft.ToEmployee(empID))
	if err != nil {
		return fmt.Errorf("не удалось обновить сотрудника: %v", err)
	}

	return s.Refresh(subadminID)
}

// Delete удаляет сотрудника. Идентификатор должен присутствовать
// в локальном снимке — устаревший клик не порождает запроса.
func (s *RosterService) Delete(subadminID, empID int64) error {
	if s.FindByID(empID) == nil {
		return fmt.Errorf("сотрудник не найден")
	}

	if err := s.client.DeleteEmployee(subadminID, empID); err != nil {
		return fmt.Errorf("не удалось удалить сотрудника: %v", err)
	}

	return s.Refresh(subadminID)
}

// SetSearchTerm задает строку поиска.
// Номер страницы при этом не сбрасывается — так ведет себя
// исходная форма, окно может оказаться пустым.
func (s *RosterService) SetSearchTerm(term string) {
	s.searchTerm = term
}

// SearchTerm возвращает текущую строку поиска
func (s *RosterService) SearchTerm() string {
	return s.searchTerm
}

// FilteredEmployees возвращает сотрудников, подходящих под поиск
// по имени, фамилии или email (пустой поиск — весь список)
func (s *RosterService) FilteredEmployees() []models.Employee {
	if s.searchTerm == "" {
		return s.employees
	}

	filtered := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.MatchesSearch(s.searchTerm) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// TotalPages возвращает число страниц отфильтрованного списка
func (s *RosterService) TotalPages() int {
	n := len(s.FilteredEmployees())
	pages := n / EmployeesPerPage
	if n%EmployeesPerPage > 0 {
		pages++
	}
	return pages
}

// Page возвращает текущий номер страницы (с единицы)
func (s *RosterService) Page() int {
	return s.currentPage
}

// CurrentPageEmployees возвращает окно текущей страницы
func (s *RosterService) CurrentPageEmployees() []models.Employee {
	filtered := s.FilteredEmployees()

	start := (s.currentPage - 1) * EmployeesPerPage
	if start < 0 || start >= len(filtered) {
		return nil
	}

	end := start + EmployeesPerPage
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end]
}

// NextPage листает вперед, не выходя за последнюю страницу
func (s *RosterService) NextPage() {
	if s.currentPage < s.TotalPages() {
		s.currentPage++
	}
}

// PrevPage листает назад, не выходя за первую страницу
func (s *RosterService) PrevPage() {
	if s.currentPage > 1 {
		s.currentPage--
	}
}

// SetPage переходит на страницу page, если она существует
func (s *RosterService) SetPage(page int) {
	if page >= 1 && page <= s.TotalPages() {
		s.currentPage = page
	}
}

// FormatEmployeePage форматирует текущую страницу реестра для вывода
func (s *RosterService) FormatEmployeePage() string {
	filtered := s.FilteredEmployees()
	if len(filtered) == 0 {
		if s.searchTerm != "" {
			return "📭 Никто не подходит под поиск «" + s.searchTerm + "»."
		}
		return "📭 Список сотрудников пуст."
	}

	var lines []string
	lines = append(lines, "📋 Сотрудники:")
	if s.searchTerm != "" {
		lines = append(lines, fmt.Sprintf("🔍 Поиск: «%s» — найдено %d", s.searchTerm, len(filtered)))
	}
	lines = append(lines, "")

	page := s.CurrentPageEmployees()
	for _, e := range page {
		lines = append(lines, fmt.Sprintf("%s #%d %s", e.StatusEmoji(), e.EmpID, e.FullName()))
		lines = append(lines, fmt.Sprintf("   📧 %s | 💼 %s", e.Email, e.JobRole))
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("📄 Страница %d из %d (всего %d)",
		s.currentPage, s.TotalPages(), len(filtered)))

	return strings.Join(lines, "\n")
}

// FormatEmployeeDetails форматирует карточку сотрудника
func (s *RosterService) FormatEmployeeDetails(e *models.Employee) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("👤 Сотрудник #%d", e.EmpID))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s Статус: %s", e.StatusEmoji(), e.Status))
	lines = append(lines, fmt.Sprintf("👨‍💼 Имя: %s", e.FullName()))
	lines = append(lines, fmt.Sprintf("📧 Email: %s", e.Email))
	lines = append(lines, fmt.Sprintf("📱 Телефон: %d", e.Phone))
	lines = append(lines, fmt.Sprintf("💼 Должность: %s", e.JobRole))
	lines = append(lines, fmt.Sprintf("🎓 Образование: %s", e.Education))
	lines = append(lines, fmt.Sprintf("🩸 Группа крови: %s", e.BloodGroup))
	lines = append(lines, fmt.Sprintf("⚧ Пол: %s", e.Gender))
	lines = append(lines, fmt.Sprintf("🏠 Адрес: %s", e.Address))
	lines = append(lines, fmt.Sprintf("🎂 Дата рождения: %s", e.BirthDate))
	lines = append(lines, fmt.Sprintf("📅 Дата приема: %s", e.JoiningDate))
	lines = append(lines, fmt.Sprintf("🪪 Aadhar: %s | PAN: %s", e.AadharNo, e.PanCard))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🏦 Банк: %s (%s)", e.BankName, e.BranchName))
	lines = append(lines, fmt.Sprintf("💳 Счет: %s | IFSC: %s", e.BankAccountNo, e.BankIfscCode))
	lines = append(lines, fmt.Sprintf("💰 Зарплата: %s", e.FormatSalary()))

	return strings.Join(lines, "\n")
}
