package models

import (
	"fmt"
	"strings"
)

// Статусы сотрудника
const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"
)

// Employee — запись сотрудника из удаленного HRM API.
// EmpID всегда назначается сервером, локально никогда не генерируется.
type Employee struct {
	EmpID         int64   `json:"empId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Phone         int64   `json:"phone"`
	AadharNo      string  `json:"aadharNo"`
	PanCard       string  `json:"panCard"`
	Education     string  `json:"education"`
	BloodGroup    string  `json:"bloodGroup"`
	JobRole       string  `json:"jobRole"`
	Gender        string  `json:"gender"`
	Address       string  `json:"address"`
	BirthDate     string  `json:"birthDate"`
	JoiningDate   string  `json:"joiningDate"`
	Status        string  `json:"status"`
	BankName      string  `json:"bankName"`
	BankAccountNo string  `json:"bankAccountNo"`
	BankIfscCode  string  `json:"bankIfscCode"`
	BranchName    string  `json:"branchName"`
	Salary        float64 `json:"salary"`
	Role          string  `json:"role,omitempty"`
	SubadminName  string  `json:"subadminName,omitempty"`
}

// FullName возвращает полное имя сотрудника
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// IsActive проверяет, активен ли сотрудник
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// MatchesSearch проверяет вхождение подстроки (без учета регистра)
// в имя, фамилию или email
func (e *Employee) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.FirstName), term) ||
		strings.Contains(strings.ToLower(e.LastName), term) ||
		strings.Contains(strings.ToLower(e.Email), term)
}

// MatchesNameSearch как MatchesSearch, но только по имени и фамилии
// (зарплатная ведомость не ищет по email)
func (e *Employee) MatchesNameSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.FirstName), term) ||
		strings.Contains(strings.ToLower(e.LastName), term)
}

// StatusEmoji возвращает эмодзи для статуса сотрудника
func (e *Employee) StatusEmoji() string {
	if e.IsActive() {
		return "🟢"
	}
	return "🔴"
}

// FormatSalary форматирует зарплату для вывода
func (e *Employee) FormatSalary() string {
	return fmt.Sprintf("%.2f", e.Salary)
}
