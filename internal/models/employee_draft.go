package models

import (
	"net/url"
	"strconv"
)

// EmployeeDraft — черновик формы сотрудника. Все поля строковые,
// как в форме: значения отправляются как есть, валидации нет.
type EmployeeDraft struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	AadharNo      string
	PanCard       string
	Education     string
	BloodGroup    string
	JobRole       string
	Gender        string
	Address       string
	BirthDate     string
	JoiningDate   string
	Status        string
	BankName      string
	BankAccountNo string
	BankIfscCode  string
	BranchName    string
	Salary        string
}

// NewDraftFromEmployee заполняет черновик значениями существующей
// записи (для формы обновления)
func NewDraftFromEmployee(e *Employee) *EmployeeDraft {
	return &EmployeeDraft{
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Phone:         strconv.FormatInt(e.Phone, 10),
		AadharNo:      e.AadharNo,
		PanCard:       e.PanCard,
		Education:     e.Education,
		BloodGroup:    e.BloodGroup,
		JobRole:       e.JobRole,
		Gender:        e.Gender,
		Address:       e.Address,
		BirthDate:     e.BirthDate,
		JoiningDate:   e.JoiningDate,
		Status:        e.Status,
		BankName:      e.BankName,
		BankAccountNo: e.BankAccountNo,
		BankIfscCode:  e.BankIfscCode,
		BranchName:    e.BranchName,
		Salary:        strconv.FormatFloat(e.Salary, 'f', -1, 64),
	}
}

// FormValues собирает form-encoded тело для создания сотрудника.
// Числовые поля уходят строками — приведение типов делает сервер.
func (d *EmployeeDraft) FormValues() url.Values {
	form := url.Values{}
	form.Set("firstName", d.FirstName)
	form.Set("lastName", d.LastName)
	form.Set("email", d.Email)
	form.Set("phone", d.Phone)
	form.Set("aadharNo", d.AadharNo)
	form.Set("panCard", d.PanCard)
	form.Set("education", d.Education)
	form.Set("bloodGroup", d.BloodGroup)
	form.Set("jobRole", d.JobRole)
	form.Set("gender", d.Gender)
	form.Set("address", d.Address)
	form.Set("birthDate", d.BirthDate)
	form.Set("joiningDate", d.JoiningDate)
	form.Set("status", d.Status)
	form.Set("bankName", d.BankName)
	form.Set("bankAccountNo", d.BankAccountNo)
	form.Set("bankIfscCode", d.BankIfscCode)
	form.Set("branchName", d.BranchName)
	form.Set("salary", d.Salary)
	return form
}

// ToEmployee собирает JSON тело для обновления сотрудника.
// Телефон и зарплата приводятся к числам перед отправкой,
// нечисловые значения становятся нулем.
func (d *EmployeeDraft) ToEmployee(empID int64) *Employee {
	phone, _ := strconv.ParseInt(d.Phone, 10, 64)
	salary, _ := strconv.ParseFloat(d.Salary, 64)

	return &Employee{
		EmpID:         empID,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Phone:         phone,
		AadharNo:      d.AadharNo,
		PanCard:       d.PanCard,
		Education:     d.Education,
		BloodGroup:    d.BloodGroup,
		JobRole:       d.JobRole,
		Gender:        d.Gender,
		Address:       d.Address,
		BirthDate:     d.BirthDate,
		JoiningDate:   d.JoiningDate,
		Status:        d.Status,
		BankName:      d.BankName,
		BankAccountNo: d.BankAccountNo,
		BankIfscCode:  d.BankIfscCode,
		BranchName:    d.BranchName,
		Salary:        salary,
		Role:          "EMPLOYEE",
	}
}
