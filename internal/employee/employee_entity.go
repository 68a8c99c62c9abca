package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FirstName  string    `gorm:"column:first_name"`
	MiddleName *string   `gorm:"column:middle_name"`
	LastName   string    `gorm:"column:last_name"`

	DateOfBirth   time.Time `gorm:"column:date_of_birth;type:date"`
	Gender        string    `gorm:"column:gender"`
	MaritalStatus string    `gorm:"column:marital_status"`
	Nationality   string    `gorm:"column:nationality"`

	Email          string  `gorm:"column:email;uniqueIndex:uq_employees_email"`
	Phone          string  `gorm:"column:phone"`
	AlternatePhone *string `gorm:"column:alternate_phone"`
	Address        string  `gorm:"column:address"`
	City           string  `gorm:"column:city"`
	State          string  `gorm:"column:state"`
	ZipCode        string  `gorm:"column:zip_code"`
	Country        string  `gorm:"column:country"`

	EmployeeCode     string    `gorm:"column:employee_code;uniqueIndex:uq_employees_employee_code"`
	Department       string    `gorm:"column:department"`
	Position         string    `gorm:"column:position"`
	JobTitle         string    `gorm:"column:job_title"`
	EmploymentType   string    `gorm:"column:employment_type"`
	DateOfJoining    time.Time `gorm:"column:date_of_joining;type:date"`
	WorkLocation     string    `gorm:"column:work_location"`
	ReportingManager *string   `gorm:"column:reporting_manager"`

	BankName      string `gorm:"column:bank_name"`
	AccountNumber string `gorm:"column:account_number"`
	IFSCCode      string `gorm:"column:ifsc_code"`

	EmergencyContactName     string `gorm:"column:emergency_contact_name"`
	EmergencyContactRelation string `gorm:"column:emergency_contact_relation"`
	EmergencyContactPhone    string `gorm:"column:emergency_contact_phone"`
	EmergencyContactAddress  string `gorm:"column:emergency_contact_address"`

	CitizenshipNumber *string `gorm:"column:citizenship_number"`
	PANNumber         *string `gorm:"column:pan_number"`
	PassportNumber    *string `gorm:"column:passport_number"`
	DrivingLicense    *string `gorm:"column:driving_license"`

	BloodGroup *string `gorm:"column:blood_group"`
	Allergies  *string `gorm:"column:allergies"`
	Notes      *string `gorm:"column:notes"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
