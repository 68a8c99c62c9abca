package attendance

import (
	"time"

	"github.com/google/uuid"
)

type ClockInOut struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"column:employee_id;type:uuid;index"`
	Date         time.Time `gorm:"column:date;type:date"`
	ClockInTime  string    `gorm:"column:clock_in_time"`
	ClockOutTime *string   `gorm:"column:clock_out_time"`
	Notes        *string   `gorm:"column:notes"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (ClockInOut) TableName() string {
	return "clock_in_outs"
}

// EmployeeRef is the slice of an employee row attendance needs: the code
// and name for enriched views and the email for ownership checks.
type EmployeeRef struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"column:employee_code"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Email        string    `gorm:"column:email"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
