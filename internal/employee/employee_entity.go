package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"

	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_employees_company"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employees_user"`

	FullName  string     `gorm:"type:varchar(150);not null"`
	Role      string     `gorm:"type:varchar(20);not null;default:'employee'"`
	ManagerID *uuid.UUID `gorm:"type:uuid;index:idx_employees_manager"`
	HireDate  time.Time  `gorm:"type:date;not null"`
	Status    string     `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}

// TenureMonths returns whole months of service as of a reference date.
func (e Employee) TenureMonths(asOf time.Time) int {
	if asOf.Before(e.HireDate) {
		return 0
	}
	months := (asOf.Year()-e.HireDate.Year())*12 + int(asOf.Month()) - int(e.HireDate.Month())
	if asOf.Day() < e.HireDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
