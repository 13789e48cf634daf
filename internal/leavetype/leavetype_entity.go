package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_types_company_code"`

	Code     string `gorm:"type:varchar(30);not null;uniqueIndex:idx_leave_types_company_code"`
	Name     string `gorm:"type:varchar(100);not null"`
	Category string `gorm:"type:varchar(30);not null;default:'GENERAL'"`

	IsPaid             bool   `gorm:"not null;default:true"`
	DeductsFromBalance bool   `gorm:"not null;default:true"`
	RequiresAttachment bool   `gorm:"not null;default:false"`
	AttachmentType     string `gorm:"type:varchar(30)"`

	MinTenureMonths          int    `gorm:"not null;default:0"`
	MaxDurationDays          int    `gorm:"not null;default:0"`
	AllowPostLeaveSubmission bool   `gorm:"not null;default:false"`
	// GracePeriodDays bounds how far back a post-leave submission can reach.
	GracePeriodDays int    `gorm:"not null;default:30"`
	PauseAccrual    bool   `gorm:"not null;default:false"`
	PayrollPayCode  string `gorm:"type:varchar(30)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_types_deleted_at"`
}
