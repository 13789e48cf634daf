package ledger

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FrequencyMonthly = "MONTHLY"
	FrequencyYearly  = "YEARLY"
)

// BalanceLedger tracks one employee's balance for one leave type and year.
// All mutations go through compare-and-swap updates on Version, so two
// concurrent debits can never both succeed against the same snapshot.
type BalanceLedger struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_owner" json:"company_id"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_owner" json:"employee_id"`
	LeaveTypeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_owner" json:"leave_type_id"`
	Year            int        `gorm:"not null;uniqueIndex:idx_ledger_owner" json:"year"`
	EntitledDays    float64    `gorm:"not null;default:0" json:"entitled_days"`
	AccruedDays     float64    `gorm:"not null;default:0" json:"accrued_days"`
	UsedDays        float64    `gorm:"not null;default:0" json:"used_days"`
	CarriedOverDays float64    `gorm:"not null;default:0" json:"carried_over_days"`
	AdjustmentDays  float64    `gorm:"not null;default:0" json:"adjustment_days"`
	CarryoverExpiry *time.Time `gorm:"type:date" json:"carryover_expiry,omitempty"`
	Version         int64      `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (BalanceLedger) TableName() string {
	return "balance_ledgers"
}

// Remaining returns the spendable balance at the given instant. Carried-over
// days stop counting once their expiry date has passed.
func (l BalanceLedger) Remaining(asOf time.Time) float64 {
	carried := l.CarriedOverDays
	if l.CarryoverExpiry != nil && asOf.After(*l.CarryoverExpiry) {
		carried = 0
	}
	return l.EntitledDays + l.AccruedDays + carried + l.AdjustmentDays - l.UsedDays
}

// AccrualConfig drives the periodic accrual job for one leave type.
type AccrualConfig struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_accrual_cfg" json:"company_id"`
	LeaveTypeID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_accrual_cfg" json:"leave_type_id"`
	Frequency             string         `gorm:"type:varchar(10);not null" json:"frequency"`
	DaysPerPeriod         float64        `gorm:"not null" json:"days_per_period"`
	MaxBalance            float64        `gorm:"not null;default:0" json:"max_balance"`
	CarryoverLimit        float64        `gorm:"not null;default:0" json:"carryover_limit"`
	CarryoverExpiryMonths int            `gorm:"not null;default:0" json:"carryover_expiry_months"`
	// Pause flags skip crediting employees who should not accrue while away,
	// either on an unpaid pausing leave or suspended outright.
	PauseDuringUnpaidLeave bool           `gorm:"not null;default:false" json:"pause_during_unpaid_leave"`
	PauseDuringSuspension  bool           `gorm:"not null;default:false" json:"pause_during_suspension"`
	Active                 bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AccrualConfig) TableName() string {
	return "accrual_configs"
}

// AccrualPosting makes accrual runs idempotent. The unique key rejects a
// second posting for the same employee, leave type and period, so re-running
// a job never double-credits.
type AccrualPosting struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accrual_posting" json:"company_id"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accrual_posting" json:"employee_id"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accrual_posting" json:"leave_type_id"`
	Period      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_accrual_posting" json:"period"`
	Days        float64   `gorm:"not null" json:"days"`
	CreatedAt   time.Time `json:"created_at"`
}

func (AccrualPosting) TableName() string {
	return "accrual_postings"
}

// CarryoverPosting plays the same idempotency role for year-end carryover.
// Year is the target year the days were carried into.
type CarryoverPosting struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_carryover_posting" json:"company_id"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_carryover_posting" json:"employee_id"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_carryover_posting" json:"leave_type_id"`
	Year        int       `gorm:"not null;uniqueIndex:idx_carryover_posting" json:"year"`
	Days        float64   `gorm:"not null" json:"days"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CarryoverPosting) TableName() string {
	return "carryover_postings"
}
