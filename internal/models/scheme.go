package models

import (
	"time"
)

// Charge slab types.
const (
	ChargeTypeFlat    = "FLAT"
	ChargeTypePercent = "PERCENT"
)

// ServiceTypeAny matches every service type when used on an assignment.
const ServiceTypeAny = "*"

// ServiceTypePayout is the service type the transfer engine prices against.
const ServiceTypePayout = "payout"

type Scheme struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:150;not null" json:"name"`
	Status    int       `gorm:"column:status;default:1" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Scheme) TableName() string {
	return "schemes"
}

// SchemeAssignment binds a scheme to a merchant, distributor or master
// distributor. Lower Priority wins when several assignments are active.
type SchemeAssignment struct {
	ID            int        `gorm:"primaryKey;autoIncrement" json:"id"`
	SchemeId      int        `gorm:"column:scheme_id;not null;index" json:"scheme_id"`
	AssigneeId    int        `gorm:"column:assignee_id;not null;index" json:"assignee_id"`
	ServiceType   string     `gorm:"column:service_type;size:50;default:*" json:"service_type"`
	Priority      int        `gorm:"column:priority;default:0" json:"priority"`
	EffectiveFrom *time.Time `gorm:"column:effective_from" json:"effective_from"`
	EffectiveTo   *time.Time `gorm:"column:effective_to" json:"effective_to"`
	Status        int        `gorm:"column:status;default:1" json:"status"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SchemeAssignment) TableName() string {
	return "scheme_assignments"
}

type ChargeSlab struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	SchemeId     int       `gorm:"column:scheme_id;not null;index" json:"scheme_id"`
	TransferMode string    `gorm:"column:transfer_mode;size:10;not null" json:"transfer_mode"`
	MinAmount    float64   `gorm:"column:min_amount;type:decimal(20,2);default:0.00" json:"min_amount"`
	MaxAmount    float64   `gorm:"column:max_amount;type:decimal(20,2);not null" json:"max_amount"`
	ChargeType   string    `gorm:"column:charge_type;size:10;default:FLAT" json:"charge_type"`
	ChargeValue  float64   `gorm:"column:charge_value;type:decimal(20,4);not null" json:"charge_value"`
	Status       int       `gorm:"column:status;default:1" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ChargeSlab) TableName() string {
	return "charge_slabs"
}
