package models

import (
	"time"
)

// Bank mirrors the provider's bank directory, refreshed by the sync job.
type Bank struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	BankId      string    `gorm:"column:bank_id;size:20;not null;uniqueIndex" json:"bank_id"`
	Name        string    `gorm:"column:name;size:150;not null" json:"name"`
	ImpsEnabled bool      `gorm:"column:imps_enabled;default:false" json:"imps_enabled"`
	NeftEnabled bool      `gorm:"column:neft_enabled;default:false" json:"neft_enabled"`
	Status      int       `gorm:"column:status;default:1" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Bank) TableName() string {
	return "banks"
}
