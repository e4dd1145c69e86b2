package models

import (
	"time"
)

// ProviderLog records every request/response exchanged with the transfer
// provider for audit and reconciliation disputes.
type ProviderLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PayoutId    *int      `gorm:"column:payout_id;index" json:"payout_id"`
	ClientRefId string    `gorm:"column:client_ref_id;size:100;index" json:"client_ref_id"`
	Operation   string    `gorm:"column:operation;size:50" json:"operation"`
	Request     string    `gorm:"column:request;type:longtext" json:"request"`
	Response    string    `gorm:"column:response;type:longtext" json:"response"`
	Success     bool      `gorm:"column:success;default:false" json:"success"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProviderLog) TableName() string {
	return "provider_logs"
}
