package models

import (
	"time"
)

type Wallet struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantId        int       `gorm:"column:merchant_id;not null;uniqueIndex:idx_wallet_merchant" json:"merchant_id"`
	AvailableBalance  float64   `gorm:"column:available_balance;type:decimal(20,2);default:0.00" json:"available_balance"`
	SettlementBalance float64   `gorm:"column:settlement_balance;type:decimal(20,2);default:0.00" json:"settlement_balance"`
	Currency          string    `gorm:"column:currency;size:10;default:INR" json:"currency"`
	Status            int       `gorm:"column:status;default:1" json:"status"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}
