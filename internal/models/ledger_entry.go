package models

import (
	"time"
)

// Movement types. Exactly one of CreditAmount/DebitAmount is non-zero per row.
const (
	LedgerTypeDebit  = "DEBIT"
	LedgerTypeCredit = "CREDIT"
	LedgerTypeRefund = "REFUND"
)

// Entry statuses. Monetary fields are write-once; status is the only field
// that transitions, and only pending -> completed|failed.
const (
	LedgerStatusPending   = "pending"
	LedgerStatusCompleted = "completed"
	LedgerStatusFailed    = "failed"
)

// Wallet categories a movement can be booked against.
const (
	LedgerCategoryCash       = "cash"
	LedgerCategoryOnline     = "online"
	LedgerCategorySettlement = "settlement"
)

type LedgerEntry struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantId   int       `gorm:"column:merchant_id;not null;index:idx_ledger_merchant" json:"merchant_id"`
	WalletType   string    `gorm:"column:wallet_type;size:20;default:main" json:"wallet_type"`
	Category     string    `gorm:"column:category;size:20;default:online" json:"category"`
	TrxType      string    `gorm:"column:trx_type;size:10;not null" json:"trx_type"`
	CreditAmount float64   `gorm:"column:credit_amount;type:decimal(20,2);default:0.00" json:"credit_amount"`
	DebitAmount  float64   `gorm:"column:debit_amount;type:decimal(20,2);default:0.00" json:"debit_amount"`
	ReferenceId  string    `gorm:"column:reference_id;size:100;index" json:"reference_id"`
	PayoutId     *int      `gorm:"column:payout_id;index" json:"payout_id"`
	Status       string    `gorm:"column:status;size:20;default:pending" json:"status"`
	Remarks      string    `gorm:"column:remarks;type:text" json:"remarks"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
