package models

import (
	"time"
)

// Payout lifecycle statuses. A row is created as pending, moves to
// processing once the wallet debit is confirmed, and is immutable after
// reaching success, failed or refunded.
const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusSuccess    = "success"
	PayoutStatusFailed     = "failed"
	PayoutStatusRefunded   = "refunded"
)

// Transfer rails supported by the provider.
const (
	TransferModeIMPS = "IMPS"
	TransferModeNEFT = "NEFT"
)

type PayoutTransaction struct {
	ID              int        `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantId      int        `gorm:"column:merchant_id;not null;index:idx_payout_merchant" json:"merchant_id"`
	AccountNumber   string     `gorm:"column:account_number;size:50;not null" json:"account_number"`
	IfscCode        string     `gorm:"column:ifsc_code;size:20;not null" json:"ifsc_code"`
	BeneficiaryName string     `gorm:"column:beneficiary_name;size:150" json:"beneficiary_name"`
	BankId          string     `gorm:"column:bank_id;size:20" json:"bank_id"`
	BankName        string     `gorm:"column:bank_name;size:150" json:"bank_name"`
	TransferMode    string     `gorm:"column:transfer_mode;size:10;not null" json:"transfer_mode"`
	Amount          float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Charge          float64    `gorm:"column:charge;type:decimal(20,2);default:0.00" json:"charge"`
	TotalDebited    float64    `gorm:"column:total_debited;type:decimal(20,2);not null" json:"total_debited"`
	ClientRefId     string     `gorm:"column:client_ref_id;size:100;uniqueIndex" json:"client_ref_id"`
	ProviderTrxId   string     `gorm:"column:provider_trx_id;size:100;index" json:"provider_trx_id"`
	ProviderRefNo   string     `gorm:"column:provider_ref_no;size:100" json:"provider_ref_no"`
	SchemeId        *int       `gorm:"column:scheme_id" json:"scheme_id"`
	SchemeName      string     `gorm:"column:scheme_name;size:150" json:"scheme_name"`
	Status          string     `gorm:"column:status;size:20;default:pending;index" json:"status"`
	FailureReason   string     `gorm:"column:failure_reason;type:text" json:"failure_reason"`
	WalletDebited   bool       `gorm:"column:wallet_debited;default:false" json:"wallet_debited"`
	DebitRefId      string     `gorm:"column:debit_ref_id;size:100" json:"debit_ref_id"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PayoutTransaction) TableName() string {
	return "payout_transactions"
}

// IsTerminal reports whether the row can no longer transition.
func (p *PayoutTransaction) IsTerminal() bool {
	switch p.Status {
	case PayoutStatusSuccess, PayoutStatusFailed, PayoutStatusRefunded:
		return true
	}
	return false
}
