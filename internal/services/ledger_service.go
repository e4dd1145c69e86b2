package services

import (
	"errors"
	"fmt"

	"payout-service/internal/models"
	"payout-service/pkg/common"

	"gorm.io/gorm"
)

// LedgerService is the only writer of wallet balances and ledger entries.
// Every movement it books references exactly one payout attempt.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

func (s *LedgerService) Balance(merchantId int) (float64, error) {
	var wallet models.Wallet
	if err := s.DB.Where("merchant_id = ?", merchantId).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrWalletNotFound
		}
		return 0, err
	}
	return wallet.AvailableBalance, nil
}

// Reserve debits totalAmount from the merchant's wallet and books the DEBIT
// entry in one database transaction. The balance check and the debit are a
// single conditional UPDATE, so two concurrent reservations for the same
// merchant serialize on the wallet row and can never both pass on the same
// funds.
func (s *LedgerService) Reserve(merchantId, payoutId int, totalAmount float64, description, reference string) (int, error) {
	var entryId int

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wallet{}).
			Where("merchant_id = ? AND available_balance >= ?", merchantId, totalAmount).
			UpdateColumn("available_balance", gorm.Expr("available_balance - ?", totalAmount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var wallet models.Wallet
			if err := tx.Where("merchant_id = ?", merchantId).First(&wallet).Error; err != nil {
				return ErrWalletNotFound
			}
			return &InsufficientFundsError{Available: wallet.AvailableBalance, Required: totalAmount}
		}

		entry := models.LedgerEntry{
			MerchantId:  merchantId,
			TrxType:     models.LedgerTypeDebit,
			DebitAmount: totalAmount,
			ReferenceId: reference,
			PayoutId:    &payoutId,
			Status:      models.LedgerStatusPending,
			Remarks:     description,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		entryId = entry.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return entryId, nil
}

// Refund credits totalAmount back and books a REFUND entry. Refunds are not
// capacity-checked and always succeed against an existing wallet.
func (s *LedgerService) Refund(merchantId, payoutId int, totalAmount float64, description, reference string) (int, error) {
	var entryId int

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wallet{}).
			Where("merchant_id = ?", merchantId).
			UpdateColumn("available_balance", gorm.Expr("available_balance + ?", totalAmount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWalletNotFound
		}

		entry := models.LedgerEntry{
			MerchantId:   merchantId,
			TrxType:      models.LedgerTypeRefund,
			CreditAmount: totalAmount,
			ReferenceId:  "REFUND_" + reference,
			PayoutId:     &payoutId,
			Status:       models.LedgerStatusCompleted,
			Remarks:      description,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		entryId = entry.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return entryId, nil
}

// HasRefund reports whether a refund entry already references the payout.
// The reconciliation job uses it to stay idempotent.
func (s *LedgerService) HasRefund(payoutId int) (bool, error) {
	var count int64
	err := s.DB.Model(&models.LedgerEntry{}).
		Where("payout_id = ? AND trx_type = ?", payoutId, models.LedgerTypeRefund).
		Count(&count).Error
	return count > 0, err
}

// MarkEntryStatus applies the only mutation a ledger entry permits:
// pending -> completed|failed.
func (s *LedgerService) MarkEntryStatus(entryId int, status string) error {
	if status != models.LedgerStatusCompleted && status != models.LedgerStatusFailed {
		return fmt.Errorf("invalid ledger status transition to %q", status)
	}

	res := s.DB.Model(&models.LedgerEntry{}).
		Where("id = ? AND status = ?", entryId, models.LedgerStatusPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// Statement returns a merchant's ledger entries newest first.
func (s *LedgerService) Statement(merchantId, page, limit int) (common.PaginationResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.LedgerEntry{}).Where("merchant_id = ?", merchantId)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var entries []models.LedgerEntry
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(entries, total, page, limit, "Ledger entries fetched"), nil
}
