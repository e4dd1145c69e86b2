package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"payout-service/internal/config"
	"payout-service/internal/models"
	"payout-service/pkg/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	ifscPattern   = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// TransferService drives a payout through its state machine:
// pending -> processing -> {success, failed, refunded}. Only this service
// and the reconciliation job write payout rows.
type TransferService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Pricing  *PricingService
	Guard    *DuplicateGuard
	Provider ProviderAPI
	Cfg      config.Payout
}

func NewTransferService(db *gorm.DB, ledger *LedgerService, pricing *PricingService, guard *DuplicateGuard, provider ProviderAPI, cfg config.Payout) *TransferService {
	return &TransferService{
		DB:       db,
		Ledger:   ledger,
		Pricing:  pricing,
		Guard:    guard,
		Provider: provider,
		Cfg:      cfg,
	}
}

type TransferRequest struct {
	MerchantId        int     `json:"merchant_id"`
	AccountNumber     string  `json:"account_number"`
	IfscCode          string  `json:"ifsc_code"`
	BeneficiaryName   string  `json:"beneficiary_name"`
	BankId            string  `json:"bank_id"`
	BankName          string  `json:"bank_name"`
	TransferMode      string  `json:"transfer_mode"`
	Amount            float64 `json:"amount"`
	BeneficiaryMobile string  `json:"beneficiary_mobile"`
	Remarks           string  `json:"remarks"`
	ClientRefId       string  `json:"client_ref_id"`
}

// TransferReceipt is what the caller sees for an accepted attempt. Status is
// SUCCESS when the provider settled synchronously, PROCESSING when the
// outcome is deferred (accepted or ambiguous timeout).
type TransferReceipt struct {
	Status        string  `json:"status"`
	TransactionId int     `json:"transaction_id"`
	ClientRefId   string  `json:"client_ref_id"`
	ProviderTrxId string  `json:"provider_trx_id,omitempty"`
	ProviderRefNo string  `json:"provider_ref_no,omitempty"`
	Amount        float64 `json:"amount"`
	Charge        float64 `json:"charge"`
	TotalDebited  float64 `json:"total_debited"`
	MaskedAccount string  `json:"account_number"`
	SchemeName    string  `json:"scheme_name,omitempty"`
}

func (s *TransferService) validate(req TransferRequest) error {
	if req.MerchantId == 0 {
		return validationErrorf("merchant_id is required")
	}
	if req.AccountNumber == "" {
		return validationErrorf("account_number is required")
	}
	if req.BeneficiaryName == "" {
		return validationErrorf("beneficiary_name is required")
	}
	if !ifscPattern.MatchString(req.IfscCode) {
		return validationErrorf("ifsc_code %q is not a valid IFSC", req.IfscCode)
	}
	if req.TransferMode != models.TransferModeIMPS && req.TransferMode != models.TransferModeNEFT {
		return validationErrorf("transfer_mode must be IMPS or NEFT")
	}
	if req.BeneficiaryMobile != "" && !mobilePattern.MatchString(req.BeneficiaryMobile) {
		return validationErrorf("beneficiary_mobile must be a valid 10-digit mobile number")
	}
	if req.Amount < s.Cfg.MinAmount {
		return validationErrorf("minimum transfer amount is %.2f", s.Cfg.MinAmount)
	}
	if req.Amount > s.Cfg.MaxAmount {
		return validationErrorf("maximum transfer amount is %.2f", s.Cfg.MaxAmount)
	}
	return nil
}

// SubmitTransfer validates, prices, reserves funds and calls the provider.
// No transaction row or ledger entry survives a rejection before the
// reservation; after the reservation every outcome leaves the row in a
// well-defined state.
func (s *TransferService) SubmitTransfer(ctx context.Context, req TransferRequest) (*TransferReceipt, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	var merchant models.Merchant
	if err := s.DB.Where("id = ? AND status = 1", req.MerchantId).First(&merchant).Error; err != nil {
		return nil, validationErrorf("merchant %d not found or inactive", req.MerchantId)
	}

	// A replayed client_ref_id is a recognized retry, not a new transfer.
	// The ref is honored only for its owner, and retrying a dead transfer
	// returns the original failure rather than a live-looking receipt.
	if req.ClientRefId != "" {
		var prior models.PayoutTransaction
		if err := s.DB.Where("client_ref_id = ?", req.ClientRefId).First(&prior).Error; err == nil {
			if prior.MerchantId != req.MerchantId {
				return nil, validationErrorf("client_ref_id %q is already in use", req.ClientRefId)
			}
			switch prior.Status {
			case models.PayoutStatusFailed, models.PayoutStatusRefunded:
				return nil, &ProviderRejectedError{Reason: prior.FailureReason}
			}
			return s.receiptFor(&prior), nil
		}
	} else {
		req.ClientRefId = uuid.NewString()
	}

	if err := s.Guard.Check(req.MerchantId, req.AccountNumber); err != nil {
		return nil, err
	}

	pricing := s.Pricing.Resolve(req.MerchantId, models.ServiceTypePayout, req.Amount, req.TransferMode)
	totalDebited := common.AddMoney(req.Amount, pricing.Charge)

	// The float check keeps us from promising a transfer the provider cannot
	// fund. An unreachable balance endpoint does not block the transfer.
	if floatBalance, err := s.Provider.GetFloatBalance(ctx); err != nil {
		log.Printf("payout: float balance check degraded: %v", err)
	} else if floatBalance < req.Amount {
		return nil, ErrProviderUnderfunded
	}

	payout := models.PayoutTransaction{
		MerchantId:      req.MerchantId,
		AccountNumber:   req.AccountNumber,
		IfscCode:        req.IfscCode,
		BeneficiaryName: req.BeneficiaryName,
		BankId:          req.BankId,
		BankName:        req.BankName,
		TransferMode:    req.TransferMode,
		Amount:          req.Amount,
		Charge:          pricing.Charge,
		TotalDebited:    totalDebited,
		ClientRefId:     req.ClientRefId,
		SchemeId:        pricing.SchemeId,
		SchemeName:      pricing.SchemeName,
		Status:          models.PayoutStatusPending,
	}
	if err := s.DB.Create(&payout).Error; err != nil {
		return nil, &InternalFailureError{Op: "creating payout record", Err: err}
	}

	description := fmt.Sprintf("%s transfer of %.2f to %s", req.TransferMode, req.Amount, common.MaskAccountNumber(req.AccountNumber))
	entryId, err := s.Ledger.Reserve(req.MerchantId, payout.ID, totalDebited, description, req.ClientRefId)
	if err != nil {
		// Nothing was debited; drop the never-activated row so a rejected
		// request leaves no trace.
		s.DB.Delete(&models.PayoutTransaction{}, payout.ID)
		return nil, err
	}

	err = s.DB.Model(&payout).Updates(map[string]interface{}{
		"status":         models.PayoutStatusProcessing,
		"wallet_debited": true,
		"debit_ref_id":   req.ClientRefId,
	}).Error
	if err != nil {
		// Funds are reserved but the row cannot record it; refund
		// defensively rather than strand the debit.
		s.failAndRefund(&payout, entryId, "internal error before provider call")
		return nil, &InternalFailureError{Op: "activating payout record", Err: err}
	}
	payout.Status = models.PayoutStatusProcessing

	result := s.Provider.InitiateTransfer(ctx, InitiateTransferRequest{
		PayoutId:          payout.ID,
		AccountNumber:     req.AccountNumber,
		IfscCode:          req.IfscCode,
		BeneficiaryName:   req.BeneficiaryName,
		Amount:            req.Amount,
		Mode:              req.TransferMode,
		BankId:            req.BankId,
		BankName:          req.BankName,
		BeneficiaryMobile: req.BeneficiaryMobile,
		SenderName:        merchant.Name,
		SenderMobile:      merchant.Mobile,
		SenderEmail:       merchant.Email,
		Remarks:           req.Remarks,
		ClientRefId:       req.ClientRefId,
	})

	switch {
	case result.Success:
		updates := map[string]interface{}{"provider_trx_id": result.TransactionId}
		if result.Status == ProviderStatusSuccess {
			now := time.Now()
			updates["status"] = models.PayoutStatusSuccess
			updates["completed_at"] = &now
			payout.Status = models.PayoutStatusSuccess
		}
		if err := s.DB.Model(&payout).Updates(updates).Error; err != nil {
			log.Printf("payout %d: failed to record provider acceptance: %v", payout.ID, err)
		}
		payout.ProviderTrxId = result.TransactionId
		if err := s.Ledger.MarkEntryStatus(entryId, models.LedgerStatusCompleted); err != nil {
			log.Printf("payout %d: failed to complete ledger entry %d: %v", payout.ID, entryId, err)
		}
		return s.receiptFor(&payout), nil

	case result.IsTimeout:
		// Ambiguous: the transfer may be live at the provider. No refund;
		// funds stay committed and the reconciliation job resolves it.
		if err := s.Ledger.MarkEntryStatus(entryId, models.LedgerStatusCompleted); err != nil {
			log.Printf("payout %d: failed to complete ledger entry %d: %v", payout.ID, entryId, err)
		}
		log.Printf("payout %d: provider timeout, deferred to reconciliation", payout.ID)
		return s.receiptFor(&payout), nil

	default:
		// Explicit rejection: refund in full, immediately.
		s.failAndRefund(&payout, entryId, result.Message)
		return nil, &ProviderRejectedError{Reason: result.Message}
	}
}

// failAndRefund runs the rejection sequence: refund the full total debited,
// mark the debit entry failed and move the payout to failed.
func (s *TransferService) failAndRefund(payout *models.PayoutTransaction, entryId int, reason string) {
	if _, err := s.Ledger.Refund(payout.MerchantId, payout.ID, payout.TotalDebited,
		"Refund for failed payout "+payout.ClientRefId, payout.ClientRefId); err != nil {
		// Money-path errors are never swallowed silently; this one demands
		// operator attention since the merchant is out of pocket until fixed.
		log.Printf("payout %d: REFUND FAILED for %.2f: %v", payout.ID, payout.TotalDebited, err)
	}
	if err := s.Ledger.MarkEntryStatus(entryId, models.LedgerStatusFailed); err != nil {
		log.Printf("payout %d: failed to mark debit entry failed: %v", payout.ID, err)
	}

	now := time.Now()
	err := s.DB.Model(payout).Updates(map[string]interface{}{
		"status":         models.PayoutStatusFailed,
		"failure_reason": reason,
		"completed_at":   &now,
	}).Error
	if err != nil {
		log.Printf("payout %d: failed to record failure: %v", payout.ID, err)
	}
	payout.Status = models.PayoutStatusFailed
	payout.FailureReason = reason
}

func (s *TransferService) receiptFor(payout *models.PayoutTransaction) *TransferReceipt {
	status := "PROCESSING"
	if payout.Status == models.PayoutStatusSuccess {
		status = "SUCCESS"
	}
	return &TransferReceipt{
		Status:        status,
		TransactionId: payout.ID,
		ClientRefId:   payout.ClientRefId,
		ProviderTrxId: payout.ProviderTrxId,
		ProviderRefNo: payout.ProviderRefNo,
		Amount:        payout.Amount,
		Charge:        payout.Charge,
		TotalDebited:  payout.TotalDebited,
		MaskedAccount: common.MaskAccountNumber(payout.AccountNumber),
		SchemeName:    payout.SchemeName,
	}
}

// PayoutSnapshot is the read-model returned by status and listing calls;
// account numbers are masked on the way out.
type PayoutSnapshot struct {
	models.PayoutTransaction
	AccountNumber string `json:"account_number"`
}

func snapshotOf(p models.PayoutTransaction) PayoutSnapshot {
	return PayoutSnapshot{PayoutTransaction: p, AccountNumber: common.MaskAccountNumber(p.AccountNumber)}
}

// GetStatus finds a payout by numeric id, client reference or provider
// transaction id.
func (s *TransferService) GetStatus(idOrRef string) (PayoutSnapshot, error) {
	var payout models.PayoutTransaction
	var err error
	if id, convErr := strconv.Atoi(idOrRef); convErr == nil {
		err = s.DB.First(&payout, id).Error
	} else {
		err = s.DB.Where("client_ref_id = ? OR provider_trx_id = ?", idOrRef, idOrRef).First(&payout).Error
	}
	if err != nil {
		return PayoutSnapshot{}, ErrPayoutNotFound
	}
	return snapshotOf(payout), nil
}

type ListPayoutsQuery struct {
	MerchantId int
	Status     string
	From       string
	To         string
	Page       int
	Limit      int
}

func (s *TransferService) ListPayouts(q ListPayoutsQuery) (common.PaginationResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.PayoutTransaction{}).Where("merchant_id = ?", q.MerchantId)
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.From != "" && q.To != "" {
		query = query.Where("created_at BETWEEN ? AND ?", q.From, q.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var payouts []models.PayoutTransaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payouts).Error; err != nil {
		return common.PaginationResult{}, err
	}

	snapshots := make([]PayoutSnapshot, 0, len(payouts))
	for _, p := range payouts {
		snapshots = append(snapshots, snapshotOf(p))
	}

	return common.PaginateResponse(snapshots, total, page, limit, "Payouts fetched"), nil
}
