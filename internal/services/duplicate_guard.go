package services

import (
	"time"

	"payout-service/internal/models"

	"gorm.io/gorm"
)

// DuplicateGuard rejects a new transfer when an equivalent one (same
// merchant, same destination account) was accepted inside a short trailing
// window. It is a safety net against double submission, not an idempotency
// key; the client_ref_id covers the latter.
type DuplicateGuard struct {
	DB     *gorm.DB
	Window time.Duration
}

func NewDuplicateGuard(db *gorm.DB, window time.Duration) *DuplicateGuard {
	return &DuplicateGuard{DB: db, Window: window}
}

// Check returns a DuplicateRequestError when a live or succeeded transfer to
// the same destination exists inside the window, nil otherwise. Lookup
// errors other than not-found are surfaced so the caller can fail closed.
func (g *DuplicateGuard) Check(merchantId int, accountNumber string) error {
	cutoff := time.Now().Add(-g.Window)

	var prior models.PayoutTransaction
	err := g.DB.
		Where("merchant_id = ? AND account_number = ?", merchantId, accountNumber).
		Where("status IN ?", []string{models.PayoutStatusPending, models.PayoutStatusProcessing, models.PayoutStatusSuccess}).
		Where("created_at >= ?", cutoff).
		Order("created_at DESC").
		First(&prior).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return &InternalFailureError{Op: "duplicate check", Err: err}
	}

	remaining := int(g.Window.Seconds() - time.Since(prior.CreatedAt).Seconds())
	if remaining < 1 {
		remaining = 1
	}
	return &DuplicateRequestError{
		WaitSeconds: remaining,
		PriorId:     prior.ID,
		PriorStatus: prior.Status,
		PriorAmount: prior.Amount,
	}
}
