package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"payout-service/internal/config"
	"payout-service/internal/models"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Task types shared with the worker binary.
const (
	TaskTypeReconcile = "payout-reconcile"
	TaskTypeBankSync  = "bank-sync"
)

// ReconcileService converges payouts left in an ambiguous state. It only
// touches rows older than the staleness threshold, so it is safe to run
// concurrently with live traffic, and every action it takes is guarded so
// repeat runs are no-ops.
type ReconcileService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Provider ProviderAPI
	Cfg      config.Payout
	Queue    *asynq.Client
}

func NewReconcileService(db *gorm.DB, ledger *LedgerService, provider ProviderAPI, cfg config.Payout, queue *asynq.Client) *ReconcileService {
	return &ReconcileService{DB: db, Ledger: ledger, Provider: provider, Cfg: cfg, Queue: queue}
}

type ReconcileScope struct {
	MerchantId int   `json:"merchant_id"`
	Ids        []int `json:"ids"`
}

type ReconcileSummary struct {
	Checked      int `json:"checked"`
	Resolved     int `json:"resolved"`
	Refunded     int `json:"refunded"`
	StillPending int `json:"still_pending"`
}

// Reconcile processes one batch of stale payouts, oldest first.
func (s *ReconcileService) Reconcile(ctx context.Context, scope ReconcileScope) (ReconcileSummary, error) {
	var summary ReconcileSummary

	cutoff := time.Now().Add(-s.Cfg.StaleAfter)
	query := s.DB.
		Where("status IN ?", []string{models.PayoutStatusPending, models.PayoutStatusProcessing}).
		Where("created_at < ?", cutoff)
	if scope.MerchantId != 0 {
		query = query.Where("merchant_id = ?", scope.MerchantId)
	}
	if len(scope.Ids) > 0 {
		query = query.Where("id IN ?", scope.Ids)
	}

	var payouts []models.PayoutTransaction
	if err := query.Order("created_at ASC").Limit(s.Cfg.ReconcileBatchSize).Find(&payouts).Error; err != nil {
		return summary, err
	}

	for i := range payouts {
		payout := &payouts[i]
		summary.Checked++

		if payout.ProviderTrxId != "" {
			s.resolveAcknowledged(ctx, payout, &summary)
		} else {
			s.resolveUnacknowledged(payout, &summary)
		}
	}

	return summary, nil
}

// resolveAcknowledged polls the provider for a payout it has committed to
// act on and adopts any terminal answer.
func (s *ReconcileService) resolveAcknowledged(ctx context.Context, payout *models.PayoutTransaction, summary *ReconcileSummary) {
	status, err := s.Provider.GetStatus(ctx, payout.ProviderTrxId)
	if err != nil {
		log.Printf("reconcile: payout %d status query failed: %v", payout.ID, err)
		summary.StillPending++
		return
	}

	switch status.Status {
	case ProviderStatusSuccess:
		now := time.Now()
		err := s.DB.Model(payout).Updates(map[string]interface{}{
			"status":          models.PayoutStatusSuccess,
			"provider_ref_no": status.OperatorRef,
			"completed_at":    &now,
		}).Error
		if err != nil {
			log.Printf("reconcile: payout %d adopt success failed: %v", payout.ID, err)
			summary.StillPending++
			return
		}
		s.completeDebitEntry(payout.ID)
		summary.Resolved++

	case ProviderStatusFailure:
		if s.refundOnce(payout, models.PayoutStatusFailed, "provider reported failure: "+status.Message) {
			summary.Resolved++
		} else {
			summary.StillPending++
		}

	default:
		summary.StillPending++
	}
}

// resolveUnacknowledged handles payouts the provider never acknowledged. A
// missing provider id is only proof of an unresolved timeout, so funds stay
// quarantined until the long auto-refund threshold passes.
func (s *ReconcileService) resolveUnacknowledged(payout *models.PayoutTransaction, summary *ReconcileSummary) {
	if time.Since(payout.CreatedAt) < s.Cfg.AutoRefundAfter {
		summary.StillPending++
		return
	}

	reason := fmt.Sprintf("auto-refunded: no provider acknowledgement after %.0f hours", s.Cfg.AutoRefundAfter.Hours())
	if s.refundOnce(payout, models.PayoutStatusRefunded, reason) {
		summary.Refunded++
	} else {
		summary.StillPending++
	}
}

// refundOnce issues the full refund for a payout exactly once, then moves it
// to finalStatus. Returns false when nothing could be done this run.
func (s *ReconcileService) refundOnce(payout *models.PayoutTransaction, finalStatus, reason string) bool {
	refunded, err := s.Ledger.HasRefund(payout.ID)
	if err != nil {
		log.Printf("reconcile: payout %d refund lookup failed: %v", payout.ID, err)
		return false
	}

	if !refunded && payout.WalletDebited {
		_, err := s.Ledger.Refund(payout.MerchantId, payout.ID, payout.TotalDebited,
			"Refund for payout "+payout.ClientRefId, payout.ClientRefId)
		if err != nil {
			log.Printf("reconcile: payout %d REFUND FAILED for %.2f: %v", payout.ID, payout.TotalDebited, err)
			return false
		}
		s.failDebitEntry(payout.ID)
	}

	now := time.Now()
	err = s.DB.Model(&models.PayoutTransaction{}).
		Where("id = ? AND status IN ?", payout.ID, []string{models.PayoutStatusPending, models.PayoutStatusProcessing}).
		Updates(map[string]interface{}{
			"status":         finalStatus,
			"failure_reason": reason,
			"completed_at":   &now,
		}).Error
	if err != nil {
		log.Printf("reconcile: payout %d status update failed: %v", payout.ID, err)
		return false
	}
	return true
}

// completeDebitEntry finishes a debit entry left pending by a crash between
// reservation and provider call bookkeeping.
func (s *ReconcileService) completeDebitEntry(payoutId int) {
	s.DB.Model(&models.LedgerEntry{}).
		Where("payout_id = ? AND trx_type = ? AND status = ?", payoutId, models.LedgerTypeDebit, models.LedgerStatusPending).
		Update("status", models.LedgerStatusCompleted)
}

func (s *ReconcileService) failDebitEntry(payoutId int) {
	s.DB.Model(&models.LedgerEntry{}).
		Where("payout_id = ? AND trx_type = ? AND status = ?", payoutId, models.LedgerTypeDebit, models.LedgerStatusPending).
		Update("status", models.LedgerStatusFailed)
}

// StartScheduler enqueues the periodic reconciliation and the daily bank
// directory refresh for the worker binary to pick up.
func (s *ReconcileService) StartScheduler() {
	c := cron.New()

	_, err := c.AddFunc("*/10 * * * *", func() {
		task := asynq.NewTask(TaskTypeReconcile, nil)
		if _, err := s.Queue.Enqueue(task, asynq.TaskID(fmt.Sprintf("reconcile:%s", time.Now().Format("2006-01-02T15:04")))); err != nil {
			log.Printf("failed to enqueue reconcile task: %v", err)
		}
	})
	if err != nil {
		log.Printf("error scheduling reconciliation: %v", err)
		return
	}

	_, err = c.AddFunc("0 2 * * *", func() {
		task := asynq.NewTask(TaskTypeBankSync, nil)
		if _, err := s.Queue.Enqueue(task, asynq.TaskID(fmt.Sprintf("bank-sync:%s", time.Now().Format("2006-01-02")))); err != nil {
			log.Printf("failed to enqueue bank sync task: %v", err)
		}
	})
	if err != nil {
		log.Printf("error scheduling bank sync: %v", err)
		return
	}

	c.Start()
	log.Println("Reconciliation scheduler started (every 10 minutes, bank sync daily)")
}
