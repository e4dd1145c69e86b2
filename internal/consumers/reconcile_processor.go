package consumers

import (
	"context"
	"log"

	"payout-service/internal/services"
)

// ReconcileProcessor executes queued background work: reconciliation sweeps
// and bank directory refreshes.
type ReconcileProcessor struct {
	Reconcile *services.ReconcileService
	Banks     *services.BankService
}

func NewReconcileProcessor(reconcile *services.ReconcileService, banks *services.BankService) *ReconcileProcessor {
	return &ReconcileProcessor{Reconcile: reconcile, Banks: banks}
}

func (p *ReconcileProcessor) ProcessReconcile(ctx context.Context, scope services.ReconcileScope) error {
	summary, err := p.Reconcile.Reconcile(ctx, scope)
	if err != nil {
		log.Printf("reconcile sweep failed: %v", err)
		return err
	}
	log.Printf("reconcile sweep: checked=%d resolved=%d refunded=%d still_pending=%d",
		summary.Checked, summary.Resolved, summary.Refunded, summary.StillPending)
	return nil
}

func (p *ReconcileProcessor) ProcessBankSync(ctx context.Context) error {
	synced, err := p.Banks.SyncBanks(ctx)
	if err != nil {
		log.Printf("bank sync failed: %v", err)
		return err
	}
	log.Printf("bank sync: %d banks refreshed", synced)
	return nil
}
