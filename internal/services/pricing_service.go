package services

import (
	"log"
	"time"

	"payout-service/internal/config"
	"payout-service/internal/models"
	"payout-service/pkg/common"

	"gorm.io/gorm"
)

// PricingService resolves the fee for a transfer. It is a pure read: lookup
// failures degrade down the strategy chain and the static default always
// answers, so a transfer can never be failed by pricing alone.
type PricingService struct {
	DB  *gorm.DB
	Cfg config.Payout
}

func NewPricingService(db *gorm.DB, cfg config.Payout) *PricingService {
	return &PricingService{DB: db, Cfg: cfg}
}

type PricingResult struct {
	Charge     float64 `json:"charge"`
	SchemeId   *int    `json:"scheme_id"`
	SchemeName string  `json:"scheme_name"`
}

type chargeStrategy func(merchantId int, serviceType string, amount float64, mode string) *PricingResult

// Resolve walks the strategy chain and returns the first hit. Order:
// scheme assignment hierarchy, the merchant's own default scheme, then the
// environment-configured flat fee per transfer mode.
func (s *PricingService) Resolve(merchantId int, serviceType string, amount float64, mode string) PricingResult {
	strategies := []chargeStrategy{
		s.hierarchyCharge,
		s.directSchemeCharge,
		s.defaultCharge,
	}

	for _, strategy := range strategies {
		if res := strategy(merchantId, serviceType, amount, mode); res != nil {
			return *res
		}
	}

	// Unreachable: defaultCharge always answers.
	return PricingResult{Charge: s.staticFee(mode)}
}

// hierarchyCharge resolves the effective scheme by walking the merchant's
// direct assignments, then its distributor's, then its master distributor's.
func (s *PricingService) hierarchyCharge(merchantId int, serviceType string, amount float64, mode string) *PricingResult {
	var merchant models.Merchant
	if err := s.DB.First(&merchant, merchantId).Error; err != nil {
		log.Printf("pricing: merchant %d lookup failed: %v", merchantId, err)
		return nil
	}

	assignees := []int{merchantId}
	if merchant.DistributorId != nil {
		assignees = append(assignees, *merchant.DistributorId)
	}
	if merchant.MasterDistributorId != nil {
		assignees = append(assignees, *merchant.MasterDistributorId)
	}

	for _, assigneeId := range assignees {
		scheme, ok := s.activeSchemeFor(assigneeId, serviceType)
		if !ok {
			continue
		}
		return s.schemeCharge(scheme, amount, mode)
	}
	return nil
}

// directSchemeCharge is the secondary lookup: the scheme pinned on the
// merchant row itself, bypassing the assignment table.
func (s *PricingService) directSchemeCharge(merchantId int, serviceType string, amount float64, mode string) *PricingResult {
	var merchant models.Merchant
	if err := s.DB.First(&merchant, merchantId).Error; err != nil || merchant.SchemeId == nil {
		return nil
	}

	var scheme models.Scheme
	if err := s.DB.Where("id = ? AND status = 1", *merchant.SchemeId).First(&scheme).Error; err != nil {
		return nil
	}
	return s.schemeCharge(scheme, amount, mode)
}

func (s *PricingService) defaultCharge(merchantId int, serviceType string, amount float64, mode string) *PricingResult {
	return &PricingResult{Charge: s.staticFee(mode)}
}

func (s *PricingService) staticFee(mode string) float64 {
	if mode == models.TransferModeNEFT {
		return s.Cfg.DefaultFeeNEFT
	}
	return s.Cfg.DefaultFeeIMPS
}

// activeSchemeFor finds the highest-priority live assignment for one
// assignee, filtered to assignments whose service type is exact or wildcard
// and whose effective window covers now.
func (s *PricingService) activeSchemeFor(assigneeId int, serviceType string) (models.Scheme, bool) {
	now := time.Now()

	var assignment models.SchemeAssignment
	err := s.DB.
		Where("assignee_id = ? AND status = 1", assigneeId).
		Where("service_type IN ?", []string{serviceType, models.ServiceTypeAny}).
		Where("effective_from IS NULL OR effective_from <= ?", now).
		Where("effective_to IS NULL OR effective_to >= ?", now).
		Order("priority ASC").
		First(&assignment).Error
	if err != nil {
		return models.Scheme{}, false
	}

	var scheme models.Scheme
	if err := s.DB.Where("id = ? AND status = 1", assignment.SchemeId).First(&scheme).Error; err != nil {
		return models.Scheme{}, false
	}
	return scheme, true
}

// schemeCharge looks up the slab covering the amount band and transfer mode.
// A resolved scheme with no usable slab yields nil so the chain falls
// through to the static default.
func (s *PricingService) schemeCharge(scheme models.Scheme, amount float64, mode string) *PricingResult {
	var slab models.ChargeSlab
	err := s.DB.
		Where("scheme_id = ? AND transfer_mode = ? AND status = 1", scheme.ID, mode).
		Where("min_amount <= ? AND max_amount >= ?", amount, amount).
		First(&slab).Error
	if err != nil {
		return nil
	}

	charge := SlabCharge(slab, amount)
	if charge <= 0 {
		return nil
	}

	schemeId := scheme.ID
	return &PricingResult{Charge: charge, SchemeId: &schemeId, SchemeName: scheme.Name}
}

// SlabCharge computes the fee a slab yields for an amount: the configured
// value for flat slabs, amount*rate/100 rounded half-up to 2dp for
// percentage slabs.
func SlabCharge(slab models.ChargeSlab, amount float64) float64 {
	if slab.ChargeType == models.ChargeTypePercent {
		return common.PercentOf(amount, slab.ChargeValue)
	}
	return slab.ChargeValue
}
