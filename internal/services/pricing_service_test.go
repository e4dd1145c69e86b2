package services

import (
	"testing"
	"time"

	"payout-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSlabCharge(t *testing.T) {
	flat := models.ChargeSlab{ChargeType: models.ChargeTypeFlat, ChargeValue: 7.5}
	assert.Equal(t, 7.5, SlabCharge(flat, 5000))

	percent := models.ChargeSlab{ChargeType: models.ChargeTypePercent, ChargeValue: 1.0}
	assert.Equal(t, 5.0, SlabCharge(percent, 500))

	// Round half up at 2dp: 333.33 * 0.5% = 1.66665 -> 1.67
	percent.ChargeValue = 0.5
	assert.Equal(t, 1.67, SlabCharge(percent, 333.33))
}

func TestResolveFallsBackToStaticDefault(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewPricingService(testDB, testPayoutConfig())

	// No merchant, no schemes: the static default per mode answers.
	res := svc.Resolve(777, models.ServiceTypePayout, 500, models.TransferModeIMPS)
	assert.Equal(t, 10.0, res.Charge)
	assert.Nil(t, res.SchemeId)

	res = svc.Resolve(777, models.ServiceTypePayout, 500, models.TransferModeNEFT)
	assert.Equal(t, 5.0, res.Charge)
}

func TestResolveDirectAssignment(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedMerchantWithWallet(10, 0)
	testDB.Create(&models.Scheme{ID: 1, Name: "Retail Gold", Status: 1})
	testDB.Create(&models.SchemeAssignment{SchemeId: 1, AssigneeId: 10, ServiceType: models.ServiceTypeAny, Status: 1})
	testDB.Create(&models.ChargeSlab{
		SchemeId: 1, TransferMode: models.TransferModeIMPS,
		MinAmount: 0, MaxAmount: 1000, ChargeType: models.ChargeTypeFlat, ChargeValue: 5, Status: 1,
	})

	svc := NewPricingService(testDB, testPayoutConfig())
	res := svc.Resolve(10, models.ServiceTypePayout, 500, models.TransferModeIMPS)

	assert.Equal(t, 5.0, res.Charge)
	assert.NotNil(t, res.SchemeId)
	assert.Equal(t, "Retail Gold", res.SchemeName)
}

func TestResolveInheritsFromDistributor(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	distributorId := 20
	testDB.Create(&models.Merchant{ID: distributorId, Name: "Distro", Role: models.RoleDistributor, Status: 1})
	testDB.Create(&models.Merchant{
		ID: 21, Name: "Retailer", Role: models.RoleRetailer,
		DistributorId: &distributorId, Status: 1,
	})

	testDB.Create(&models.Scheme{ID: 2, Name: "Distro Scheme", Status: 1})
	testDB.Create(&models.SchemeAssignment{SchemeId: 2, AssigneeId: distributorId, ServiceType: models.ServiceTypePayout, Status: 1})
	testDB.Create(&models.ChargeSlab{
		SchemeId: 2, TransferMode: models.TransferModeIMPS,
		MinAmount: 0, MaxAmount: 100000, ChargeType: models.ChargeTypePercent, ChargeValue: 1, Status: 1,
	})

	svc := NewPricingService(testDB, testPayoutConfig())
	res := svc.Resolve(21, models.ServiceTypePayout, 500, models.TransferModeIMPS)

	assert.Equal(t, 5.0, res.Charge)
	assert.Equal(t, "Distro Scheme", res.SchemeName)
}

func TestResolveIgnoresExpiredAssignment(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedMerchantWithWallet(30, 0)
	expired := time.Now().Add(-24 * time.Hour)
	testDB.Create(&models.Scheme{ID: 3, Name: "Old Scheme", Status: 1})
	testDB.Create(&models.SchemeAssignment{
		SchemeId: 3, AssigneeId: 30, ServiceType: models.ServiceTypeAny,
		EffectiveTo: &expired, Status: 1,
	})
	testDB.Create(&models.ChargeSlab{
		SchemeId: 3, TransferMode: models.TransferModeIMPS,
		MinAmount: 0, MaxAmount: 100000, ChargeType: models.ChargeTypeFlat, ChargeValue: 1, Status: 1,
	})

	svc := NewPricingService(testDB, testPayoutConfig())
	res := svc.Resolve(30, models.ServiceTypePayout, 500, models.TransferModeIMPS)

	// Expired assignment is skipped; static default applies.
	assert.Equal(t, 10.0, res.Charge)
	assert.Nil(t, res.SchemeId)
}

func TestResolveSchemeWithoutSlabFallsThrough(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedMerchantWithWallet(40, 0)
	testDB.Create(&models.Scheme{ID: 4, Name: "No Slabs", Status: 1})
	testDB.Create(&models.SchemeAssignment{SchemeId: 4, AssigneeId: 40, ServiceType: models.ServiceTypeAny, Status: 1})
	// Slab only covers NEFT; an IMPS request finds nothing and degrades.
	testDB.Create(&models.ChargeSlab{
		SchemeId: 4, TransferMode: models.TransferModeNEFT,
		MinAmount: 0, MaxAmount: 100000, ChargeType: models.ChargeTypeFlat, ChargeValue: 2, Status: 1,
	})

	svc := NewPricingService(testDB, testPayoutConfig())
	res := svc.Resolve(40, models.ServiceTypePayout, 500, models.TransferModeIMPS)

	assert.Equal(t, 10.0, res.Charge)
	assert.Nil(t, res.SchemeId)
}

func TestResolveUsesMerchantDefaultScheme(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	schemeId := 5
	testDB.Create(&models.Merchant{ID: 50, Name: "Pinned", SchemeId: &schemeId, Status: 1})
	testDB.Create(&models.Scheme{ID: schemeId, Name: "Pinned Scheme", Status: 1})
	// No assignment rows at all; the secondary direct lookup must find it.
	testDB.Create(&models.ChargeSlab{
		SchemeId: schemeId, TransferMode: models.TransferModeIMPS,
		MinAmount: 0, MaxAmount: 100000, ChargeType: models.ChargeTypeFlat, ChargeValue: 3, Status: 1,
	})

	svc := NewPricingService(testDB, testPayoutConfig())
	res := svc.Resolve(50, models.ServiceTypePayout, 500, models.TransferModeIMPS)

	assert.Equal(t, 3.0, res.Charge)
	assert.Equal(t, "Pinned Scheme", res.SchemeName)
}
