package services

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"payout-service/internal/config"
	"payout-service/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NOTE: These tests require a running MySQL instance. They skip when
// DATABASE_URL is not set so the pure unit tests still run everywhere.

var testDB *gorm.DB

func setup() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("Skipping DB tests: DATABASE_URL not set")
		return
	}

	var err error
	testDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return
	}

	testDB.AutoMigrate(
		&models.Merchant{},
		&models.Wallet{},
		&models.PayoutTransaction{},
		&models.LedgerEntry{},
		&models.Scheme{},
		&models.SchemeAssignment{},
		&models.ChargeSlab{},
		&models.Bank{},
		&models.ProviderLog{},
	)
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM payout_transactions")
		testDB.Exec("DELETE FROM ledger_entries")
		testDB.Exec("DELETE FROM wallets")
		testDB.Exec("DELETE FROM merchants")
		testDB.Exec("DELETE FROM schemes")
		testDB.Exec("DELETE FROM scheme_assignments")
		testDB.Exec("DELETE FROM charge_slabs")
		testDB.Exec("DELETE FROM banks")
		testDB.Exec("DELETE FROM provider_logs")
	}
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}

func testPayoutConfig() config.Payout {
	return config.Payout{
		MinAmount:          100,
		MaxAmount:          200000,
		DefaultFeeIMPS:     10,
		DefaultFeeNEFT:     5,
		DuplicateWindow:    120 * time.Second,
		StaleAfter:         5 * time.Minute,
		AutoRefundAfter:    48 * time.Hour,
		ReconcileBatchSize: 100,
	}
}

// fakeProvider lets tests script every provider outcome.
type fakeProvider struct {
	initResult   InitiateTransferResult
	statusResult ProviderStatusResult
	statusErr    error
	floatBalance float64
	floatErr     error
	banks        []ProviderBank
	banksErr     error
	initCalls    int
	statusCalls  int
}

func (f *fakeProvider) InitiateTransfer(ctx context.Context, req InitiateTransferRequest) InitiateTransferResult {
	f.initCalls++
	return f.initResult
}

func (f *fakeProvider) GetStatus(ctx context.Context, providerTrxId string) (ProviderStatusResult, error) {
	f.statusCalls++
	return f.statusResult, f.statusErr
}

func (f *fakeProvider) GetFloatBalance(ctx context.Context) (float64, error) {
	return f.floatBalance, f.floatErr
}

func (f *fakeProvider) ListBanks(ctx context.Context) ([]ProviderBank, error) {
	return f.banks, f.banksErr
}

func newTestTransferService(provider ProviderAPI) *TransferService {
	cfg := testPayoutConfig()
	ledger := NewLedgerService(testDB)
	pricing := NewPricingService(testDB, cfg)
	guard := NewDuplicateGuard(testDB, cfg.DuplicateWindow)
	return NewTransferService(testDB, ledger, pricing, guard, provider, cfg)
}

func seedMerchantWithWallet(id int, balance float64) {
	testDB.Create(&models.Merchant{
		ID:     id,
		Name:   "Test Merchant",
		Mobile: "9876543210",
		Email:  "merchant@example.com",
		Role:   models.RoleRetailer,
		Status: 1,
	})
	testDB.Create(&models.Wallet{
		MerchantId:       id,
		AvailableBalance: balance,
		Currency:         "INR",
		Status:           1,
	})
}
