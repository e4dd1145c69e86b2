package services

import (
	"context"
	"errors"
	"testing"

	"payout-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncBanksUpserts(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	provider := &fakeProvider{banks: []ProviderBank{
		{BankId: "HDFC", BankName: "HDFC Bank", ImpsEnabled: true, NeftEnabled: true},
		{BankId: "SBIN", BankName: "State Bank of India", ImpsEnabled: true, NeftEnabled: true},
	}}
	svc := NewBankService(testDB, provider)

	synced, err := svc.SyncBanks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, synced)

	// Second run updates in place instead of duplicating.
	provider.banks[0].BankName = "HDFC Bank Ltd"
	provider.banks[0].NeftEnabled = false
	synced, err = svc.SyncBanks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, synced)

	var count int64
	testDB.Model(&models.Bank{}).Count(&count)
	assert.Equal(t, int64(2), count)

	var hdfc models.Bank
	require.NoError(t, testDB.Where("bank_id = ?", "HDFC").First(&hdfc).Error)
	assert.Equal(t, "HDFC Bank Ltd", hdfc.Name)
	assert.False(t, hdfc.NeftEnabled)
	assert.True(t, hdfc.ImpsEnabled)
}

func TestSyncBanksProviderError(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	provider := &fakeProvider{banksErr: errors.New("directory unavailable")}
	svc := NewBankService(testDB, provider)

	_, err := svc.SyncBanks(context.Background())
	assert.Error(t, err)
}

func TestListBanksFiltersDisabled(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.Bank{BankId: "HDFC", Name: "HDFC Bank", Status: 1})
	testDB.Create(&models.Bank{BankId: "AXIS", Name: "Axis Bank", Status: 0})

	svc := NewBankService(testDB, &fakeProvider{})
	res, err := svc.ListBanks()
	require.NoError(t, err)

	banks, ok := res.Data.([]models.Bank)
	require.True(t, ok)
	require.Len(t, banks, 1)
	assert.Equal(t, "HDFC", banks[0].BankId)
}
