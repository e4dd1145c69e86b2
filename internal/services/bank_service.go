package services

import (
	"context"
	"log"

	"payout-service/internal/models"
	"payout-service/pkg/common"

	"gorm.io/gorm"
)

// BankService keeps a local copy of the provider's bank directory so bank
// lookups never depend on the provider being up.
type BankService struct {
	DB       *gorm.DB
	Provider ProviderAPI
}

func NewBankService(db *gorm.DB, provider ProviderAPI) *BankService {
	return &BankService{DB: db, Provider: provider}
}

// SyncBanks refreshes the banks table from the provider, upserting by the
// provider's bank id.
func (s *BankService) SyncBanks(ctx context.Context) (int, error) {
	banks, err := s.Provider.ListBanks(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, b := range banks {
		var existing models.Bank
		err := s.DB.Where("bank_id = ?", b.BankId).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			record := models.Bank{
				BankId:      b.BankId,
				Name:        b.BankName,
				ImpsEnabled: b.ImpsEnabled,
				NeftEnabled: b.NeftEnabled,
				Status:      1,
			}
			if err := s.DB.Create(&record).Error; err != nil {
				log.Printf("bank sync: create %s failed: %v", b.BankId, err)
				continue
			}
			synced++
			continue
		}
		if err != nil {
			log.Printf("bank sync: lookup %s failed: %v", b.BankId, err)
			continue
		}

		err = s.DB.Model(&existing).Updates(map[string]interface{}{
			"name":         b.BankName,
			"imps_enabled": b.ImpsEnabled,
			"neft_enabled": b.NeftEnabled,
		}).Error
		if err != nil {
			log.Printf("bank sync: update %s failed: %v", b.BankId, err)
			continue
		}
		synced++
	}

	return synced, nil
}

func (s *BankService) ListBanks() (common.SuccessResponse, error) {
	var banks []models.Bank
	if err := s.DB.Where("status = 1").Order("name ASC").Find(&banks).Error; err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(banks, "Banks retrieved"), nil
}
