package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"payout-service/internal/config"
	"payout-service/internal/models"
	"payout-service/pkg/common"

	"gorm.io/gorm"
)

// Provider transfer statuses as reported on the wire.
const (
	ProviderStatusSuccess    = "SUCCESS"
	ProviderStatusFailure    = "FAILURE"
	ProviderStatusPending    = "PENDING"
	ProviderStatusInProgress = "INPROGRESS"
)

// ProviderAPI is the surface the orchestrator and the reconciliation job
// consume. *ProviderClient is the production implementation; tests inject
// fakes.
type ProviderAPI interface {
	InitiateTransfer(ctx context.Context, req InitiateTransferRequest) InitiateTransferResult
	GetStatus(ctx context.Context, providerTrxId string) (ProviderStatusResult, error)
	GetFloatBalance(ctx context.Context) (float64, error)
	ListBanks(ctx context.Context) ([]ProviderBank, error)
}

type InitiateTransferRequest struct {
	PayoutId          int
	AccountNumber     string
	IfscCode          string
	BeneficiaryName   string
	Amount            float64
	Mode              string
	BankId            string
	BankName          string
	BeneficiaryMobile string
	SenderName        string
	SenderMobile      string
	SenderEmail       string
	Remarks           string
	ClientRefId       string
}

// InitiateTransferResult is a tagged outcome: exactly one of Success,
// IsTimeout, or an explicit rejection (Success=false, IsTimeout=false)
// holds. TransactionId is set once the provider acknowledged the request.
type InitiateTransferResult struct {
	Success       bool
	IsTimeout     bool
	TransactionId string
	Status        string
	Message       string
}

type ProviderStatusResult struct {
	Status      string
	OperatorRef string
	Message     string
}

// Terminal reports whether the provider has stopped working on the transfer.
func (r ProviderStatusResult) Terminal() bool {
	return r.Status == ProviderStatusSuccess || r.Status == ProviderStatusFailure
}

type ProviderBank struct {
	BankId      string `json:"bank_id"`
	BankName    string `json:"bank_name"`
	ImpsEnabled bool   `json:"imps_enabled"`
	NeftEnabled bool   `json:"neft_enabled"`
}

type ProviderClient struct {
	DB  *gorm.DB
	Cfg config.Provider
}

func NewProviderClient(db *gorm.DB, cfg config.Provider) *ProviderClient {
	return &ProviderClient{DB: db, Cfg: cfg}
}

func (c *ProviderClient) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.Cfg.Token,
		"Accept":        "application/json",
	}
}

type providerTransferResponse struct {
	Status  string `json:"status"`
	TxnId   string `json:"txn_id"`
	Rrn     string `json:"rrn"`
	Message string `json:"message"`
}

func (c *ProviderClient) InitiateTransfer(ctx context.Context, req InitiateTransferRequest) InitiateTransferResult {
	ctx, cancel := context.WithTimeout(ctx, c.Cfg.CallTimeout)
	defer cancel()

	payload := map[string]interface{}{
		"account_number":  req.AccountNumber,
		"ifsc":            req.IfscCode,
		"holder_name":     req.BeneficiaryName,
		"amount":          req.Amount,
		"mode":            req.Mode,
		"bank_id":         req.BankId,
		"bank_name":       req.BankName,
		"beneficiary_mob": req.BeneficiaryMobile,
		"sender_name":     req.SenderName,
		"sender_mobile":   req.SenderMobile,
		"sender_email":    req.SenderEmail,
		"remarks":         req.Remarks,
		"client_ref_id":   req.ClientRefId,
	}

	var resp providerTransferResponse
	body, err := common.PostJSON(ctx, c.Cfg.BaseUrl+"/api/v1/transfer", payload, c.headers(), &resp)
	c.logExchange(req.PayoutId, req.ClientRefId, "initiate", payload, body, err == nil)

	if err != nil {
		if common.IsTimeout(err) {
			return InitiateTransferResult{IsTimeout: true, Message: "provider call timed out"}
		}
		return InitiateTransferResult{Message: fmt.Sprintf("provider unreachable: %v", err)}
	}

	switch resp.Status {
	case ProviderStatusSuccess, ProviderStatusPending, ProviderStatusInProgress:
		return InitiateTransferResult{
			Success:       true,
			TransactionId: resp.TxnId,
			Status:        resp.Status,
			Message:       resp.Message,
		}
	default:
		return InitiateTransferResult{Status: resp.Status, Message: resp.Message}
	}
}

func (c *ProviderClient) GetStatus(ctx context.Context, providerTrxId string) (ProviderStatusResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Cfg.CallTimeout)
	defer cancel()

	var resp providerTransferResponse
	url := fmt.Sprintf("%s/api/v1/transfer/%s/status", c.Cfg.BaseUrl, providerTrxId)
	body, err := common.GetJSON(ctx, url, c.headers(), &resp)
	c.logExchange(0, providerTrxId, "status", nil, body, err == nil)
	if err != nil {
		return ProviderStatusResult{}, err
	}

	return ProviderStatusResult{
		Status:      resp.Status,
		OperatorRef: resp.Rrn,
		Message:     resp.Message,
	}, nil
}

func (c *ProviderClient) GetFloatBalance(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Cfg.CallTimeout)
	defer cancel()

	var resp struct {
		AvailableBalance float64 `json:"available_balance"`
	}
	_, err := common.GetJSON(ctx, c.Cfg.BaseUrl+"/api/v1/balance", c.headers(), &resp)
	if err != nil {
		return 0, err
	}
	return resp.AvailableBalance, nil
}

func (c *ProviderClient) ListBanks(ctx context.Context) ([]ProviderBank, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Cfg.CallTimeout)
	defer cancel()

	var resp struct {
		Banks []ProviderBank `json:"banks"`
	}
	_, err := common.GetJSON(ctx, c.Cfg.BaseUrl+"/api/v1/banks", c.headers(), &resp)
	if err != nil {
		return nil, err
	}
	return resp.Banks, nil
}

func (c *ProviderClient) logExchange(payoutId int, ref, operation string, request interface{}, response []byte, success bool) {
	reqBytes, _ := json.Marshal(request)
	entry := models.ProviderLog{
		ClientRefId: ref,
		Operation:   operation,
		Request:     string(reqBytes),
		Response:    string(response),
		Success:     success,
	}
	if payoutId != 0 {
		entry.PayoutId = &payoutId
	}
	if err := c.DB.Create(&entry).Error; err != nil {
		log.Printf("failed to persist provider log: %v", err)
	}
}
