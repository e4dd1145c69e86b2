package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"payout-service/internal/services"
	"payout-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	Ledger *services.LedgerService
}

func NewWalletHandler(ledger *services.LedgerService) *WalletHandler {
	return &WalletHandler{Ledger: ledger}
}

// GetBalance handles GET /wallets/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	merchantId, err := strconv.Atoi(c.Query("merchant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid merchant_id", nil, http.StatusBadRequest))
		return
	}

	balance, err := h.Ledger.Balance(merchantId)
	if err != nil {
		if errors.Is(err, services.ErrWalletNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Wallet not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"merchant_id":       merchantId,
		"available_balance": balance,
	}, "Balance fetched"))
}

// GetStatement handles GET /wallets/statement, a paginated ledger listing.
func (h *WalletHandler) GetStatement(c *gin.Context) {
	merchantId, err := strconv.Atoi(c.Query("merchant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid merchant_id", nil, http.StatusBadRequest))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.Ledger.Statement(merchantId, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, result)
}
