package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"payout-service/internal/services"
	"payout-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	Transfer  *services.TransferService
	Reconcile *services.ReconcileService
	Banks     *services.BankService
}

func NewPayoutHandler(transfer *services.TransferService, reconcile *services.ReconcileService, banks *services.BankService) *PayoutHandler {
	return &PayoutHandler{Transfer: transfer, Reconcile: reconcile, Banks: banks}
}

// SubmitTransfer handles POST /payouts. Error taxonomy maps onto HTTP codes:
// validation and insufficient funds 400, duplicate 429, provider float
// shortfall 503, provider rejection 400, internal failure 500.
func (h *PayoutHandler) SubmitTransfer(c *gin.Context) {
	var req services.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	receipt, err := h.Transfer.SubmitTransfer(c.Request.Context(), req)
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(receipt, "Transfer "+receipt.Status))
}

func (h *PayoutHandler) writeSubmitError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var fundsErr *services.InsufficientFundsError
	var duplicateErr *services.DuplicateRequestError
	var rejectedErr *services.ProviderRejectedError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(validationErr.Reason, nil, http.StatusBadRequest))
	case errors.As(err, &fundsErr):
		detail := gin.H{"available_balance": fundsErr.Available, "required": fundsErr.Required}
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(fundsErr.Error(), detail, http.StatusBadRequest))
	case errors.As(err, &duplicateErr):
		detail := gin.H{
			"wait_seconds":         duplicateErr.WaitSeconds,
			"prior_transaction_id": duplicateErr.PriorId,
			"prior_status":         duplicateErr.PriorStatus,
			"prior_amount":         duplicateErr.PriorAmount,
		}
		c.JSON(http.StatusTooManyRequests, common.NewErrorResponse(duplicateErr.Error(), detail, http.StatusTooManyRequests))
	case errors.Is(err, services.ErrProviderUnderfunded):
		c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse(err.Error(), nil, http.StatusServiceUnavailable))
	case errors.As(err, &rejectedErr):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(rejectedErr.Error(), nil, http.StatusBadRequest))
	default:
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
	}
}

// GetStatus handles GET /payouts/:id where :id is a numeric id, a client
// reference or a provider transaction id.
func (h *PayoutHandler) GetStatus(c *gin.Context) {
	snapshot, err := h.Transfer.GetStatus(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Transaction not found", nil, http.StatusNotFound))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(snapshot, "Transaction fetched"))
}

// ListPayouts handles GET /payouts.
func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	merchantId, err := strconv.Atoi(c.Query("merchant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid merchant_id", nil, http.StatusBadRequest))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.Transfer.ListPayouts(services.ListPayoutsQuery{
		MerchantId: merchantId,
		Status:     c.Query("status"),
		From:       c.Query("from"),
		To:         c.Query("to"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, result)
}

type reconcileRequest struct {
	MerchantId int   `json:"merchant_id"`
	Ids        []int `json:"ids"`
}

// RunReconciliation handles POST /payouts/reconcile, running one batch
// inline and returning the summary.
func (h *PayoutHandler) RunReconciliation(c *gin.Context) {
	var req reconcileRequest
	// Body is optional; an empty scope reconciles everything stale.
	_ = c.ShouldBindJSON(&req)

	summary, err := h.Reconcile.Reconcile(c.Request.Context(), services.ReconcileScope{
		MerchantId: req.MerchantId,
		Ids:        req.Ids,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(summary, "Reconciliation completed"))
}

// ListBanks handles GET /banks from the locally synced directory.
func (h *PayoutHandler) ListBanks(c *gin.Context) {
	res, err := h.Banks.ListBanks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, res)
}
