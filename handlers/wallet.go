package handlers

import (
	"net/http"

	"astromitra/models"
	"astromitra/services/wallet"
	"astromitra/state"
	"astromitra/utils"

	"github.com/gin-gonic/gin"
)

// WalletHandler exposes the top-up flow and the transaction ledger.
type WalletHandler struct {
	Service wallet.WalletService
	State   *state.Store
}

func NewWalletHandler(svc wallet.WalletService, store *state.Store) *WalletHandler {
	return &WalletHandler{Service: svc, State: store}
}

// TopUpBeginHandler handles POST /api/wallet/topup. It returns the
// gateway client secret for the payment sheet; the wallet is untouched
// until the payment is confirmed.
func (h *WalletHandler) TopUpBeginHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	var req models.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid top-up request", err.Error())
		return
	}
	if req.Amount <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Top-up amount must be positive", "")
		return
	}
	req.UserID = uid
	secret, ok := h.Service.BeginTopUp(c.Request.Context(), req)
	if !ok {
		utils.JSONError(c, http.StatusBadGateway, wallet.PaymentFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

// TopUpCompleteHandler handles POST /api/wallet/topup/complete. The
// credit lands only after the gateway confirms the referenced payment.
func (h *WalletHandler) TopUpCompleteHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	var req struct {
		Amount    float64 `json:"amount" binding:"required"`
		Reference string  `json:"reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid top-up confirmation", err.Error())
		return
	}
	topUp := models.TopUpRequest{UserID: uid, Amount: req.Amount}
	if !h.Service.CompleteTopUp(c.Request.Context(), topUp, req.Reference) {
		utils.JSONError(c, http.StatusBadGateway, wallet.PaymentFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Wallet credited", "transactions": h.State.Transactions()})
}

// TransactionsHandler handles GET /api/wallet/transactions.
func (h *WalletHandler) TransactionsHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	if !h.Service.FetchTransactions(c.Request.Context(), uid) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, h.State.Transactions())
}
