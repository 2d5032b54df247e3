package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/service"
)

// BankHandler handles bank-wide liquidity requests.
type BankHandler struct {
	bankSvc *service.BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankSvc *service.BankService) *BankHandler {
	return &BankHandler{bankSvc: bankSvc}
}

// liquidityResponse is the JSON response for GET /bank/liquidity.
type liquidityResponse struct {
	TotalInvestableVolume decimal.Decimal `json:"total_investable_volume"`
	AvailableVolume       decimal.Decimal `json:"available_volume"`
}

// Liquidity handles GET /bank/liquidity.
func (h *BankHandler) Liquidity(w http.ResponseWriter, r *http.Request) {
	pool, err := h.bankSvc.AvailableLiquidity(actorFrom(r))
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, liquidityResponse{
		TotalInvestableVolume: pool.TotalInvestableVolume,
		AvailableVolume:       pool.AvailableVolume,
	})
}
