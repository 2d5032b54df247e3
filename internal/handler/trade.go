package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/service"
)

// TradeHandler handles buy and sell settlement requests.
type TradeHandler struct {
	tradingSvc *service.TradingService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradingSvc *service.TradingService) *TradeHandler {
	return &TradeHandler{tradingSvc: tradingSvc}
}

// tradeRequest is the JSON request body for trade endpoints.
type tradeRequest struct {
	Side     string `json:"side"`
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

// tradeResponse reports the settled trade at its actual execution price.
type tradeResponse struct {
	Side     string          `json:"side"`
	Symbol   string          `json:"symbol"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// SubmitFor handles POST /customers/{customer_id}/trades, the
// employee-initiated form targeting an explicit account.
func (h *TradeHandler) SubmitFor(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, chi.URLParam(r, "customer_id"))
}

// Submit handles POST /trades, the customer self-service form. The
// target account is resolved from the caller's own identity.
func (h *TradeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "")
}

func (h *TradeHandler) submit(w http.ResponseWriter, r *http.Request, customerID string) {
	var req tradeRequest
	if err := ParseJSON(r, &req); err != nil {
		mapError(w, err)
		return
	}

	svcReq := service.TradeRequest{
		CustomerID: customerID,
		Symbol:     req.Symbol,
		Quantity:   req.Quantity,
	}

	var (
		price decimal.Decimal
		err   error
	)
	switch req.Side {
	case "buy":
		price, err = h.tradingSvc.Buy(r.Context(), actorFrom(r), svcReq)
	case "sell":
		price, err = h.tradingSvc.Sell(r.Context(), actorFrom(r), svcReq)
	default:
		WriteError(w, http.StatusBadRequest, "validation_error", "side must be buy or sell")
		return
	}
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tradeResponse{
		Side:     req.Side,
		Symbol:   req.Symbol,
		Quantity: req.Quantity,
		Price:    price,
		Total:    price.Mul(decimal.NewFromInt(req.Quantity)),
	})
}
