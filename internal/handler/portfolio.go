package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/service"
)

// PortfolioHandler handles portfolio valuation requests.
type PortfolioHandler struct {
	portfolioSvc *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioSvc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioSvc: portfolioSvc}
}

// positionResponse is one valued position in the portfolio response.
type positionResponse struct {
	Symbol       string          `json:"symbol"`
	CompanyName  string          `json:"company_name,omitempty"`
	Quantity     int64           `json:"quantity"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	PriceKnown   bool            `json:"price_known"`
	MarketValue  decimal.Decimal `json:"market_value"`
	CostBasis    decimal.Decimal `json:"cost_basis"`
	Gain         decimal.Decimal `json:"gain"`
}

// portfolioResponse is the JSON response for portfolio endpoints.
type portfolioResponse struct {
	CustomerID string             `json:"customer_id"`
	Positions  []positionResponse `json:"positions"`
	TotalValue decimal.Decimal    `json:"total_value"`
}

// GetFor handles GET /customers/{customer_id}/portfolio.
func (h *PortfolioHandler) GetFor(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, chi.URLParam(r, "customer_id"))
}

// Get handles GET /portfolio for customer self-service.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, "")
}

func (h *PortfolioHandler) get(w http.ResponseWriter, r *http.Request, customerID string) {
	valuation, err := h.portfolioSvc.Get(r.Context(), actorFrom(r), customerID)
	if err != nil {
		mapError(w, err)
		return
	}

	resp := portfolioResponse{
		CustomerID: valuation.CustomerID,
		Positions:  make([]positionResponse, len(valuation.Positions)),
		TotalValue: valuation.TotalValue,
	}
	for i, p := range valuation.Positions {
		resp.Positions[i] = positionResponse{
			Symbol:       p.Symbol,
			CompanyName:  p.CompanyName,
			Quantity:     p.Quantity,
			AverageCost:  p.AverageCost,
			CurrentPrice: p.CurrentPrice,
			PriceKnown:   p.PriceKnown,
			MarketValue:  p.MarketValue,
			CostBasis:    p.CostBasis,
			Gain:         p.Gain,
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}
