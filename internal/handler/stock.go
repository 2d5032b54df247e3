package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/service"
)

// StockHandler handles quote search passthrough requests.
type StockHandler struct {
	resolver *service.QuoteResolver
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(resolver *service.QuoteResolver) *StockHandler {
	return &StockHandler{resolver: resolver}
}

// quoteResponse is one quote in the search response. Price is null when
// the exchange has no current price for the listing.
type quoteResponse struct {
	Symbol        string           `json:"symbol"`
	CompanyName   string           `json:"company_name"`
	Price         *decimal.Decimal `json:"last_trade_price"`
	StockExchange string           `json:"stock_exchange,omitempty"`
}

// quoteListResponse is the JSON response for GET /stocks/search.
type quoteListResponse struct {
	Quotes []quoteResponse `json:"quotes"`
	Total  int             `json:"total"`
}

// Search handles GET /stocks/search?q=.
func (h *StockHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "validation_error", "q query parameter is required")
		return
	}

	quotes, err := h.resolver.Search(r.Context(), query)
	if err != nil {
		mapError(w, err)
		return
	}

	resp := quoteListResponse{
		Quotes: make([]quoteResponse, len(quotes)),
		Total:  len(quotes),
	}
	for i, q := range quotes {
		qr := quoteResponse{
			Symbol:        q.Symbol,
			CompanyName:   q.CompanyName,
			StockExchange: q.StockExchange,
		}
		if q.HasPrice() {
			price := q.LastTradePrice
			qr.Price = &price
		}
		resp.Quotes[i] = qr
	}
	WriteJSON(w, http.StatusOK, resp)
}
