package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BaharRaf/trading/internal/service"
)

// NewRouter creates a chi router with all routes registered, request
// logging, identity extraction, and Content-Type validation middleware.
func NewRouter(
	customerSvc *service.CustomerService,
	tradingSvc *service.TradingService,
	portfolioSvc *service.PortfolioService,
	bankSvc *service.BankService,
	resolver *service.QuoteResolver,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	// Create handlers.
	customerH := NewCustomerHandler(customerSvc)
	tradeH := NewTradeHandler(tradingSvc)
	portfolioH := NewPortfolioHandler(portfolioSvc)
	bankH := NewBankHandler(bankSvc)
	stockH := NewStockHandler(resolver)

	// Health check stays outside the identity boundary so container
	// probes need no credentials.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(identity)

		// Customer administration (employee).
		r.Post("/customers", customerH.Create)
		r.Get("/customers", customerH.Search)
		r.Get("/customers/{customer_id}", customerH.Get)

		// Trading.
		r.Post("/customers/{customer_id}/trades", tradeH.SubmitFor)
		r.Post("/trades", tradeH.Submit)

		// Portfolio valuation.
		r.Get("/customers/{customer_id}/portfolio", portfolioH.GetFor)
		r.Get("/portfolio", portfolioH.Get)

		// Quote search passthrough.
		r.Get("/stocks/search", stockH.Search)

		// Bank liquidity (employee).
		r.Get("/bank/liquidity", bankH.Liquidity)
	})

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT, and
// PATCH requests. If the Content-Type header doesn't start with
// "application/json", it returns 400 Bad Request before the handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
