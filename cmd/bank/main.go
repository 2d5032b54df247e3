package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/BaharRaf/trading/internal/config"
	"github.com/BaharRaf/trading/internal/exchange"
	"github.com/BaharRaf/trading/internal/handler"
	"github.com/BaharRaf/trading/internal/service"
	"github.com/BaharRaf/trading/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Instantiate stores.
	customerStore := store.NewCustomerStore()
	positionStore := store.NewPositionStore()
	liquidityStore := store.NewLiquidityStore(cfg.InitialLiquidity)
	symbolCache := store.NewSymbolCache()

	// Exchange gateway.
	gateway := exchange.NewClient(cfg.ExchangeBaseURL, cfg.ExchangeTimeout)

	// Services.
	guard := service.NewAccessGuard(customerStore)
	resolver := service.NewQuoteResolver(gateway, symbolCache, logger)
	ledger := service.NewLedger(positionStore, symbolCache, cfg.CommitRetries, logger)

	customerSvc := service.NewCustomerService(guard, customerStore)
	tradingSvc := service.NewTradingService(
		guard, customerStore, ledger, liquidityStore, resolver, gateway,
		cfg.CommitRetries, logger,
	)
	portfolioSvc := service.NewPortfolioService(guard, customerStore, ledger, resolver)
	bankSvc := service.NewBankService(guard, liquidityStore)

	// Router.
	router := handler.NewRouter(customerSvc, tradingSvc, portfolioSvc, bankSvc, resolver, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("exchange", cfg.ExchangeBaseURL),
			slog.String("initial_liquidity", cfg.InitialLiquidity.String()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", slog.String("signal", sig.String()))

	// Graceful shutdown with bounded timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
