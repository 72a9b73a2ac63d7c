package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/middleware"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/config"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/service"
)

// Services bundles the service layer dependencies the router needs.
type Services struct {
	System     *service.SystemService
	Trade      *service.TradeService
	Position   *service.PositionService
	Account    *service.AccountService
	Price      *service.PriceService
	Metrics    *service.MetricsService
	Allocation *service.AllocationService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/trade", func(r chi.Router) {
			tradeHandler := handlers.NewTradeHandler(svcs.Trade)
			r.Get("/", tradeHandler.AllTrades)
			r.Post("/", tradeHandler.CreateTrade)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", tradeHandler.GetTrade)
				r.Put("/", tradeHandler.UpdateTrade)
				r.Delete("/", tradeHandler.DeleteTrade)
				r.Post("/close", tradeHandler.CloseTrade)
				r.Post("/close-with-method", tradeHandler.CloseTradeWithMethod)
				r.Post("/roll", tradeHandler.RollTrade)
				r.Post("/assign", tradeHandler.AssignTrade)
			})
		})

		r.Route("/position", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(svcs.Position)
			r.Get("/", positionHandler.AllPositions)
			r.Post("/", positionHandler.CreatePosition)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", positionHandler.GetPosition)
				r.Put("/", positionHandler.UpdatePosition)
				r.Delete("/", positionHandler.DeletePosition)
				r.Post("/sell", positionHandler.SellPosition)
			})
		})

		r.Route("/account", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(svcs.Account)
			r.Get("/", accountHandler.GetSettings)
			r.Put("/", accountHandler.UpdateSettings)
			r.Post("/deposit", accountHandler.Deposit)
			r.Post("/withdraw", accountHandler.Withdraw)
		})

		r.Route("/price", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svcs.Price)
			r.Get("/", priceHandler.AllPrices)
			r.Post("/", priceHandler.UpsertPrice)
			r.Post("/bulk", priceHandler.BulkUpsertPrices)
			r.Get("/{ticker}", priceHandler.GetPrice)
		})

		r.Route("/analytics", func(r chi.Router) {
			analyticsHandler := handlers.NewAnalyticsHandler(svcs.Metrics, svcs.Allocation)
			r.Get("/portfolio", analyticsHandler.PortfolioMetrics)
			r.Get("/portfolio/enhanced", analyticsHandler.EnhancedPortfolioMetrics)
			r.Get("/ticker/{ticker}", analyticsHandler.TickerMetrics)
			r.Get("/allocation", analyticsHandler.AllAllocations)
			r.Get("/allocation/{ticker}", analyticsHandler.TickerAllocation)
			r.Get("/tickers", analyticsHandler.AllTickers)
			r.Get("/unrealized", analyticsHandler.UnrealizedReport)
		})
	})

	return r
}
