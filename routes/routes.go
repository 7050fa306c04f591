package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sprinter_backend/config"
	"sprinter_backend/controllers"
	"sprinter_backend/services/scraper"
	"sprinter_backend/services/store"
	"sprinter_backend/services/watchlist"
)

// SetupRoutes sets up all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Shared core services
	st := store.New(db)
	sc := scraper.New(cfg.QuoteBaseURL)
	watchlistService := watchlist.NewService(st, sc)

	// Initialize controllers
	clientController := controllers.NewClientController(st)
	watchlistController := controllers.NewWatchlistController(st, watchlistService)
	marketController := controllers.NewMarketController(st, sc)

	// API v1 group
	api := router.Group("/api/v1")
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("/:id", clientController.RegisterClient)
			clients.DELETE("/:id", clientController.UnregisterClient)
			clients.GET("/:id/settings", clientController.GetSettings)
			clients.PATCH("/:id/settings", clientController.UpdateSetting)

			// Watchlist routes
			clients.GET("/:id/watchlist", watchlistController.GetWatchlist)
			clients.POST("/:id/watchlist", watchlistController.AddInstrument)
			clients.DELETE("/:id/watchlist/:isin", watchlistController.RemoveInstrument)
			clients.POST("/:id/watchlist/:isin/mark", watchlistController.ToggleRemovalMark)

			// Two-phase removal batch endpoints
			clients.POST("/:id/removals/confirm", watchlistController.ConfirmRemovals)
			clients.POST("/:id/removals/cancel", watchlistController.CancelRemovals)
		}

		// Catalog routes
		markets := api.Group("/markets")
		{
			markets.GET("/:isin", marketController.GetMarket)
		}

		// Batch ingestion
		api.POST("/ingest", marketController.Ingest)
	}
}
