package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sprinter_backend/services/scraper"
	"sprinter_backend/services/store"
)

// MarketController handles catalog and batch ingestion requests
type MarketController struct {
	store   *store.Store
	scraper *scraper.Scraper
}

// NewMarketController creates a new market controller
func NewMarketController(st *store.Store, sc *scraper.Scraper) *MarketController {
	return &MarketController{store: st, scraper: sc}
}

// GetMarket returns one catalog row
// GET /api/v1/markets/:isin
func (mc *MarketController) GetMarket(c *gin.Context) {
	isin, err := scraper.NormalizeISIN(c.Param("isin"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instrument identifier"})
		return
	}

	market, err := mc.store.Market(isin)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Market not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch market"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": market})
}

// IngestRequest is the batch ingestion payload
type IngestRequest struct {
	ISINs []string `json:"isins" binding:"required"`
}

// Ingest fetches and parses a batch of identifiers without persisting
// POST /api/v1/ingest
func (mc *MarketController) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isins is required"})
		return
	}

	isins := make([]string, 0, len(req.ISINs))
	invalid := make([]string, 0)
	for _, raw := range req.ISINs {
		isin, err := scraper.NormalizeISIN(raw)
		if err != nil {
			invalid = append(invalid, raw)
			continue
		}
		isins = append(isins, isin)
	}

	active, unavailable := mc.scraper.Ingest(c.Request.Context(), isins)

	c.JSON(http.StatusOK, gin.H{
		"active":      active,
		"unavailable": unavailable,
		"invalid":     invalid,
	})
}
