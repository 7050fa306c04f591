package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sprinter_backend/services/store"
	"sprinter_backend/services/watchlist"
)

// WatchlistController handles per-client watchlist requests
type WatchlistController struct {
	store   *store.Store
	service *watchlist.Service
}

// NewWatchlistController creates a new watchlist controller
func NewWatchlistController(st *store.Store, svc *watchlist.Service) *WatchlistController {
	return &WatchlistController{store: st, service: svc}
}

// GetWatchlist returns one page of the client's watchlist
// GET /api/v1/clients/:id/watchlist
func (wc *WatchlistController) GetWatchlist(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	overview, err := wc.service.Overview(id, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": overview})
}

// AddInstrumentRequest is the add payload
type AddInstrumentRequest struct {
	ISIN string `json:"isin" binding:"required"`
}

// AddInstrument validates and ingests an identifier, then links it
// POST /api/v1/clients/:id/watchlist
func (wc *WatchlistController) AddInstrument(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	var req AddInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isin is required"})
		return
	}

	outcome, market, err := wc.service.Add(c.Request.Context(), id, req.ISIN)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add instrument"})
		return
	}

	switch outcome {
	case watchlist.InvalidISIN:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instrument identifier"})
	case watchlist.Unavailable:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "unavailable", "isin": req.ISIN})
	default:
		c.JSON(http.StatusCreated, gin.H{"data": market})
	}
}

// RemoveInstrument unlinks one instrument immediately
// DELETE /api/v1/clients/:id/watchlist/:isin
func (wc *WatchlistController) RemoveInstrument(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}
	isin := c.Param("isin")

	if err := wc.store.Unlink(id, isin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove instrument"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isin": isin, "status": "removed"})
}

// ToggleRemovalMark flips the two-phase deletion mark on one instrument
// POST /api/v1/clients/:id/watchlist/:isin/mark
func (wc *WatchlistController) ToggleRemovalMark(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}
	isin := c.Param("isin")

	marked, err := wc.store.ToggleRemovalMark(id, isin)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not on watchlist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle deletion mark"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isin": isin, "marked_for_deletion": marked})
}

// ConfirmRemovals deletes every instrument the client marked
// POST /api/v1/clients/:id/removals/confirm
func (wc *WatchlistController) ConfirmRemovals(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	removed, err := wc.store.ConfirmRemovals(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm removals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// CancelRemovals clears every deletion mark the client set
// POST /api/v1/clients/:id/removals/cancel
func (wc *WatchlistController) CancelRemovals(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	restored, err := wc.store.CancelRemovals(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel removals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"restored": restored})
}
