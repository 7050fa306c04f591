package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sprinter_backend/models"
	"sprinter_backend/services/store"
)

// ClientController handles client registration and settings requests
type ClientController struct {
	store *store.Store
}

// NewClientController creates a new client controller
func NewClientController(st *store.Store) *ClientController {
	return &ClientController{store: st}
}

func parseClientID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return 0, false
	}
	return id, true
}

// RegisterClient registers a client with default settings
// POST /api/v1/clients/:id
func (cc *ClientController) RegisterClient(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	if err := cc.store.RegisterClient(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register client"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client_id": id, "status": "registered"})
}

// UnregisterClient deletes a client and everything it owns
// DELETE /api/v1/clients/:id
func (cc *ClientController) UnregisterClient(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	if err := cc.store.UnregisterClient(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unregister client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"client_id": id, "status": "unregistered"})
}

// GetSettings returns the client's display settings
// GET /api/v1/clients/:id/settings
func (cc *ClientController) GetSettings(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	settings, err := cc.store.ClientSettings(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}

// UpdateSettingRequest is the toggle payload
type UpdateSettingRequest struct {
	Name    string `json:"name" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

// UpdateSetting toggles one named display setting
// PATCH /api/v1/clients/:id/settings
func (cc *ClientController) UpdateSetting(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and enabled are required"})
		return
	}

	if err := cc.store.ToggleSetting(id, req.Name, *req.Enabled); err != nil {
		switch {
		case errors.Is(err, store.ErrUnknownSetting):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "Unrecognized setting name",
				"valid_names": models.ValidSettingNames(),
			})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": req.Name, "enabled": *req.Enabled})
}
