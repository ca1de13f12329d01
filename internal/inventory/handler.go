package inventory

import (
	"errors"
	"net/http"

	"foodbank/internal/nutrition"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /api/inventory
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	items, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// --------------------------------------------------
// POST /api/inventory/add
// --------------------------------------------------
func (h *Handler) Add(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	var req AddInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	item, err := h.service.Add(c.Request.Context(), userID, req)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	case errors.Is(err, nutrition.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Could not fetch nutritional information"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to add item to inventory"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"newItem": item,
	})
}

// --------------------------------------------------
// DELETE /api/inventory/delete/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	err := h.service.Delete(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// POST /api/inventory/update-customers
// --------------------------------------------------
func (h *Handler) UpdateCustomers(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	var req struct {
		WeeklyCustomers int `json:"weekly_customers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	n, err := h.service.UpdateWeeklyCustomers(c.Request.Context(), userID, req.WeeklyCustomers)
	if errors.Is(err, ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update weekly customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": n,
	})
}
