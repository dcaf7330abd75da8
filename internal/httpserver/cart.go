package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vehicle-storefront/internal/cart"
	"vehicle-storefront/internal/domain"
)

type addItemRequest struct {
	VehicleID int64 `json:"vehicleId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *handlers) viewCart(c *gin.Context) {
	engine, ok := h.cartEngine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toCartResponse(engine.Snapshot()))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicleId and quantity are required"})
		return
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	// The line snapshot comes from the catalog at add time; the price is
	// not re-validated until checkout.
	vehicle, err := h.deps.Catalog.GetVehicle(c.Request.Context(), req.VehicleID)
	if err != nil {
		writeAPIError(c, err)
		return
	}

	engine, ok := h.cartEngine(c)
	if !ok {
		return
	}
	updated, err := engine.AddItem(c.Request.Context(), *vehicle, req.Quantity)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(updated))
}

func (h *handlers) updateCartItem(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("vehicleId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	engine, ok := h.cartEngine(c)
	if !ok {
		return
	}
	updated, err := engine.UpdateQuantity(c.Request.Context(), vehicleID, req.Quantity)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(updated))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("vehicleId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	engine, ok := h.cartEngine(c)
	if !ok {
		return
	}
	updated, err := engine.RemoveItem(c.Request.Context(), vehicleID)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(updated))
}

func (h *handlers) clearCart(c *gin.Context) {
	engine, ok := h.cartEngine(c)
	if !ok {
		return
	}
	if err := engine.Clear(c.Request.Context()); err != nil {
		h.writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(domain.Cart{}))
}

func (h *handlers) writeCartError(c *gin.Context, err error) {
	if errors.Is(err, cart.ErrInvalidQuantity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Printf("cart mutation: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
}
