package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-storefront/internal/apiclient"
	"vehicle-storefront/internal/checkout"
	"vehicle-storefront/internal/domain"
)

type placeOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zipCode"`
	Country         string `json:"country"`
	PhoneNumber     string `json:"phoneNumber"`
}

type placeOrderResponse struct {
	OrderID    int64  `json:"orderId"`
	Status     string `json:"status"`
	TotalCents int64  `json:"totalCents"`
}

func (h *handlers) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout payload"})
		return
	}

	gate, ok := h.sessionGate(c)
	if !ok {
		return
	}
	engine, ok := h.cartEngine(c)
	if !ok {
		return
	}

	order, err := h.deps.Checkout.SubmitOrder(c.Request.Context(), gate, engine, checkout.ShippingAddress{
		Street:      req.ShippingAddress,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, placeOrderResponse{
		OrderID:    order.ID,
		Status:     order.Status,
		TotalCents: order.TotalCents,
	})
}

func (h *handlers) writeCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrNotSignedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please sign in to check out"})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, apiclient.ErrRejected):
		writeAPIError(c, err)
	default:
		// address validation messages are safe to show inline
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func (h *handlers) listOrders(c *gin.Context) {
	gate, ok := h.sessionGate(c)
	if !ok {
		return
	}
	if !gate.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please sign in"})
		return
	}

	page, err := h.deps.Orders.ListOrders(c.Request.Context(), gate.Credential(), apiclient.OrderQuery{
		Page:    intQuery(c, "page", 0),
		Size:    intQuery(c, "size", 10),
		SortBy:  c.DefaultQuery("sortBy", "createdAt"),
		SortDir: c.DefaultQuery("sortDir", "desc"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			if invErr := gate.Invalidate(c.Request.Context()); invErr != nil {
				h.logger.Printf("invalidate session: %v", invErr)
			}
		}
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
