package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-storefront/internal/apiclient"
	"vehicle-storefront/internal/cart"
	"vehicle-storefront/internal/domain"
	"vehicle-storefront/internal/session"
)

type handlers struct {
	deps   Deps
	logger *log.Logger
}

// cartEngine hydrates the caller's cart engine from the store.
func (h *handlers) cartEngine(c *gin.Context) (*cart.Engine, bool) {
	engine, err := cart.Hydrate(c.Request.Context(), h.deps.Store, "cart:"+sessionID(c))
	if err != nil {
		h.logger.Printf("hydrate cart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
		return nil, false
	}
	return engine, true
}

// sessionGate hydrates the caller's session gate from the store.
func (h *handlers) sessionGate(c *gin.Context) (*session.Gate, bool) {
	gate, err := session.Hydrate(c.Request.Context(), h.deps.Store, h.deps.Auth, "session:"+sessionID(c))
	if err != nil {
		h.logger.Printf("hydrate session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return nil, false
	}
	return gate, true
}

// writeAPIError maps classified remote-call errors onto responses.
// Callers handle session invalidation before getting here.
func writeAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please sign in again"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apiclient.ErrRejected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "service temporarily unavailable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type cartResponse struct {
	Lines      []domain.CartLine `json:"lines"`
	ItemCount  int               `json:"itemCount"`
	TotalCents int64             `json:"totalCents"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponse{
		Lines:      lines,
		ItemCount:  cart.ItemCount(),
		TotalCents: cart.TotalCents(),
	}
}
