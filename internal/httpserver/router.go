package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"vehicle-storefront/internal/apiclient"
	"vehicle-storefront/internal/checkout"
	"vehicle-storefront/internal/domain"
	"vehicle-storefront/internal/repository/kv"
)

// CatalogAPI queries the remote vehicle catalog.
type CatalogAPI interface {
	SearchVehicles(ctx context.Context, q apiclient.VehicleQuery) (*domain.VehiclePage, error)
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// AuthAPI exchanges credentials for a session with the remote auth
// service.
type AuthAPI interface {
	Login(ctx context.Context, in apiclient.LoginInput) (*apiclient.AuthResult, error)
	Signup(ctx context.Context, in apiclient.SignupInput) (*apiclient.AuthResult, error)
}

// OrderAPI submits and lists orders on the remote order service.
type OrderAPI interface {
	CreateOrder(ctx context.Context, credential string, req domain.OrderRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, credential string, q apiclient.OrderQuery) (*domain.OrderPage, error)
}

// ProfileAPI fetches the authenticated user's profile.
type ProfileAPI interface {
	GetProfile(ctx context.Context, credential string) (*apiclient.Profile, error)
}

// Deps carries the collaborators the router needs.
type Deps struct {
	Store         kv.Store
	Catalog       CatalogAPI
	Auth          AuthAPI
	Orders        OrderAPI
	Profile       ProfileAPI
	Checkout      *checkout.Adapter
	DB            *pgxpool.Pool
	AllowedOrigin string
	CookieSecure  bool
}

// buildRouter wires routes for the storefront.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Store == nil {
		return nil, errors.New("kv store required")
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.AllowedOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.Use(sessionCookie(deps.CookieSecure))

	api.POST("/auth/signup", h.signup)
	api.POST("/auth/login", h.login)
	api.POST("/auth/logout", h.logout)
	api.GET("/me", h.profile)

	api.GET("/vehicles", h.searchVehicles)
	api.GET("/vehicles/:id", h.getVehicle)

	api.GET("/cart", h.viewCart)
	api.POST("/cart/items", h.addCartItem)
	api.PATCH("/cart/items/:vehicleId", h.updateCartItem)
	api.DELETE("/cart/items/:vehicleId", h.removeCartItem)
	api.DELETE("/cart", h.clearCart)

	api.POST("/checkout", h.placeOrder)
	api.GET("/orders", h.listOrders)

	return router, nil
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
