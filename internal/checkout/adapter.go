// Package checkout bridges a stable cart snapshot to the remote order
// API and reconciles the outcome back into cart state.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"vehicle-storefront/internal/domain"
)

var (
	// ErrNotSignedIn is returned when submission is attempted without an
	// authenticated session; the remote API is never called.
	ErrNotSignedIn = errors.New("sign in required")
	// ErrEmptyCart is returned when submission is attempted with no cart
	// lines; the remote API is never called.
	ErrEmptyCart = errors.New("cart is empty")
)

// ShippingAddress holds the checkout form fields. The remote API takes a
// single formatted address string; Format assembles it.
type ShippingAddress struct {
	Street      string `json:"shippingAddress"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber"`
}

// Validate reports the first missing required field.
func (a ShippingAddress) Validate() error {
	for _, field := range []struct {
		value string
		name  string
	}{
		{a.Street, "shipping address"},
		{a.City, "city"},
		{a.State, "state"},
		{a.ZipCode, "zip code"},
		{a.Country, "country"},
		{a.PhoneNumber, "phone number"},
	} {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}
	return nil
}

// Format renders the single-line address the order API expects.
func (a ShippingAddress) Format() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.State, a.ZipCode, a.Country)
}

type orderAPI interface {
	CreateOrder(ctx context.Context, credential string, req domain.OrderRequest) (*domain.Order, error)
}

type sessionGate interface {
	IsAuthenticated() bool
	Credential() string
	Invalidate(ctx context.Context) error
}

type cartEngine interface {
	Snapshot() domain.Cart
	Clear(ctx context.Context) error
}

// Adapter submits orders. It holds no per-session state; gate and engine
// are handed in per call.
type Adapter struct {
	orders orderAPI
	logger *log.Logger
}

// New builds an Adapter over the order API.
func New(orders orderAPI, logger *log.Logger) *Adapter {
	return &Adapter{orders: orders, logger: logger}
}

// SubmitOrder validates the address, checks preconditions, snapshots the
// cart once and calls the order API exactly once. The cart is cleared
// only after the call is confirmed successful; on any failure it is left
// untouched. A credential rejection invalidates the session gate before
// the error is returned.
func (a *Adapter) SubmitOrder(ctx context.Context, gate sessionGate, engine cartEngine, address ShippingAddress) (*domain.Order, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if !gate.IsAuthenticated() {
		return nil, ErrNotSignedIn
	}
	snapshot := engine.Snapshot()
	if len(snapshot.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, domain.OrderItem{VehicleID: line.VehicleID, Quantity: line.Quantity})
	}

	order, err := a.orders.CreateOrder(ctx, gate.Credential(), domain.OrderRequest{
		ShippingAddress: address.Format(),
		Items:           items,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			if invErr := gate.Invalidate(ctx); invErr != nil {
				a.logger.Printf("invalidate session after 401: %v", invErr)
			}
		}
		return nil, err
	}

	if err := engine.Clear(ctx); err != nil {
		// the order is placed; report it even if the local clear failed
		a.logger.Printf("clear cart after order %d: %v", order.ID, err)
	}
	return order, nil
}
