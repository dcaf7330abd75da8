package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"vehicle-storefront/internal/domain"
	"vehicle-storefront/internal/repository/kv"
)

// ErrInvalidQuantity is returned when a mutation is called with a
// quantity below 1. Removal goes through RemoveItem, never a zero update.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Engine is the sole owner of one cart's state. Every mutation is
// persisted to the store before it is visible, so a reload always
// observes the latest completed mutation.
type Engine struct {
	mu    sync.Mutex
	store kv.Store
	key   string
	cart  domain.Cart
}

// Hydrate builds an Engine from the persisted cart under key. Absent or
// malformed data initializes an empty cart rather than failing.
func Hydrate(ctx context.Context, store kv.Store, key string) (*Engine, error) {
	e := &Engine{store: store, key: key}
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		var cart domain.Cart
		if err := json.Unmarshal([]byte(raw), &cart); err == nil {
			e.cart = cart
		}
	}
	return e, nil
}

// AddItem merges quantity into an existing line for the vehicle or
// appends a new line at the end. Display fields and the unit price are
// copied from the vehicle snapshot at add time.
func (e *Engine) AddItem(ctx context.Context, v domain.Vehicle, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, ErrInvalidQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := cloneLines(e.cart.Lines)
	merged := false
	for i := range next {
		if next[i].VehicleID == v.ID {
			next[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, domain.CartLine{
			VehicleID:      v.ID,
			Name:           v.Name,
			Brand:          v.Brand,
			Model:          v.Model,
			ImageURL:       v.ImageURL,
			UnitPriceCents: v.PriceCents,
			Quantity:       quantity,
		})
	}
	return e.commit(ctx, next)
}

// RemoveItem deletes the line for vehicleID. Removing an absent line is a
// no-op, not an error.
func (e *Engine) RemoveItem(ctx context.Context, vehicleID int64) (domain.Cart, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := make([]domain.CartLine, 0, len(e.cart.Lines))
	for _, l := range e.cart.Lines {
		if l.VehicleID != vehicleID {
			next = append(next, l)
		}
	}
	if len(next) == len(e.cart.Lines) {
		return e.snapshotLocked(), nil
	}
	return e.commit(ctx, next)
}

// UpdateQuantity sets the quantity of an existing line. Updating an
// absent line is a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, vehicleID int64, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, ErrInvalidQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := cloneLines(e.cart.Lines)
	found := false
	for i := range next {
		if next[i].VehicleID == vehicleID {
			next[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return e.snapshotLocked(), nil
	}
	return e.commit(ctx, next)
}

// Clear empties the cart.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := e.commit(ctx, nil)
	return err
}

// Snapshot returns an independent copy of the cart; later mutations do
// not affect it.
func (e *Engine) Snapshot() domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// TotalCents is the sum of unit price times quantity over all lines.
func (e *Engine) TotalCents() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.TotalCents()
}

// ItemCount is the sum of line quantities.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.ItemCount()
}

// commit persists the candidate lines, then makes them current. On a
// persist failure the in-memory cart is unchanged.
func (e *Engine) commit(ctx context.Context, lines []domain.CartLine) (domain.Cart, error) {
	candidate := domain.Cart{Lines: lines}
	raw, err := json.Marshal(candidate)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := e.store.Set(ctx, e.key, string(raw)); err != nil {
		return domain.Cart{}, err
	}
	e.cart = candidate
	return e.snapshotLocked(), nil
}

func (e *Engine) snapshotLocked() domain.Cart {
	return domain.Cart{Lines: cloneLines(e.cart.Lines)}
}

func cloneLines(lines []domain.CartLine) []domain.CartLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}
