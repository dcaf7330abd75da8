package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"vehicle-storefront/internal/apiclient"
	"vehicle-storefront/internal/cart"
	"vehicle-storefront/internal/domain"
	"vehicle-storefront/internal/repository/kv"
	"vehicle-storefront/internal/session"
)

type stubOrders struct {
	order       *domain.Order
	err         error
	calls       int
	lastRequest domain.OrderRequest
	lastCred    string
}

func (s *stubOrders) CreateOrder(_ context.Context, credential string, req domain.OrderRequest) (*domain.Order, error) {
	s.calls++
	s.lastCred = credential
	s.lastRequest = req
	return s.order, s.err
}

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, _ apiclient.LoginInput) (*apiclient.AuthResult, error) {
	return &apiclient.AuthResult{Credential: "tok-1", Identity: domain.Identity{Email: "a@b.com"}}, nil
}

func (stubAuth) Signup(_ context.Context, _ apiclient.SignupInput) (*apiclient.AuthResult, error) {
	return &apiclient.AuthResult{Credential: "tok-1", Identity: domain.Identity{Email: "a@b.com"}}, nil
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func validAddress() ShippingAddress {
	return ShippingAddress{
		Street:      "1 Main St",
		City:        "Springfield",
		State:       "IL",
		ZipCode:     "62701",
		Country:     "USA",
		PhoneNumber: "555-0101",
	}
}

func fixtures(t *testing.T, authenticated bool, lines int) (*session.Gate, *cart.Engine) {
	t.Helper()
	store := kv.NewMemory()
	ctx := context.Background()

	gate, err := session.Hydrate(ctx, store, stubAuth{}, "session:s1")
	if err != nil {
		t.Fatalf("hydrate gate: %v", err)
	}
	if authenticated {
		if _, err := gate.Login(ctx, apiclient.LoginInput{Email: "a@b.com", Password: "pw"}); err != nil {
			t.Fatalf("login: %v", err)
		}
	}

	engine, err := cart.Hydrate(ctx, store, "cart:s1")
	if err != nil {
		t.Fatalf("hydrate cart: %v", err)
	}
	for i := 0; i < lines; i++ {
		v := domain.Vehicle{ID: int64(i + 1), Name: "V", PriceCents: 1000000}
		if _, err := engine.AddItem(ctx, v, 1); err != nil {
			t.Fatalf("add item: %v", err)
		}
	}
	return gate, engine
}

func TestSubmitOrderSuccessClearsCart(t *testing.T) {
	gate, engine := fixtures(t, true, 2)
	orders := &stubOrders{order: &domain.Order{ID: 42}}
	adapter := New(orders, logDiscard())

	order, err := adapter.SubmitOrder(context.Background(), gate, engine, validAddress())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.ID != 42 {
		t.Fatalf("unexpected order id %d", order.ID)
	}
	if engine.ItemCount() != 0 {
		t.Fatal("cart must be cleared after a confirmed order")
	}
	if orders.lastCred != "tok-1" {
		t.Fatalf("expected session credential, got %q", orders.lastCred)
	}
	if got := orders.lastRequest.ShippingAddress; got != "1 Main St, Springfield, IL 62701, USA" {
		t.Fatalf("unexpected formatted address %q", got)
	}
	if len(orders.lastRequest.Items) != 2 {
		t.Fatalf("unexpected items: %+v", orders.lastRequest.Items)
	}

	// the now-empty cart refuses a second submission locally
	if _, err := adapter.SubmitOrder(context.Background(), gate, engine, validAddress()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if orders.calls != 1 {
		t.Fatalf("remote API must not be called for the refused submission, calls=%d", orders.calls)
	}
}

func TestSubmitOrderFailurePreservesCart(t *testing.T) {
	gate, engine := fixtures(t, true, 1)
	orders := &stubOrders{err: domain.ErrUnavailable}
	adapter := New(orders, logDiscard())

	if _, err := adapter.SubmitOrder(context.Background(), gate, engine, validAddress()); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if engine.ItemCount() != 1 {
		t.Fatal("cart must be untouched on failure")
	}
	if !gate.IsAuthenticated() {
		t.Fatal("transient failure must not touch the session")
	}
}

func TestSubmitOrderRefusedWhenAnonymous(t *testing.T) {
	gate, engine := fixtures(t, false, 1)
	orders := &stubOrders{order: &domain.Order{ID: 1}}
	adapter := New(orders, logDiscard())

	if _, err := adapter.SubmitOrder(context.Background(), gate, engine, validAddress()); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatal("remote API must not be called when unauthenticated")
	}
}

func TestSubmitOrderValidatesAddress(t *testing.T) {
	gate, engine := fixtures(t, true, 1)
	orders := &stubOrders{order: &domain.Order{ID: 1}}
	adapter := New(orders, logDiscard())

	addr := validAddress()
	addr.City = "  "
	if _, err := adapter.SubmitOrder(context.Background(), gate, engine, addr); err == nil || err.Error() != "city is required" {
		t.Fatalf("expected city validation error, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatal("validation errors are rejected before any network call")
	}
}

func TestSubmitOrderUnauthorizedInvalidatesSessionKeepsCart(t *testing.T) {
	gate, engine := fixtures(t, true, 2)
	orders := &stubOrders{err: domain.ErrUnauthorized}
	adapter := New(orders, logDiscard())

	if _, err := adapter.SubmitOrder(context.Background(), gate, engine, validAddress()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if gate.IsAuthenticated() {
		t.Fatal("credential rejection must invalidate the session")
	}
	if engine.ItemCount() != 2 {
		t.Fatal("cart survives session invalidation")
	}
}

func TestSubmitOrderSnapshotIgnoresConcurrentEdits(t *testing.T) {
	gate, engine := fixtures(t, true, 1)
	ctx := context.Background()

	// the API call lands after the UI already removed the line
	orders := &stubOrders{order: &domain.Order{ID: 9}}
	adapter := New(&snapshotCheckingOrders{inner: orders, engine: engine}, logDiscard())

	order, err := adapter.SubmitOrder(ctx, gate, engine, validAddress())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.ID != 9 {
		t.Fatalf("unexpected order id %d", order.ID)
	}
	if len(orders.lastRequest.Items) != 1 || orders.lastRequest.Items[0].Quantity != 1 {
		t.Fatalf("in-flight request altered by cart edit: %+v", orders.lastRequest.Items)
	}
}

type snapshotCheckingOrders struct {
	inner  *stubOrders
	engine *cart.Engine
}

func (s *snapshotCheckingOrders) CreateOrder(ctx context.Context, credential string, req domain.OrderRequest) (*domain.Order, error) {
	// mutate the cart mid-flight; the request must already be frozen
	if _, err := s.engine.UpdateQuantity(ctx, req.Items[0].VehicleID, 5); err != nil {
		return nil, err
	}
	return s.inner.CreateOrder(ctx, credential, req)
}
