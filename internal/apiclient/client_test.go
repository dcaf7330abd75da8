package apiclient

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vehicle-storefront/internal/domain"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, logDiscard()), srv
}

func TestLoginSuccess(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"token":"tok-1","email":"a@b.com","firstName":"Ada","lastName":"B"}`)
	})

	res, err := client.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Credential != "tok-1" || res.Identity.Email != "a@b.com" || res.Identity.FirstName != "Ada" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLoginRejected(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"Invalid email or password"}`)
	})

	_, err := client.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "bad"})
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestCreateOrderAttachesBearerCredential(t *testing.T) {
	var gotAuth string
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":42,"shippingAddress":"1 Main St","totalAmount":45000.00,"status":"PENDING","items":[{"vehicleId":7,"vehicleName":"Aurora GT","quantity":1,"pricePerUnit":45000.00}]}`)
	})

	order, err := client.CreateOrder(context.Background(), "tok-1", domain.OrderRequest{
		ShippingAddress: "1 Main St",
		Items:           []domain.OrderItem{{VehicleID: 7, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer credential, got %q", gotAuth)
	}
	if order.ID != 42 || order.TotalCents != 4500000 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if len(order.Lines) != 1 || order.Lines[0].UnitPriceCents != 4500000 {
		t.Fatalf("unexpected lines: %+v", order.Lines)
	}
}

func TestUnauthorizedClassification(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListOrders(context.Background(), "expired", OrderQuery{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestServerErrorIsTransient(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CreateOrder(context.Background(), "tok", domain.OrderRequest{
		ShippingAddress: "1 Main St",
		Items:           []domain.OrderItem{{VehicleID: 1, Quantity: 1}},
	})
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNetworkErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	client := New(srv.URL, time.Second, logDiscard())

	_, err := client.GetVehicle(context.Background(), 1)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestSearchVehiclesQueryAndPaging(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("brand") != "Aurora" || q.Get("sortBy") != "price" || q.Get("sortDir") != "desc" {
			t.Errorf("unexpected query: %v", q)
		}
		if q.Get("page") != "2" || q.Get("size") != "10" {
			t.Errorf("unexpected paging: %v", q)
		}
		if q.Has("minPrice") {
			t.Errorf("empty filter must be omitted: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"content":[{"id":7,"name":"Aurora GT","brand":"Aurora","model":"GT","price":45000.00,"quantityAvailable":3}],"totalPages":5,"totalElements":41,"number":2}`)
	})

	page, err := client.SearchVehicles(context.Background(), VehicleQuery{
		Brand:   "Aurora",
		Page:    2,
		SortBy:  "price",
		SortDir: "desc",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalPages != 5 || page.PageNumber != 2 || len(page.Vehicles) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Vehicles[0].PriceCents != 4500000 {
		t.Fatalf("expected cents conversion, got %d", page.Vehicles[0].PriceCents)
	}
}
