// Package apiclient talks to the remote vehicle catalog/auth/order API.
// Every authenticated call attaches the session credential as a bearer
// token; a 401 response is surfaced as domain.ErrUnauthorized so the
// session gate can invalidate itself.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vehicle-storefront/internal/domain"
)

// ErrRejected is returned when the API rejects a request payload, for
// example bad login credentials. The wrapped message is safe to show.
var ErrRejected = errors.New("rejected by api")

// Client is a thin JSON client over the remote vehicle API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New builds a Client. The shared http.Client carries the timeout for
// every call.
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput carries the signup profile.
type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResult pairs the issued credential with the identity it proves.
type AuthResult struct {
	Credential string
	Identity   domain.Identity
}

type authResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Login exchanges credentials for a bearer token and identity.
func (c *Client) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	var resp authResponse
	if err := c.postJSON(ctx, "/api/auth/login", "", in, &resp); err != nil {
		return nil, err
	}
	return authResultFrom(resp)
}

// Signup registers a profile and returns the issued token and identity.
func (c *Client) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	var resp authResponse
	if err := c.postJSON(ctx, "/api/auth/signup", "", in, &resp); err != nil {
		return nil, err
	}
	return authResultFrom(resp)
}

func authResultFrom(resp authResponse) (*AuthResult, error) {
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: no token in auth response", ErrRejected)
	}
	return &AuthResult{
		Credential: resp.Token,
		Identity: domain.Identity{
			Email:     resp.Email,
			FirstName: resp.FirstName,
			LastName:  resp.LastName,
		},
	}, nil
}

// VehicleQuery mirrors the catalog listing parameters.
type VehicleQuery struct {
	Name     string
	Brand    string
	Model    string
	Type     string
	FuelType string
	MinPrice string
	MaxPrice string
	Page     int
	Size     int
	SortBy   string
	SortDir  string
}

func (q VehicleQuery) values() url.Values {
	v := url.Values{}
	setIfPresent(v, "name", q.Name)
	setIfPresent(v, "brand", q.Brand)
	setIfPresent(v, "model", q.Model)
	setIfPresent(v, "type", q.Type)
	setIfPresent(v, "fuelType", q.FuelType)
	setIfPresent(v, "minPrice", q.MinPrice)
	setIfPresent(v, "maxPrice", q.MaxPrice)
	v.Set("page", strconv.Itoa(q.Page))
	size := q.Size
	if size <= 0 {
		size = 10
	}
	v.Set("size", strconv.Itoa(size))
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	v.Set("sortBy", sortBy)
	sortDir := q.SortDir
	if sortDir == "" {
		sortDir = "asc"
	}
	v.Set("sortDir", sortDir)
	return v
}

func setIfPresent(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

type vehicleDTO struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	Year              int     `json:"year"`
	Color             string  `json:"color"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantityAvailable"`
	Description       string  `json:"description"`
	ImageURL          string  `json:"imageUrl"`
	Type              string  `json:"type"`
	FuelType          string  `json:"fuelType"`
}

type vehiclePageDTO struct {
	Content       []vehicleDTO `json:"content"`
	TotalPages    int          `json:"totalPages"`
	TotalElements int64        `json:"totalElements"`
	Number        int          `json:"number"`
}

// SearchVehicles fetches one page of catalog results.
func (c *Client) SearchVehicles(ctx context.Context, q VehicleQuery) (*domain.VehiclePage, error) {
	var page vehiclePageDTO
	if err := c.getJSON(ctx, "/api/vehicles?"+q.values().Encode(), "", &page); err != nil {
		return nil, err
	}
	vehicles := make([]domain.Vehicle, 0, len(page.Content))
	for _, dto := range page.Content {
		vehicles = append(vehicles, vehicleFrom(dto))
	}
	return &domain.VehiclePage{
		Vehicles:   vehicles,
		PageNumber: page.Number,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalElements,
	}, nil
}

// GetVehicle fetches a single vehicle by id.
func (c *Client) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var dto vehicleDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/api/vehicles/%d", id), "", &dto); err != nil {
		return nil, err
	}
	v := vehicleFrom(dto)
	return &v, nil
}

func vehicleFrom(dto vehicleDTO) domain.Vehicle {
	return domain.Vehicle{
		ID:                dto.ID,
		Name:              dto.Name,
		Brand:             dto.Brand,
		Model:             dto.Model,
		Year:              dto.Year,
		Color:             dto.Color,
		PriceCents:        centsFromDecimal(dto.Price),
		QuantityAvailable: dto.QuantityAvailable,
		Description:       dto.Description,
		ImageURL:          dto.ImageURL,
		Type:              dto.Type,
		FuelType:          dto.FuelType,
	}
}

type orderItemDTO struct {
	VehicleID    int64   `json:"vehicleId"`
	VehicleName  string  `json:"vehicleName"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

type orderDTO struct {
	ID              int64          `json:"id"`
	UserEmail       string         `json:"userEmail"`
	ShippingAddress string         `json:"shippingAddress"`
	TotalAmount     float64        `json:"totalAmount"`
	Status          string         `json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`
	Items           []orderItemDTO `json:"items"`
}

type orderPageDTO struct {
	Content    []orderDTO `json:"content"`
	TotalPages int        `json:"totalPages"`
	Number     int        `json:"number"`
}

// CreateOrder submits an order request once. There is no retry here;
// transient failures come back as domain.ErrUnavailable and the caller
// decides whether to re-submit.
func (c *Client) CreateOrder(ctx context.Context, credential string, req domain.OrderRequest) (*domain.Order, error) {
	var dto orderDTO
	if err := c.postJSON(ctx, "/api/orders", credential, req, &dto); err != nil {
		return nil, err
	}
	order := orderFrom(dto)
	return &order, nil
}

// OrderQuery mirrors the order history paging parameters.
type OrderQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// ListOrders fetches one page of the caller's order history.
func (c *Client) ListOrders(ctx context.Context, credential string, q OrderQuery) (*domain.OrderPage, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	size := q.Size
	if size <= 0 {
		size = 10
	}
	v.Set("size", strconv.Itoa(size))
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	v.Set("sortBy", sortBy)
	sortDir := q.SortDir
	if sortDir == "" {
		sortDir = "desc"
	}
	v.Set("sortDir", sortDir)

	var page orderPageDTO
	if err := c.getJSON(ctx, "/api/orders?"+v.Encode(), credential, &page); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(page.Content))
	for _, dto := range page.Content {
		orders = append(orders, orderFrom(dto))
	}
	return &domain.OrderPage{
		Orders:     orders,
		PageNumber: page.Number,
		TotalPages: page.TotalPages,
	}, nil
}

func orderFrom(dto orderDTO) domain.Order {
	lines := make([]domain.OrderLine, 0, len(dto.Items))
	for _, item := range dto.Items {
		lines = append(lines, domain.OrderLine{
			VehicleID:      item.VehicleID,
			VehicleName:    item.VehicleName,
			Quantity:       item.Quantity,
			UnitPriceCents: centsFromDecimal(item.PricePerUnit),
		})
	}
	return domain.Order{
		ID:              dto.ID,
		UserEmail:       dto.UserEmail,
		ShippingAddress: dto.ShippingAddress,
		TotalCents:      centsFromDecimal(dto.TotalAmount),
		Status:          dto.Status,
		CreatedAt:       dto.CreatedAt,
		Lines:           lines,
	}
}

// Profile is the authenticated user's profile record.
type Profile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context, credential string) (*Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, "/api/users/profile", credential, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) getJSON(ctx context.Context, path, credential string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, credential, out)
}

func (c *Client) postJSON(ctx context.Context, path, credential string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, credential, out)
}

func (c *Client) do(req *http.Request, credential string, out interface{}) error {
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.classify(req, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrUnavailable, req.URL.Path, err)
	}
	return nil
}

// classify maps non-200 responses onto the error taxonomy: 401 means the
// credential was rejected, 404 not found, other 4xx a rejected payload,
// and everything else is treated as transient.
func (c *Client) classify(req *http.Request, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	c.logger.Printf("api %s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: %s", ErrRejected, rejectionMessage(body))
	default:
		return fmt.Errorf("%w: status %d", domain.ErrUnavailable, resp.StatusCode)
	}
}

// rejectionMessage pulls the {"error": "..."} message the API uses for
// rejected payloads, falling back to field errors or the raw body.
func rejectionMessage(body []byte) string {
	var fields map[string]string
	if err := json.Unmarshal(body, &fields); err == nil {
		if msg, ok := fields["error"]; ok {
			return msg
		}
		for _, msg := range fields {
			return msg
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return "request rejected"
}

func centsFromDecimal(price float64) int64 {
	return int64(math.Round(price * 100))
}
