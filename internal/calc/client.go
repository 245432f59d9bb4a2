// Package calc is the thin client for the external calculation service. The
// service owns the emission formulas; this client only ships inputs and
// returns the computed kg. A failed request never reaches the profile store.
package calc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

const defaultTimeout = 10 * time.Second

// CalculationResponse is the service's answer for any of the three
// calculation endpoints.
type CalculationResponse struct {
	EmissionsKG float64 `json:"emissions_kg"`
	Category    string  `json:"category"`
}

// AuthResponse carries the bearer token returned by login/register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	Name        string `json:"name,omitempty"`
}

// Client wraps the calculation/auth HTTP API.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Logger

	mu    sync.RWMutex
	token string
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client (tests, custom timeouts).
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient builds a client against the service base URL, e.g.
// "http://localhost:8000".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token captured by the last successful login or
// register call.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Printf("[calc] request failed: %s %s: %v", http.MethodPost, path, err)
		return fmt.Errorf("calc service %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("calc service %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(b))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("calc service %s: decode response: %w", path, err)
	}
	return nil
}

// CalculateTransport asks the service for the emissions of a trip.
func (c *Client) CalculateTransport(ctx context.Context, transportType string, distanceKM float64) (CalculationResponse, error) {
	var out CalculationResponse
	err := c.post(ctx, "/api/calculate/transport", map[string]any{
		"transport_type": transportType,
		"distance_km":    distanceKM,
	}, &out)
	return out, err
}

// CalculateEnergy asks the service for the emissions of energy consumption.
func (c *Client) CalculateEnergy(ctx context.Context, energyType string, consumption float64) (CalculationResponse, error) {
	var out CalculationResponse
	err := c.post(ctx, "/api/calculate/energy", map[string]any{
		"energy_type": energyType,
		"consumption": consumption,
	}, &out)
	return out, err
}

// CalculateFood asks the service for the emissions of a diet over some days.
func (c *Client) CalculateFood(ctx context.Context, dietType string, days float64) (CalculationResponse, error) {
	var out CalculationResponse
	err := c.post(ctx, "/api/calculate/food", map[string]any{
		"diet_type": dietType,
		"days":      days,
	}, &out)
	return out, err
}

// Login authenticates and keeps the returned token for later requests.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, &out)
	if err == nil {
		c.setToken(out.AccessToken)
	}
	return out, err
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/api/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	}, &out)
	if err == nil {
		c.setToken(out.AccessToken)
	}
	return out, err
}
