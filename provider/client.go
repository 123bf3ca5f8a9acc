// Package provider wraps the upstream SMM provider HTTP API. The panel uses
// it from admin tooling only; automatic order fulfillment is not wired into
// the order lifecycle.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a v2-style SMM provider endpoint. All calls are form-posts
// carrying the API key and an action parameter.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a provider client for the given endpoint and key.
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Balance is the provider account balance response.
type Balance struct {
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

// RemoteService describes one service offered by the provider.
type RemoteService struct {
	Service  json.Number `json:"service"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Category string      `json:"category"`
	Rate     string      `json:"rate"`
	Min      json.Number `json:"min"`
	Max      json.Number `json:"max"`
}

// AddOrderResult carries the provider-side order ID.
type AddOrderResult struct {
	Order json.Number `json:"order"`
}

// OrderStatus is the provider's view of a pushed order.
type OrderStatus struct {
	Status     string      `json:"status"`
	Charge     string      `json:"charge"`
	StartCount json.Number `json:"start_count"`
	Remains    json.Number `json:"remains"`
	Currency   string      `json:"currency"`
	Error      string      `json:"error,omitempty"`
}

func (c *Client) post(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL,
		strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("provider response decode: %w", err)
	}
	return nil
}

// GetBalance fetches the reseller account balance.
func (c *Client) GetBalance(ctx context.Context) (*Balance, error) {
	var out Balance
	params := url.Values{"action": {"balance"}}
	if err := c.post(ctx, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetServices lists the provider's service catalog.
func (c *Client) GetServices(ctx context.Context) ([]RemoteService, error) {
	var out []RemoteService
	params := url.Values{"action": {"services"}}
	if err := c.post(ctx, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddOrder pushes one order to the provider and returns its remote ID.
func (c *Client) AddOrder(ctx context.Context, serviceID int, link string, quantity int) (string, error) {
	var out AddOrderResult
	params := url.Values{
		"action":   {"add"},
		"service":  {strconv.Itoa(serviceID)},
		"link":     {link},
		"quantity": {strconv.Itoa(quantity)},
	}
	if err := c.post(ctx, params, &out); err != nil {
		return "", err
	}
	return out.Order.String(), nil
}

// GetOrderStatus polls the provider for a pushed order.
func (c *Client) GetOrderStatus(ctx context.Context, providerOrderID string) (*OrderStatus, error) {
	var out OrderStatus
	params := url.Values{
		"action": {"status"},
		"order":  {providerOrderID},
	}
	if err := c.post(ctx, params, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, fmt.Errorf("provider error: %s", out.Error)
	}
	return &out, nil
}

// CancelOrder asks the provider to cancel a pushed order.
func (c *Client) CancelOrder(ctx context.Context, providerOrderID string) error {
	var out map[string]interface{}
	params := url.Values{
		"action": {"cancel"},
		"order":  {providerOrderID},
	}
	return c.post(ctx, params, &out)
}

// RefillOrder asks the provider to refill a dropped order.
func (c *Client) RefillOrder(ctx context.Context, providerOrderID string) error {
	var out map[string]interface{}
	params := url.Values{
		"action": {"refill"},
		"order":  {providerOrderID},
	}
	return c.post(ctx, params, &out)
}
