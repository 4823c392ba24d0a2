// Package api implements the HTTP client for the backend order service.
// The backend owns durable storage and assigns order ids, statuses and
// timestamps; this client only submits requests and decodes responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"maitred/internal/models"
)

// Client handles API requests to the restaurant backend
type Client struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
	}
}

// errorBody is the backend's JSON error envelope
type errorBody struct {
	Error string `json:"error"`
}

// CheckHealth checks if the API is up and running
func (c *Client) CheckHealth(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}
	return true, nil
}

// FetchOrders retrieves the full order list, newest first.
func (c *Client) FetchOrders(ctx context.Context) ([]models.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/orders", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp)
	}

	var orders []models.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// CreateOrder submits a draft payload. The created order is returned for
// confirmation, but callers normally wait for the channel's creation event.
func (c *Client) CreateOrder(ctx context.Context, payload models.OrderPayload) (*models.Order, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, remoteError(resp)
	}

	var created models.Order
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode created order: %w", err)
	}
	return &created, nil
}

// UpdateStatus sets an order's status on the backend.
func (c *Client) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) (*models.Order, error) {
	body, err := json.Marshal(map[string]models.OrderStatus{"status": status})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/orders/%d/status", c.BaseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp)
	}

	var updated models.Order
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated order: %w", err)
	}
	return &updated, nil
}

// DeleteOrder removes an order on the backend.
func (c *Client) DeleteOrder(ctx context.Context, orderID int) error {
	url := fmt.Sprintf("%s/orders/%d", c.BaseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remoteError(resp)
	}
	return nil
}

// remoteError surfaces the backend's {error} body, falling back to a
// generic message when the body is not parsable.
func remoteError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var e errorBody
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s", e.Error)
		}
	}
	return fmt.Errorf("Request failed: HTTP %d", resp.StatusCode)
}
