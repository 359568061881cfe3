package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/config"
	"github.com/tokosinar/posfront/internal/domain"
)

// Client talks to the POS backend service. The backend owns carts, pricing,
// stock and transactions; this client only sends intents and decodes the
// authoritative snapshots it gets back.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new backend client
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	// Normalize base URL - strip trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// APIError is a non-2xx reply from the backend. Message carries the
// server-supplied error text when the backend included one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error: status %d", e.StatusCode)
}

// errorEnvelope is the backend's error body shape.
type errorEnvelope struct {
	Message string `json:"message"`
}

// do executes one JSON request/response round trip. No retries: every intent
// is sent exactly once and either resolves or fails.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	url := c.baseURL + path

	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		_ = json.Unmarshal(respBody, &envelope)
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// LoadWorkspace fetches the page-load input for a fresh transaction screen:
// current cart, customers, catalog, categories and gateway list.
func (c *Client) LoadWorkspace(ctx context.Context) (*WorkspacePayload, error) {
	var payload WorkspacePayload
	if err := c.do(ctx, http.MethodGet, "/pos/workspace", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AddToCart asks the backend to add one product to the cart and returns the
// updated authoritative snapshot.
func (c *Client) AddToCart(ctx context.Context, in AddToCartInput) (*CartSnapshot, error) {
	var snap CartSnapshot
	if err := c.do(ctx, http.MethodPost, "/pos/carts", in, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// UpdateCartLine changes the quantity of one cart line.
func (c *Client) UpdateCartLine(ctx context.Context, lineID int64, qty int) (*CartSnapshot, error) {
	var snap CartSnapshot
	in := updateCartLineInput{Qty: qty}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/pos/carts/%d", lineID), in, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// RemoveCartLine deletes one cart line.
func (c *Client) RemoveCartLine(ctx context.Context, lineID int64) (*CartSnapshot, error) {
	var snap CartSnapshot
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/pos/carts/%d", lineID), nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// CreateTransaction finalizes the sale. The backend assigns the invoice
// number, decrements stock and, for gateway payments, creates the payment.
func (c *Client) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.do(ctx, http.MethodPost, "/pos/transactions", in, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransaction fetches a finished transaction for the invoice view.
func (c *Client) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pos/transactions/%d", id), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
