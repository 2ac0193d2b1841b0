// Package supabase is the order record sink: a thin PostgREST client that
// inserts settled orders into a hosted table. Missing credentials degrade the
// client to a disabled no-op instead of failing startup.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	checkoutdomain "github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

const ordersTable = "orders"

var _ checkoutports.Sink = (*Client)(nil)

// Client posts order records to the Supabase REST endpoint.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New builds a sink client. baseURL is the project URL without the /rest path.
func New(baseURL, anonKey string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	anonKey = strings.TrimSpace(anonKey)
	if baseURL == "" || anonKey == "" {
		return nil, errors.New("supabase URL and anon key are required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, anonKey: anonKey, httpClient: httpClient, logger: logger}, nil
}

// NewFromEnv builds the client from SUPABASE_URL and SUPABASE_ANON_KEY. When
// either is absent it logs and returns nil so callers run in local-only mode.
func NewFromEnv(logger *slog.Logger) *Client {
	baseURL := os.Getenv("SUPABASE_URL")
	anonKey := os.Getenv("SUPABASE_ANON_KEY")
	client, err := New(baseURL, anonKey, nil, logger)
	if err != nil {
		if logger != nil {
			logger.Warn("supabase credentials not set, order sink disabled")
		}
		return nil
	}
	return client
}

// orderRow matches the hosted orders table.
type orderRow struct {
	ID            string                     `json:"id"`
	CustomerEmail string                     `json:"customer_email"`
	CustomerPhone string                     `json:"customer_phone"`
	FullName      string                     `json:"full_name"`
	Address       string                     `json:"address"`
	City          string                     `json:"city"`
	Region        string                     `json:"region"`
	Items         []checkoutdomain.OrderLine `json:"items"`
	Subtotal      int64                      `json:"subtotal"`
	ShippingFee   int64                      `json:"shipping_fee"`
	Total         int64                      `json:"total"`
	Status        string                     `json:"status"`
	PlacedAt      time.Time                  `json:"placed_at"`
}

// Publish inserts the order. A nil receiver is the disabled client and
// publishes nothing.
func (c *Client) Publish(ctx context.Context, order *checkoutdomain.Order) error {
	if c == nil {
		return nil
	}
	if order == nil {
		return errors.New("order is nil")
	}
	row := orderRow{
		ID:            order.ID,
		CustomerEmail: order.Profile.Email,
		CustomerPhone: order.Profile.Phone,
		FullName:      order.Profile.FullName,
		Address:       order.Profile.Address,
		City:          order.Profile.City,
		Region:        string(order.Profile.Region),
		Items:         order.Lines,
		Subtotal:      order.Subtotal,
		ShippingFee:   order.ShippingFee,
		Total:         order.Total,
		Status:        string(order.Status),
		PlacedAt:      order.PlacedAt,
	}
	payload, err := json.Marshal([]orderRow{row})
	if err != nil {
		return fmt.Errorf("marshal order row: %w", err)
	}
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, ordersTable)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call order sink: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("order sink rejected insert: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if c.logger != nil {
		c.logger.LogAttrs(ctx, slog.LevelInfo, "order published to sink", slog.String("order.id", order.ID))
	}
	return nil
}

// Enabled reports whether the client will actually publish.
func (c *Client) Enabled() bool {
	return c != nil
}
