package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDisabled indicates no payment provider is configured. Prepaid checkout
// surfaces this as a failed payment link, never as a failed order.
var ErrDisabled = errors.New("payment provider not configured")

// Client creates hosted payment links for prepaid orders.
type Client interface {
	CreateLink(ctx context.Context, amount decimal.Decimal, reference, payer string) (string, error)
}

// HTTPClient implements Client against a payment provider link API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type linkRequest struct {
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
	Payer     string `json:"payer,omitempty"`
}

type linkResponse struct {
	URL string `json:"url"`
}

// NewHTTPClient creates a payment client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateLink requests a hosted payment page for the given amount. The order
// number is passed as the provider reference so confirmation callbacks can be
// matched back.
func (c *HTTPClient) CreateLink(ctx context.Context, amount decimal.Decimal, reference, payer string) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/links")

	body, err := json.Marshal(linkRequest{
		Amount:    amount.StringFixed(2),
		Reference: reference,
		Payer:     payer,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment link request failed",
			slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		return "", fmt.Errorf("payment error: %s", resp.Status)
	}

	var data linkResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.URL == "" {
		return "", fmt.Errorf("payment provider returned empty link")
	}
	return data.URL, nil
}

// Disabled is the stand-in used when no provider URL is configured.
type Disabled struct{}

// CreateLink always fails with ErrDisabled.
func (Disabled) CreateLink(context.Context, decimal.Decimal, string, string) (string, error) {
	return "", ErrDisabled
}
