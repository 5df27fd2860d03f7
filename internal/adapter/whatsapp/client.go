package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Client sends outbound text messages to customers.
type Client interface {
	Send(ctx context.Context, to, text string) error
}

// HTTPClient implements Client against the Cloud API messages endpoint.
type HTTPClient struct {
	baseURL    *url.URL
	phoneID    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             sendText `json:"text"`
}

type sendText struct {
	Body string `json:"body"`
}

// NewHTTPClient creates a messaging client with default timeout.
func NewHTTPClient(baseURL, phoneID, token string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse messaging url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("messaging url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		phoneID: phoneID,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send delivers one text message to the given phone number.
func (c *HTTPClient) Send(ctx context.Context, to, text string) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, c.phoneID, "messages")

	body, err := json.Marshal(sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             sendText{Body: text},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("message send failed",
			slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		return fmt.Errorf("messaging error: %s", resp.Status)
	}
	return nil
}
