// Package hiring provides the Client used to obtain a webhook from the hiring API and to submit the final query to it.
package hiring

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"
	"github.com/ramaditya/webtask/internal/helpers"
	"github.com/ramaditya/webtask/internal/models"
)

// DefaultEndpoint is the hiring API endpoint that issues webhooks.
const DefaultEndpoint = "https://bfhldevapigw.healthrx.co.in/hiring/generateWebhook/JAVA"

const maxErrorBody = 512

// Client talks to the hiring API over HTTP.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	endpoint   string
}

// Option defines a function type used to configure an instance of the Client struct.
type Option func(*Client)

// NewClient initializes a Client. Unset options fall back to DefaultEndpoint and http.DefaultClient.
func NewClient(opts ...Option) *Client {
	_inst := &Client{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.httpClient == nil {
		_inst.httpClient = http.DefaultClient
	}
	if _inst.endpoint == "" {
		_inst.endpoint = DefaultEndpoint
	}
	return _inst
}

// GenerateWebhook posts the candidate profile to the hiring endpoint and decodes the issued webhook.
// An empty or null response body yields a nil response and a nil error.
func (c *Client) GenerateWebhook(ctx context.Context, req models.WebhookRequest) (*models.WebhookResponse, error) {
	c.logger.Debug("requesting webhook...", slog.String("endpoint", c.endpoint), slog.String("regNo", req.RegNo))
	body, err := c.post(ctx, c.endpoint, req, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate webhook")
	}

	var resp *models.WebhookResponse
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode webhook response")
	}
	return resp, nil
}

// SubmitQuery posts the final query to webhook. The token is sent verbatim in the Authorization header.
// The response body is discarded.
func (c *Client) SubmitQuery(ctx context.Context, webhook, token string, req models.FinalQueryRequest) error {
	c.logger.Debug("submitting final query...", slog.String("webhook", webhook))
	if _, err := c.post(ctx, webhook, req, map[string]string{"Authorization": token}); err != nil {
		return errors.Wrap(err, "failed to submit final query")
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload any, headers map[string]string) ([]byte, error) {
	var data bytes.Buffer
	enc := json.NewEncoder(&data)
	// SQL comparison operators are sent as is, not as \u003c / \u003e.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, errors.Wrap(err, "failed to encode request body")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bytes.TrimSuffix(data.Bytes(), []byte("\n"))))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	c.logger.Debug("received response", slog.String("url", url), slog.Int("status", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: helpers.Truncate(string(body), maxErrorBody)}
	}
	return body, nil
}
