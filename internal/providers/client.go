package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dshills/promptgate/internal/config"
	"github.com/dshills/promptgate/internal/redact"
)

// DefaultTimeout bounds the single round trip.
const DefaultTimeout = 60 * time.Second

// maxResponseBody caps how much of a response is read.
const maxResponseBody = 8 << 20

// Client sends one completion request per call.
type Client struct {
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a Client with the default timeout.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		client: &http.Client{Timeout: DefaultTimeout},
		logger: logger,
	}
}

// Complete performs the completion described by cfg. It never returns an
// error: every failure is reported through Result.Error with the API key
// scrubbed out.
func (c *Client) Complete(ctx context.Context, cfg config.EffectiveConfig) Result {
	completion, err := c.complete(ctx, cfg)
	if err != nil {
		c.log().Debug("completion failed", "provider", cfg.Provider, "model", cfg.Model, "error", err)
		return Failed(cfg.Provider, cfg.Model, errors.New(redact.Text(err.Error(), cfg.APIKey)))
	}
	return Succeeded(cfg.Provider, cfg.Model, completion)
}

func (c *Client) complete(ctx context.Context, cfg config.EffectiveConfig) (Completion, error) {
	if err := cfg.Validate(); err != nil {
		return Completion{}, err
	}

	adapter, err := New(cfg.Provider)
	if err != nil {
		return Completion{}, err
	}
	if _, known := Lookup(cfg.Provider, cfg.Model); !known {
		c.log().Debug("model not in catalog", "provider", cfg.Provider, "model", cfg.Model)
	}

	httpReq, err := adapter.BuildRequest(ctx, cfg)
	if err != nil {
		return Completion{}, fmt.Errorf("%s: %w", cfg.Provider, err)
	}

	start := time.Now()
	c.log().Debug("sending completion request",
		"provider", cfg.Provider, "model", cfg.Model, "url", httpReq.URL.Redacted())

	httpResp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return Completion{}, &TransportError{Provider: cfg.Provider, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return Completion{}, &TransportError{Provider: cfg.Provider, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.log().Debug("received completion response",
		"provider", cfg.Provider, "status", httpResp.StatusCode,
		"bytes", len(respBody), "elapsed", time.Since(start))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return Completion{}, &TransportError{
			Provider:   cfg.Provider,
			StatusCode: httpResp.StatusCode,
			Body:       truncate(string(respBody), maxErrorBody),
		}
	}

	return adapter.ParseResponse(respBody)
}

func (c *Client) httpClient() *http.Client {
	if c.client != nil {
		return c.client
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(slog.DiscardHandler)
}
