// Package gadata is a thin client for the Google Analytics Data API v1beta
// runReport endpoint. It authenticates with a service-account JSON blob and
// speaks the REST JSON representation directly; only the one call this
// service needs is implemented.
package gadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
)

// DefaultBaseURL is the production Analytics Data API endpoint.
const DefaultBaseURL = "https://analyticsdata.googleapis.com/v1beta"

// scope is the OAuth2 scope for read-only report access.
const scope = "https://www.googleapis.com/auth/analytics.readonly"

// Runner issues one report query against an analytics property using the
// given service-account credentials. It exists so the chart gateway can be
// tested without a live Google endpoint.
type Runner interface {
	RunReport(ctx context.Context, credentials []byte, propertyID string, req *RunReportRequest) (*ReportResult, error)
}

// DefaultTimeout bounds one runReport round trip.
const DefaultTimeout = 30 * time.Second

// Client is the production Runner backed by the real API.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client // overrides OAuth transport when set (tests)
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, e.g. an httptest
// server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout sets the per-query timeout. Zero or negative values are
// ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient bypasses service-account authentication and issues
// requests with the given client. Intended for tests against fake servers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a runReport client.
func NewClient(logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunReport executes a runReport query for the given property. The
// credentials blob is a Google service-account key JSON document; it is
// exchanged for a bearer token via a two-legged OAuth2 JWT flow on every
// call, which keeps the client stateless across settings changes.
func (c *Client) RunReport(ctx context.Context, credentials []byte, propertyID string, req *RunReportRequest) (*ReportResult, error) {
	httpc := c.httpClient
	if httpc == nil {
		conf, err := google.JWTConfigFromJSON(credentials, scope)
		if err != nil {
			return nil, fmt.Errorf("parse service account credentials: %w", err)
		}
		httpc = conf.Client(ctx)
		httpc.Timeout = c.timeout
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode runReport request: %w", err)
	}

	url := fmt.Sprintf("%s/properties/%s:runReport", c.baseURL, propertyID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("runReport request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The API returns a JSON error envelope; surface its message when
		// present so misconfiguration is diagnosable from logs.
		msg := readErrorMessage(resp.Body)
		c.logger.Warn("analytics API rejected runReport",
			zap.String("property_id", propertyID),
			zap.Int("status", resp.StatusCode),
			zap.String("api_message", msg),
		)
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("runReport returned %d: %s", resp.StatusCode, msg)
	}

	var result ReportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode runReport response: %w", err)
	}

	c.logger.Debug("runReport completed",
		zap.String("property_id", propertyID),
		zap.Int("rows", len(result.Rows)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &result, nil
}

// readErrorMessage pulls the message out of a Google API error envelope,
// returning "" if the body is not in that shape.
func readErrorMessage(r io.Reader) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&envelope); err != nil {
		return ""
	}
	return envelope.Error.Message
}
