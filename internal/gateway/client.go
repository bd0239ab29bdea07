// Package gateway implements the HTTP client for the hotel chain API
// gateway: bearer token injection, envelope normalization, and the mapping
// of upstream statuses onto the portal error taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelchain/booking-portal/internal/api/metrics"
	"github.com/hotelchain/booking-portal/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

type ctxKey int

const tokenKey ctxKey = 0

// WithToken returns a context carrying the bearer token to attach to
// upstream calls made with it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func tokenFrom(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey).(string)
	return tok, ok && tok != ""
}

// Client talks to the upstream gateway. All portal calls to the hotel chain
// services go through it.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client for the given base URL (e.g.
// "http://gateway:8080/api/gateway"). A default timeout is applied when none
// is provided.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do performs one upstream exchange and returns the raw 2xx body. Failures
// are classified onto the domain error taxonomy; op labels metrics and logs.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok, ok := tokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "network").Inc()
		c.log.Warn().Err(err).Str("operation", op).Str("url", u).Msg("gateway unreachable")
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "network").Inc()
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrGatewayUnreachable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "ok").Inc()
		return raw, nil
	}

	metrics.GatewayRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	c.log.Debug().
		Str("operation", op).
		Int("status", resp.StatusCode).
		Str("url", u).
		Msg("gateway call failed")
	return nil, classifyStatus(resp.StatusCode, raw)
}

// classifyStatus maps an upstream non-2xx status onto the error taxonomy.
func classifyStatus(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusBadRequest:
		if fields := fieldErrors(body); len(fields) > 0 {
			return &domain.ValidationError{Fields: fields}
		}
		if msg := errorMessage(body); msg != "" {
			return fmt.Errorf("%w: %s", domain.ErrValidationFailed, msg)
		}
		return domain.ErrValidationFailed
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	default:
		return fmt.Errorf("%w: status %d", domain.ErrGatewayFailure, status)
	}
}

// fieldErrors extracts per-field messages from a 400 body, when present.
// The gateway emits either {"errors": {"field": "msg", ...}} or a flat
// {"error": "msg"}.
func fieldErrors(body []byte) map[string]string {
	var wrapped struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil
	}
	return wrapped.Errors
}

func errorMessage(body []byte) string {
	var wrapped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return ""
	}
	if wrapped.Error != "" {
		return wrapped.Error
	}
	return wrapped.Message
}

// getJSON performs a GET and decodes the normalized payload into out.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	raw, err := c.do(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.decode(op, raw, out)
}

// sendJSON performs a write-method exchange and decodes the normalized
// payload into out. out may be nil when the response body is irrelevant.
func (c *Client) sendJSON(ctx context.Context, op, method, path string, body, out any) error {
	raw, err := c.do(ctx, op, method, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return c.decode(op, raw, out)
}

func (c *Client) decode(op string, raw []byte, out any) error {
	payload, err := Unwrap(raw)
	if err != nil {
		c.log.Error().Str("operation", op).Msg("gateway response has no usable payload")
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		c.log.Error().Err(err).Str("operation", op).Msg("gateway payload does not match expected shape")
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}
