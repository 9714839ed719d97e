package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/eduadmin/internal/platform/logger"
)

const maxResponseBytes = 4 << 20

// TokenProvider supplies the bearer token for outgoing requests. An empty
// token means the request is sent unauthenticated.
type TokenProvider interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenProvider.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type Options struct {
	BaseURL string
	// Timeout bounds each request. Zero disables the per-request deadline.
	Timeout    time.Duration
	Tokens     TokenProvider
	HTTPClient *http.Client
	Log        *logger.Logger
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	tokens     TokenProvider
	httpClient *http.Client
	log        *logger.Logger
	tracer     trace.Tracer
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}

	timeout := opts.Timeout
	if timeout < 0 {
		timeout = 0
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		tokens:     opts.Tokens,
		httpClient: hc,
		log:        log.With("client", "APIClient"),
		tracer:     otel.Tracer("github.com/yungbote/eduadmin/internal/api"),
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// Do sends a JSON request and decodes a bare JSON response into out.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.roundTrip(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// DoEnvelope sends a JSON request and unwraps a {success, data, message}
// response. success=false is returned as *EnvelopeError.
func (c *Client) DoEnvelope(ctx context.Context, method, path string, query url.Values, body, data any) error {
	raw, err := c.roundTrip(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if !env.Success {
		return &EnvelopeError{Message: strings.TrimSpace(env.Message), Fields: env.FieldErrors()}
	}
	if data == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, data); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	ctx2 := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx2, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx2, span := c.tracer.Start(ctx2, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx2, method, target, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	otel.GetTextMapPropagator().Inject(ctx2, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warn("API request failed", "method", method, "path", path, "error", err)
		return nil, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.log.Debug("API request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		herr := parseHTTPError(resp.StatusCode, raw)
		span.SetStatus(codes.Error, herr.Error())
		return nil, herr
	}
	return raw, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens == nil {
		return
	}
	if tok := strings.TrimSpace(c.tokens.Token()); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}
