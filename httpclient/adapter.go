package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/nap/logger"
	"github.com/kbukum/nap/util"
	"github.com/kbukum/nap/version"
)

const (
	tracerName      = "github.com/kbukum/nap/httpclient"
	spanName        = "http.request"
	headerRequestID = "X-Request-ID"
)

// Adapter is the default Transport, built on net/http.
type Adapter struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
	tracer     trace.Tracer
	closed     atomic.Bool
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
		Timeout:   cfg.Timeout,
	}
	if cfg.NoFollowRedirects {
		httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	a := &Adapter{
		httpClient: httpClient,
		config:     cfg,
		log:        logger.GetGlobalLogger().WithComponent("httpclient"),
		tracer:     otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Do executes an HTTP request and returns the complete response.
// Non-2xx statuses are returned as responses, not errors.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	if a.closed.Load() {
		return nil, NewClosedError()
	}

	ctx, span := a.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(req.Method),
			semconv.URLFull(req.URL),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := a.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.log.Warn("request failed", logger.MergeWithError(logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldURL, req.URL,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		), err))
		return nil, err
	}

	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

// Close marks the adapter closed and drops idle connections.
// It is safe to call more than once.
func (a *Adapter) Close(_ context.Context) error {
	if a.closed.Swap(true) {
		return nil
	}
	a.httpClient.CloseIdleConnections()
	return nil
}

// IsClosed reports whether Close has been called.
func (a *Adapter) IsClosed() bool {
	return a.closed.Load()
}

// Name returns the configured transport name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// GetConfig returns the adapter's configuration.
func (a *Adapter) GetConfig() Config {
	return a.config
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

func (a *Adapter) execute(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	var contentType string
	switch {
	case req.Multipart != nil:
		r, ct, err := req.Multipart.encode()
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("encode multipart body: %v", err))
		}
		body, contentType = r, ct
	case req.Body != nil:
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		encoded := util.EncodeQuery(req.Query)
		if httpReq.URL.RawQuery == "" {
			httpReq.URL.RawQuery = encoded
		} else {
			httpReq.URL.RawQuery += "&" + encoded
		}
	}

	httpReq.Header.Set("User-Agent", a.userAgent())
	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	// request headers win over defaults and the multipart type
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if a.config.RequestID && httpReq.Header.Get(headerRequestID) == "" {
		httpReq.Header.Set(headerRequestID, uuid.NewString())
	}

	a.config.Auth.apply(httpReq)

	return httpReq, nil
}

func (a *Adapter) userAgent() string {
	if a.config.UserAgent != "" {
		return a.config.UserAgent
	}
	return version.UserAgent()
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
