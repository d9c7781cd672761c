package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/nap/util"
	"github.com/kbukum/nap/version"
)

func newTestAdapter(t *testing.T, cfg Config, opts ...Option) *Adapter {
	t.Helper()
	a, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func TestAdapter_Do_ReturnsErrorStatuses(t *testing.T) {
	for _, code := range []int{200, 204, 302, 404, 418, 500, 503} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		a := newTestAdapter(t, Config{NoFollowRedirects: true})
		resp, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL})
		srv.Close()
		if err != nil {
			t.Fatalf("status %d: Do() error = %v", code, err)
		}
		if resp.StatusCode != code {
			t.Errorf("StatusCode = %d, want %d", resp.StatusCode, code)
		}
	}
}

func TestAdapter_Do_SendsBodyAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"a":1}` {
			t.Errorf("body = %q", body)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		if got := r.Header.Get("X-Default"); got != "overridden" {
			t.Errorf("X-Default = %q, want request header to win", got)
		}
		if got := r.Header.Get("X-Static"); got != "yes" {
			t.Errorf("X-Static = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != version.UserAgent() {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{
		Headers: map[string]string{"X-Default": "default", "X-Static": "yes"},
	})
	resp, err := a.Do(t.Context(), Request{
		Method: http.MethodPost,
		URL:    srv.URL,
		Body:   []byte(`{"a":1}`),
		Headers: map[string]string{
			"Content-Type": "application/json",
			"X-Default":    "overridden",
		},
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if !resp.IsSuccess() || resp.IsError() {
		t.Errorf("status %d should be success", resp.StatusCode)
	}
	if got := resp.ContentType(); got != "application/json" {
		t.Errorf("ContentType() = %q", got)
	}
	if got := resp.Headers.Get("content-type"); got != "application/json" {
		t.Errorf("header lookup should be case-insensitive, got %q", got)
	}
}

func TestAdapter_Do_CustomUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("User-Agent")))
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{UserAgent: "reports-bot/2"})
	resp, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if string(resp.Body) != "reports-bot/2" {
		t.Errorf("User-Agent = %q", resp.Body)
	}
}

func TestAdapter_Do_QueryOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.RawQuery))
	}))
	defer srv.Close()

	tests := []struct {
		name  string
		url   string
		query []util.Pair
		want  string
	}{
		{"no query", srv.URL, nil, ""},
		{"ordered pairs", srv.URL, []util.Pair{{Key: "z", Value: "1"}, {Key: "a", Value: "2"}, {Key: "z", Value: "3"}}, "z=1&a=2&z=3"},
		{"base query kept", srv.URL + "?key=k", []util.Pair{{Key: "page", Value: "2"}}, "key=k&page=2"},
		{"escaping", srv.URL, []util.Pair{{Key: "q", Value: "a b"}}, "q=a+b"},
	}

	a := newTestAdapter(t, Config{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: tc.url, Query: tc.query})
			if err != nil {
				t.Fatalf("Do() error: %v", err)
			}
			if got := string(resp.Body); got != tc.want {
				t.Errorf("query = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAdapter_Do_RequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("X-Request-ID")))
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{RequestID: true})

	resp, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if _, err := uuid.Parse(string(resp.Body)); err != nil {
		t.Errorf("X-Request-ID %q is not a uuid: %v", resp.Body, err)
	}

	resp, err = a.Do(t.Context(), Request{
		Method:  http.MethodGet,
		URL:     srv.URL,
		Headers: map[string]string{"X-Request-ID": "caller-id"},
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if string(resp.Body) != "caller-id" {
		t.Errorf("caller request id replaced: %q", resp.Body)
	}

	plain := newTestAdapter(t, Config{})
	resp, err = plain.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if len(resp.Body) != 0 {
		t.Errorf("request id sent without RequestID: %q", resp.Body)
	}
}

func TestAdapter_Do_BasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || u != "user" || p != "pass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{Auth: BasicAuth("user", "pass")})
	resp, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
}

func TestAdapter_Do_Redirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("moved"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	follow := newTestAdapter(t, Config{})
	resp, err := follow.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL + "/old"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if resp.StatusCode != 200 || string(resp.Body) != "moved" {
		t.Errorf("followed redirect = %d %q", resp.StatusCode, resp.Body)
	}

	stay := newTestAdapter(t, Config{NoFollowRedirects: true})
	resp, err = stay.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL + "/old"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Errorf("StatusCode = %d, want 302", resp.StatusCode)
	}
	if got := resp.Headers.Get("Location"); got != "/new" {
		t.Errorf("Location = %q, want /new", got)
	}
}

func TestAdapter_Do_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{Timeout: 50 * time.Millisecond})
	_, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestAdapter_Do_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	a := newTestAdapter(t, Config{})
	_, err := a.Do(ctx, Request{Method: http.MethodGet, URL: srv.URL})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error for canceled context, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error should wrap context.Canceled, got %v", err)
	}
}

func TestAdapter_Do_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, Config{})
	_, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: url})
	if !IsConnection(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestAdapter_Do_InvalidRequest(t *testing.T) {
	a := newTestAdapter(t, Config{})
	_, err := a.Do(t.Context(), Request{Method: "BAD METHOD", URL: "http://x"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdapter_Close(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	a := newTestAdapter(t, Config{})
	if a.IsClosed() {
		t.Fatal("new adapter reports closed")
	}
	if err := a.Close(t.Context()); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := a.Close(t.Context()); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	if !a.IsClosed() {
		t.Fatal("adapter should report closed")
	}

	_, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL})
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("Do after Close error = %v, want ErrClosed", err)
	}
}

func TestAdapter_WithHTTPClient(t *testing.T) {
	called := false
	custom := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{
			StatusCode: 200,
			Header:     http.Header{"Content-Type": {"text/plain"}},
			Body:       io.NopCloser(strings.NewReader("stubbed")),
			Request:    r,
		}, nil
	})}

	a := newTestAdapter(t, Config{}, WithHTTPClient(custom))
	if a.Unwrap() != custom {
		t.Fatal("Unwrap should return the injected client")
	}
	resp, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: "http://unreachable.invalid/x"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if !called || string(resp.Body) != "stubbed" {
		t.Errorf("custom client not used: called=%v body=%q", called, resp.Body)
	}
}

func TestAdapter_Spans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	a := newTestAdapter(t, Config{}, WithTracerProvider(tp))

	if _, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL + "/ok"}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if _, err := a.Do(t.Context(), Request{Method: http.MethodGet, URL: srv.URL + "/boom"}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}
	for _, s := range spans {
		if s.Name() != "http.request" {
			t.Errorf("span name = %q", s.Name())
		}
	}

	status := func(s sdktrace.ReadOnlySpan) int64 {
		for _, kv := range s.Attributes() {
			if kv.Key == attribute.Key("http.response.status_code") {
				return kv.Value.AsInt64()
			}
		}
		return 0
	}
	if got := status(spans[0]); got != 200 {
		t.Errorf("first span status attribute = %d", got)
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("2xx span should not be marked as error")
	}
	if got := status(spans[1]); got != 502 {
		t.Errorf("second span status attribute = %d", got)
	}
	if spans[1].Status().Code != codes.Error {
		t.Error("5xx span should be marked as error")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
