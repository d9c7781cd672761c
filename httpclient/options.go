package httpclient

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/nap/logger"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for transport failures.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// WithTracerProvider sets the provider spans are created from.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Adapter) {
		if tp != nil {
			a.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client. Timeout and
// redirect settings from Config are not applied to it.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) {
		if c != nil {
			a.httpClient = c
		}
	}
}
