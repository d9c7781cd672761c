package rest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"

	"github.com/kbukum/nap/config"
	"github.com/kbukum/nap/httpclient"
	"github.com/kbukum/nap/logger"
	"github.com/kbukum/nap/observability"
	"github.com/kbukum/nap/serializer"
)

const meterName = "github.com/kbukum/nap/rest"

// API is the root of a resource tree. It owns the transport; resources
// derived from it share the transport and serializer registry.
type API struct {
	config Config
	root   *Resource
	closed atomic.Bool
}

// New creates an API from the given configuration.
func New(cfg Config, opts ...Option) (*API, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o apiOptions
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		if cfg.Logging != nil {
			log = logger.New(cfg.Logging, cfg.Name)
		} else {
			log = logger.GetGlobalLogger().WithComponent("rest")
		}
	}

	registry := o.registry
	if registry == nil {
		r, err := serializer.NewRegistry(cfg.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrImproperlyConfigured, err)
		}
		registry = r
	} else if _, err := registry.ByName(cfg.Format); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImproperlyConfigured, err)
	}

	mp := o.meterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	metrics, err := observability.NewClientMetrics(mp.Meter(meterName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImproperlyConfigured, err)
	}

	transport := o.transport
	if transport == nil {
		topts := []httpclient.Option{httpclient.WithLogger(log.WithComponent("httpclient"))}
		if o.tracerProvider != nil {
			topts = append(topts, httpclient.WithTracerProvider(o.tracerProvider))
		}
		if o.httpClient != nil {
			topts = append(topts, httpclient.WithHTTPClient(o.httpClient))
		}
		t, err := httpclient.New(cfg.transportConfig(), topts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrImproperlyConfigured, err)
		}
		transport = t
	}

	api := &API{config: cfg}
	api.root = &Resource{
		baseURL:     cfg.BaseURL,
		format:      cfg.Format,
		appendSlash: cfg.AppendSlash,
		raw:         cfg.Raw,
		client: &shared{
			name:      cfg.Name,
			registry:  registry,
			transport: transport,
			log:       log,
			metrics:   metrics,
		},
	}

	log.Debug("client created", logger.Fields(
		"base_url", cfg.BaseURL,
		logger.FieldFormat, cfg.Format,
		"auth", cfg.Auth.String(),
	))

	return api, nil
}

// NewFromConfigFile loads Config for name with the config package (YAML
// file, .env file and NAME_* environment variables) and creates an API.
func NewFromConfigFile(name string, loaderOpts []config.LoaderOption, opts ...Option) (*API, error) {
	var cfg Config
	if err := config.LoadConfig(name, &cfg, loaderOpts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	return New(cfg, opts...)
}

// With creates an API, runs fn with it and closes it, whatever fn returns.
func With(ctx context.Context, cfg Config, fn func(*API) error, opts ...Option) error {
	api, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	fnErr := fn(api)
	return errors.Join(fnErr, api.Close(ctx))
}

// Resource returns a fresh root resource.
func (a *API) Resource() *Resource {
	return a.root.clone()
}

// Child derives the resource at name below the base URL.
func (a *API) Child(name string) (*Resource, error) {
	return a.root.Child(name)
}

// C is like Child but panics on a reserved name.
func (a *API) C(name string) *Resource {
	return a.root.C(name)
}

// Call derives a resource from the root by ID, format or URL override.
func (a *API) Call(opts ...CallOption) *Resource {
	return a.Resource().Call(opts...)
}

// Config returns the configuration with defaults applied.
func (a *API) Config() Config {
	return a.config
}

// Transport returns the transport shared by all resources.
func (a *API) Transport() httpclient.Transport {
	return a.root.client.transport
}

// Registry returns the serializer registry shared by all resources.
func (a *API) Registry() *serializer.Registry {
	return a.root.client.registry
}

// IsClosed reports whether Close has been called.
func (a *API) IsClosed() bool {
	return a.closed.Load()
}

// Close releases the transport. Later requests through any derived
// resource fail with an error matching httpclient.ErrClosed when the
// default transport is used. It is safe to call more than once.
func (a *API) Close(ctx context.Context) error {
	if a.closed.Swap(true) {
		return nil
	}
	a.root.client.log.Debug("client closed", logger.Fields("base_url", a.config.BaseURL))
	return a.root.client.transport.Close(ctx)
}
