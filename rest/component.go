package rest

import (
	"context"
	"fmt"

	"github.com/kbukum/nap/component"
)

// Component wraps an API with lifecycle management.
// Use this when the client is one of several managed by a component.Registry.
type Component struct {
	api    *API
	config Config
	opts   []Option
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new client component.
// The API is created lazily in Start().
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	name := c.config.Name
	if name == "" {
		name = defaultName
	}
	return name
}

// Start creates the API.
func (c *Component) Start(_ context.Context) error {
	api, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.api = api
	return nil
}

// Stop closes the API and releases the transport.
func (c *Component) Stop(ctx context.Context) error {
	if c.api != nil {
		return c.api.Close(ctx)
	}
	return nil
}

// Health reports unhealthy until started and after stopping.
func (c *Component) Health(_ context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case c.api == nil:
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case c.api.IsClosed():
		h.Status = component.StatusUnhealthy
		h.Message = "closed"
	}
	return h
}

// Describe returns a one-line summary of the client.
func (c *Component) Describe() component.Description {
	format := c.config.Format
	if format == "" {
		format = "json"
	}
	return component.Description{
		Name:    c.Name(),
		Type:    "rest-client",
		Details: fmt.Sprintf("%s (%s)", c.config.BaseURL, format),
	}
}

// API returns the underlying API. Must be called after Start().
func (c *Component) API() *API {
	return c.api
}
