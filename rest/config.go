package rest

import (
	"fmt"
	"time"

	"github.com/kbukum/nap/httpclient"
	"github.com/kbukum/nap/logger"
	"github.com/kbukum/nap/serializer"
	"github.com/kbukum/nap/validation"
)

const defaultName = "nap"

// Config configures an API.
type Config struct {
	// Name identifies the client in logs and metrics. Defaults to "nap".
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the root of the remote API. Required.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required"`

	// Format is the serialization format name. Defaults to "json".
	Format string `yaml:"format" mapstructure:"format"`

	// AppendSlash forces a trailing slash on every request URL.
	AppendSlash bool `yaml:"append_slash" mapstructure:"append_slash"`

	// Raw makes verbs return a *Result instead of the decoded body.
	Raw bool `yaml:"raw" mapstructure:"raw"`

	// Auth holds static credentials for the default transport.
	Auth *httpclient.AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Timeout is the default transport's request timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Headers are sent with every request by the default transport.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// RequestID makes the default transport add an X-Request-ID header.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`

	// NoFollowRedirects returns 3xx responses instead of following them.
	NoFollowRedirects bool `yaml:"no_follow_redirects" mapstructure:"no_follow_redirects"`

	// Logging configures a dedicated logger. The global logger is used when nil.
	Logging *logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Format == "" {
		c.Format = serializer.DefaultFormat
	}
	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}
}

// Validate checks that the configuration is valid. Every failure wraps
// ErrImproperlyConfigured.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("%w: %w", ErrImproperlyConfigured, err)
	}
	if c.Auth != nil {
		if err := c.Auth.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrImproperlyConfigured, err)
		}
	}
	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrImproperlyConfigured, err)
		}
	}
	return nil
}

// transportConfig derives the default transport's configuration.
func (c *Config) transportConfig() httpclient.Config {
	return httpclient.Config{
		Name:              c.Name,
		Timeout:           c.Timeout,
		Auth:              c.Auth,
		Headers:           c.Headers,
		RequestID:         c.RequestID,
		NoFollowRedirects: c.NoFollowRedirects,
	}
}
