package httpclient

import (
	"fmt"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	defaultName    = "nap"
)

// Config configures the default transport.
type Config struct {
	// Name identifies the transport in logs and spans. Defaults to "nap".
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout is the whole-request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures static credentials applied to every request.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent overrides the default "nap/<version>" User-Agent.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// RequestID adds an X-Request-ID header to requests that lack one.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`

	// NoFollowRedirects returns 3xx responses to the caller as-is.
	NoFollowRedirects bool `yaml:"no_follow_redirects" mapstructure:"no_follow_redirects"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.Auth != nil {
		if err := c.Auth.Validate(); err != nil {
			return err
		}
	}
	return nil
}
