package httpclient

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/kbukum/nap/util"
	"github.com/kbukum/nap/validation"
)

// AuthType identifies the authentication method.
type AuthType string

const (
	// AuthNone disables authentication.
	AuthNone AuthType = ""
	// AuthBearer uses Bearer token authentication.
	AuthBearer AuthType = "bearer"
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic AuthType = "basic"
	// AuthAPIKey uses API key authentication (header or query parameter).
	AuthAPIKey AuthType = "api_key"
)

const defaultAPIKeyName = "X-API-Key"

// AuthConfig holds static request credentials.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType `yaml:"type" mapstructure:"type"`
	// Token is the bearer token (AuthBearer).
	Token string `yaml:"token" mapstructure:"token"`
	// Username is the basic auth username (AuthBasic).
	Username string `yaml:"username" mapstructure:"username"`
	// Password is the basic auth password (AuthBasic).
	Password string `yaml:"password" mapstructure:"password"`
	// Key is the API key value (AuthAPIKey).
	Key string `yaml:"key" mapstructure:"key"`
	// In specifies where to place the API key: "header" (default) or "query".
	In string `yaml:"in" mapstructure:"in"`
	// Name is the header or query parameter name. Defaults to "X-API-Key".
	Name string `yaml:"name" mapstructure:"name"`
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent via header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: defaultAPIKeyName}
}

// APIKeyAuthHeader creates an API key auth config with a custom header name.
func APIKeyAuthHeader(key, headerName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: headerName}
}

// APIKeyAuthQuery creates an API key auth config sent via query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "query", Name: paramName}
}

// Validate checks the auth type and the fields it needs.
func (a *AuthConfig) Validate() error {
	v := validation.New()
	v.OneOf("auth.type", string(a.Type), []string{string(AuthBearer), string(AuthBasic), string(AuthAPIKey)})
	switch a.Type {
	case AuthBearer:
		v.Required("auth.token", a.Token)
	case AuthBasic:
		v.Required("auth.username", a.Username)
	case AuthAPIKey:
		v.Required("auth.key", a.Key)
		v.OneOf("auth.in", a.In, []string{"header", "query"})
	}
	if err := v.Error(); err != nil {
		return fmt.Errorf("httpclient: %w", err)
	}
	return nil
}

// String describes the credentials with secrets masked, for logs.
func (a *AuthConfig) String() string {
	if a == nil || a.Type == AuthNone {
		return "none"
	}
	switch a.Type {
	case AuthBearer:
		return fmt.Sprintf("bearer token=%s", util.MaskSecret(a.Token, 4))
	case AuthBasic:
		return fmt.Sprintf("basic username=%s password=%s", a.Username, util.MaskSecret(a.Password, 0))
	case AuthAPIKey:
		in := a.In
		if in == "" {
			in = "header"
		}
		name := a.Name
		if name == "" {
			name = defaultAPIKeyName
		}
		return fmt.Sprintf("api_key %s=%s in=%s", name, util.MaskSecret(a.Key, 4), in)
	default:
		return string(a.Type)
	}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthAPIKey:
		name := a.Name
		if name == "" {
			name = defaultAPIKeyName
		}
		if a.In == "query" {
			// appended so caller parameter order is kept
			kv := url.QueryEscape(name) + "=" + url.QueryEscape(a.Key)
			if req.URL.RawQuery == "" {
				req.URL.RawQuery = kv
			} else {
				req.URL.RawQuery += "&" + kv
			}
		} else {
			req.Header.Set(name, a.Key)
		}
	}
}
