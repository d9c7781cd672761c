package httpclient

import (
	"net/http"
	"testing"
)

func TestBearerAuth(t *testing.T) {
	auth := BearerAuth("my-token")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
		t.Errorf("got %q, want %q", got, "Bearer my-token")
	}
}

func TestBasicAuth(t *testing.T) {
	auth := BasicAuth("user", "pass")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	u, p, ok := req.BasicAuth()
	if !ok || u != "user" || p != "pass" {
		t.Errorf("basic auth not set correctly: user=%q pass=%q ok=%v", u, p, ok)
	}
}

func TestAPIKeyAuth_Header(t *testing.T) {
	auth := APIKeyAuth("secret-key")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("X-API-Key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}
}

func TestAPIKeyAuthHeader_CustomName(t *testing.T) {
	auth := APIKeyAuthHeader("secret-key", "X-Custom-Key")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("X-Custom-Key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}
}

func TestAPIKeyAuthQuery(t *testing.T) {
	auth := APIKeyAuthQuery("secret-key", "api_key")
	req, _ := http.NewRequest("GET", "http://example.com/path", nil)
	auth.apply(req)
	if got := req.URL.Query().Get("api_key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}
}

func TestAPIKeyAuthQuery_KeepsExistingOrder(t *testing.T) {
	auth := APIKeyAuthQuery("secret-key", "api_key")
	req, _ := http.NewRequest("GET", "http://example.com/path?z=1&a=2", nil)
	auth.apply(req)
	if got, want := req.URL.RawQuery, "z=1&a=2&api_key=secret-key"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAuthConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		auth    AuthConfig
		wantErr bool
	}{
		{"none", AuthConfig{}, false},
		{"bearer", *BearerAuth("t"), false},
		{"basic", *BasicAuth("u", "p"), false},
		{"api key header", *APIKeyAuth("k"), false},
		{"api key query", *APIKeyAuthQuery("k", "key"), false},
		{"api key default location", AuthConfig{Type: AuthAPIKey, Key: "k"}, false},
		{"api key bad location", AuthConfig{Type: AuthAPIKey, Key: "k", In: "cookie"}, true},
		{"unknown type", AuthConfig{Type: "digest"}, true},
		{"bearer without token", AuthConfig{Type: AuthBearer}, true},
		{"basic without username", AuthConfig{Type: AuthBasic, Password: "p"}, true},
		{"api key without key", AuthConfig{Type: AuthAPIKey}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.auth.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNilAuth(t *testing.T) {
	var auth *AuthConfig
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req) // should not panic
}

func TestAuthNone(t *testing.T) {
	auth := &AuthConfig{Type: AuthNone}
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req) // should not modify request
	if req.Header.Get("Authorization") != "" {
		t.Error("AuthNone should not set Authorization header")
	}
}

func TestAuthConfig_String(t *testing.T) {
	tests := []struct {
		name string
		auth *AuthConfig
		want string
	}{
		{"nil", nil, "none"},
		{"none", &AuthConfig{}, "none"},
		{"bearer", BearerAuth("ghp_1234567890abcdef"), "bearer token=ghp_***"},
		{"short bearer", BearerAuth("abc"), "bearer token=***"},
		{"basic", BasicAuth("admin", "hunter2"), "basic username=admin password=***"},
		{"api key", APIKeyAuth("sk-live-000000000"), "api_key X-API-Key=sk-l*** in=header"},
		{"api key query", APIKeyAuthQuery("sk-live-000000000", "key"), "api_key key=sk-l*** in=query"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.auth.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}
