package rest

import (
	"errors"
	"fmt"

	"github.com/kbukum/nap/httpclient"
)

var (
	// ErrImproperlyConfigured is returned when an API cannot be built from its configuration.
	ErrImproperlyConfigured = errors.New("rest: improperly configured")

	// ErrAttributeNotFound is returned when deriving a child with a reserved name.
	ErrAttributeNotFound = errors.New("rest: attribute not found")
)

// Kind classifies an HTTP error response.
type Kind int

const (
	KindClientError Kind = iota + 1
	KindNotFound
	KindServerError
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindClientError:
		return "client_error"
	case KindNotFound:
		return "not_found"
	case KindServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// HTTPError carries the response that caused a classified error.
type HTTPError struct {
	// Kind is the error classification.
	Kind Kind
	// StatusCode is the HTTP status code.
	StatusCode int
	// Method is the request method.
	Method string
	// URL is the request URL without query parameters.
	URL string
	// Response is the raw response.
	Response *httpclient.Response
	// Content is the decoded response body, or the raw bytes when it
	// could not be decoded.
	Content any
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	label := "client error"
	if e.Kind == KindServerError {
		label = "server error"
	}
	return fmt.Sprintf("rest: %s %d: %s", label, e.StatusCode, e.URL)
}

// ClientError is returned for 4xx responses.
type ClientError struct {
	*HTTPError
}

// Unwrap returns the underlying *HTTPError.
func (e *ClientError) Unwrap() error { return e.HTTPError }

// NotFoundError is returned for 404 responses. It unwraps to a *ClientError.
type NotFoundError struct {
	*ClientError
}

// Unwrap returns the underlying *ClientError.
func (e *NotFoundError) Unwrap() error { return e.ClientError }

// ServerError is returned for 5xx responses.
type ServerError struct {
	*HTTPError
}

// Unwrap returns the underlying *HTTPError.
func (e *ServerError) Unwrap() error { return e.HTTPError }

// classify returns the typed error for an error status, or nil.
func classify(method, url string, resp *httpclient.Response, content any) error {
	base := &HTTPError{
		StatusCode: resp.StatusCode,
		Method:     method,
		URL:        url,
		Response:   resp,
		Content:    content,
	}
	switch {
	case resp.StatusCode == 404:
		base.Kind = KindNotFound
		return &NotFoundError{ClientError: &ClientError{HTTPError: base}}
	case resp.StatusCode >= 400 && resp.StatusCode <= 499:
		base.Kind = KindClientError
		return &ClientError{HTTPError: base}
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		base.Kind = KindServerError
		return &ServerError{HTTPError: base}
	default:
		return nil
	}
}

// isErrorStatus reports whether classify would return an error for status.
func isErrorStatus(status int) bool {
	return status >= 400 && status <= 599
}

// AsHTTPError returns the *HTTPError in err's chain, if any.
func AsHTTPError(err error) (*HTTPError, bool) {
	var e *HTTPError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsClientError reports whether err is a 4xx error, including 404.
func IsClientError(err error) bool {
	var e *ClientError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a 404 error.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsServerError reports whether err is a 5xx error.
func IsServerError(err error) bool {
	var e *ServerError
	return errors.As(err, &e)
}

// errorKind names err for metrics: the HTTP error kind, the transport
// error code, or "other".
func errorKind(err error) string {
	if e, ok := AsHTTPError(err); ok {
		return e.Kind.String()
	}
	var te *httpclient.Error
	if errors.As(err, &te) {
		return te.Code.String()
	}
	return "other"
}
