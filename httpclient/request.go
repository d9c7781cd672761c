package httpclient

import (
	"net/http"

	"github.com/kbukum/nap/util"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	Method string
	// URL is the absolute request URL. It may already carry a query string.
	URL string
	// Headers are request-specific headers (merged over the transport defaults).
	Headers map[string]string
	// Query is appended to the URL in order.
	Query []util.Pair
	// Body is the encoded request body. Ignored when Multipart is set.
	Body []byte
	// Multipart, when set, is sent as multipart/form-data.
	Multipart *MultipartBody
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers http.Header
	// Body is the raw response body.
	Body []byte
}

// ContentType returns the Content-Type response header.
func (r *Response) ContentType() string {
	if r == nil {
		return ""
	}
	return r.Headers.Get("Content-Type")
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}
