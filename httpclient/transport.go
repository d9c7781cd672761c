package httpclient

import "context"

// Transport sends requests on behalf of a client. Implementations must be
// safe for concurrent use.
type Transport interface {
	// Do sends req and returns the response for any status code.
	// Only transport failures are returned as errors.
	Do(ctx context.Context, req Request) (*Response, error)
	// Close releases the transport. Requests issued afterwards fail with ErrClosed.
	Close(ctx context.Context) error
}

var _ Transport = (*Adapter)(nil)
