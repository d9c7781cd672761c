// Package httpclient defines the transport a nap client sends requests
// through, and ships a default implementation on top of net/http.
//
// A Transport receives a fully built request (absolute URL, ordered
// query pairs, encoded body) and returns the raw response whatever its
// status code. Classifying statuses into errors is left to the caller.
//
// The default Adapter adds static authentication, default headers, a
// User-Agent, optional X-Request-ID generation and one OpenTelemetry
// span per request. It has no retry, pooling or TLS knobs of its own;
// inject a custom *http.Client with WithHTTPClient when those are needed.
//
// # Basic Usage
//
//	t, err := httpclient.New(httpclient.Config{
//	    Timeout: 10 * time.Second,
//	    Auth:    httpclient.BasicAuth("user", "pass"),
//	})
//
//	resp, err := t.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    URL:    "https://api.example.com/users/1",
//	})
package httpclient
