package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/nap/httpclient"
	"github.com/kbukum/nap/logger"
	"github.com/kbukum/nap/observability"
	"github.com/kbukum/nap/serializer"
	"github.com/kbukum/nap/util"
)

const (
	reservedPrefix   = "_"
	defaultFileField = "file"
)

// shared holds the collaborators every resource derived from one API uses.
type shared struct {
	name      string
	registry  *serializer.Registry
	transport httpclient.Transport
	log       *logger.Logger
	metrics   *observability.ClientMetrics
}

// Resource is one node of the resource tree: a URL plus request settings.
// Derivations return new resources and never modify the receiver. A
// Resource must not issue concurrent requests if Last is read.
type Resource struct {
	baseURL     string
	format      string
	appendSlash bool
	raw         bool
	client      *shared
	last        *httpclient.Response
}

// Result is a response paired with its decoded body.
type Result struct {
	Response *httpclient.Response
	Body     any
}

func (r *Resource) clone() *Resource {
	c := *r
	c.last = nil
	return &c
}

// Child derives the resource at name below r. Names starting with "_"
// are reserved and fail with ErrAttributeNotFound.
func (r *Resource) Child(name string) (*Resource, error) {
	if strings.HasPrefix(name, reservedPrefix) {
		return nil, fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
	}
	c := r.clone()
	c.baseURL = util.Join(r.baseURL, name)
	return c, nil
}

// C is like Child but panics on a reserved name. It is meant for
// chaining static paths.
func (r *Resource) C(name string) *Resource {
	c, err := r.Child(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Call derives a resource by ID, format or URL override. With no
// options it returns r itself.
func (r *Resource) Call(opts ...CallOption) *Resource {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.empty() {
		return r
	}

	c := r.clone()
	if o.id != nil {
		c.baseURL = util.Join(r.baseURL, o.id)
	}
	if o.format != "" {
		c.format = o.format
	}
	if o.urlOverride != "" {
		c.baseURL = o.urlOverride
	}
	return c
}

// AsRaw derives a resource whose verbs return a *Result.
func (r *Resource) AsRaw() *Resource {
	c := r.clone()
	c.raw = true
	return c
}

// URL returns the request URL, with a trailing slash when AppendSlash is set.
func (r *Resource) URL() string {
	if r.appendSlash && !strings.HasSuffix(r.baseURL, "/") {
		return r.baseURL + "/"
	}
	return r.baseURL
}

// Format returns the serialization format name.
func (r *Resource) Format() string { return r.format }

// Raw reports whether verbs return a *Result.
func (r *Resource) Raw() bool { return r.raw }

// Last returns the response of the most recent request, or nil.
func (r *Resource) Last() *httpclient.Response { return r.last }

// Close is a no-op. The transport belongs to the API.
func (r *Resource) Close(_ context.Context) error { return nil }

// Get sends a GET request.
func (r *Resource) Get(ctx context.Context, opts ...RequestOption) (any, error) {
	return r.verb(ctx, http.MethodGet, opts)
}

// Post sends a POST request.
func (r *Resource) Post(ctx context.Context, opts ...RequestOption) (any, error) {
	return r.verb(ctx, http.MethodPost, opts)
}

// Put sends a PUT request.
func (r *Resource) Put(ctx context.Context, opts ...RequestOption) (any, error) {
	return r.verb(ctx, http.MethodPut, opts)
}

// Patch sends a PATCH request.
func (r *Resource) Patch(ctx context.Context, opts ...RequestOption) (any, error) {
	return r.verb(ctx, http.MethodPatch, opts)
}

// Delete sends a DELETE request.
func (r *Resource) Delete(ctx context.Context, opts ...RequestOption) (any, error) {
	return r.verb(ctx, http.MethodDelete, opts)
}

// verb returns the decoded body, or the *Result in raw mode.
func (r *Resource) verb(ctx context.Context, method string, opts []RequestOption) (any, error) {
	res, err := r.Do(ctx, method, opts...)
	if err != nil {
		return nil, err
	}
	if r.raw {
		return res, nil
	}
	return res.Body, nil
}

// Do sends a request with any method and returns the response with its
// decoded body. 4xx and 5xx responses are returned as errors.
func (r *Resource) Do(ctx context.Context, method string, opts ...RequestOption) (*Result, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	format := r.format
	if o.format != "" {
		format = o.format
	}
	s, err := r.client.registry.ByName(format)
	if err != nil {
		return nil, err
	}

	req, err := r.buildRequest(method, s, &o)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := r.client.transport.Do(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		r.client.metrics.RecordRequest(ctx, r.client.name, method, 0, elapsed)
		r.client.metrics.RecordError(ctx, r.client.name, method, errorKind(err))
		return nil, err
	}
	r.last = resp

	r.client.metrics.RecordRequest(ctx, r.client.name, method, resp.StatusCode, elapsed)
	r.client.log.Debug("request completed", logger.RequestFields(method, req.URL, resp.StatusCode, elapsed))

	if isErrorStatus(resp.StatusCode) {
		err := classify(method, req.URL, resp, r.decodeBestEffort(resp))
		r.client.metrics.RecordError(ctx, r.client.name, method, errorKind(err))
		r.client.log.Warn("request returned error status", logger.MergeWithError(
			logger.RequestFields(method, req.URL, resp.StatusCode, elapsed), err))
		return nil, err
	}

	body, err := r.decode(resp)
	if err != nil {
		return nil, err
	}
	return &Result{Response: resp, Body: body}, nil
}

func (r *Resource) buildRequest(method string, s serializer.Serializer, o *requestOptions) (httpclient.Request, error) {
	req := httpclient.Request{
		Method: method,
		URL:    r.URL(),
		Query:  util.TransformParams(o.params...),
	}

	headers := http.Header{}
	headers.Set("Accept", s.ContentType())

	switch {
	case o.file != nil:
		fields, err := formFields(o.body)
		if err != nil {
			return req, err
		}
		req.Multipart = &httpclient.MultipartBody{Fields: fields, Files: []httpclient.FileField{*o.file}}
	case o.body != nil:
		data, err := s.Dumps(o.body)
		if err != nil {
			return req, fmt.Errorf("rest: encode %s body: %w", s.Name(), err)
		}
		headers.Set("Content-Type", s.ContentType())
		req.Body = data
	}

	for k, v := range o.headers {
		headers.Set(k, v)
	}
	req.Headers = make(map[string]string, len(headers))
	for k := range headers {
		req.Headers[k] = headers.Get(k)
	}
	return req, nil
}

// formFields converts a body mapping to multipart form fields.
func formFields(body any) (map[string]string, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return b, nil
	case map[string]any:
		fields := make(map[string]string, len(b))
		for k, v := range b {
			fields[k] = fmt.Sprint(v)
		}
		return fields, nil
	default:
		return nil, fmt.Errorf("rest: body sent with a file must be a map, got %T", body)
	}
}

// decode decodes a successful response by its Content-Type. Bodies of
// unknown content types are returned as raw bytes.
func (r *Resource) decode(resp *httpclient.Response) (any, error) {
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent {
		return nil, nil
	}
	if len(resp.Body) == 0 {
		return nil, nil
	}
	ct := resp.ContentType()
	if ct == "" {
		return resp.Body, nil
	}
	s, err := r.client.registry.ByContentType(ct)
	if err != nil {
		return resp.Body, nil
	}
	v, err := s.Loads(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rest: decode %s response: %w", s.Name(), err)
	}
	return v, nil
}

// decodeBestEffort decodes error content, falling back to raw bytes.
func (r *Resource) decodeBestEffort(resp *httpclient.Response) any {
	v, err := r.decode(resp)
	if err != nil {
		return resp.Body
	}
	return v
}
