package rest

import (
	"io"
	"net/http"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/nap/httpclient"
	"github.com/kbukum/nap/logger"
	"github.com/kbukum/nap/serializer"
	"github.com/kbukum/nap/util"
)

// Option configures an API.
type Option func(*apiOptions)

type apiOptions struct {
	transport      httpclient.Transport
	registry       *serializer.Registry
	log            *logger.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	httpClient     *http.Client
}

// WithTransport injects the transport. Auth, Timeout, Headers and the
// redirect setting of Config are then ignored.
func WithTransport(t httpclient.Transport) Option {
	return func(o *apiOptions) { o.transport = t }
}

// WithRegistry injects the serializer registry. Config.Format must name
// one of its serializers.
func WithRegistry(r *serializer.Registry) Option {
	return func(o *apiOptions) { o.registry = r }
}

// WithLogger sets the logger for requests and classified errors.
func WithLogger(l *logger.Logger) Option {
	return func(o *apiOptions) { o.log = l }
}

// WithTracerProvider sets the provider the default transport creates spans from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *apiOptions) { o.tracerProvider = tp }
}

// WithMeterProvider sets the provider client metrics are recorded on.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *apiOptions) { o.meterProvider = mp }
}

// WithHTTPClient hands a preconfigured *http.Client to the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *apiOptions) { o.httpClient = c }
}

// CallOption configures a Call derivation.
type CallOption func(*callOptions)

type callOptions struct {
	id          any
	format      string
	urlOverride string
}

func (o callOptions) empty() bool {
	return o.id == nil && o.format == "" && o.urlOverride == ""
}

// ID appends v as a path segment. A nil ID is ignored.
func ID(v any) CallOption {
	return func(o *callOptions) { o.id = v }
}

// Format overrides the serialization format of the derived resource.
func Format(name string) CallOption {
	return func(o *callOptions) { o.format = name }
}

// URLOverride replaces the URL of the derived resource. It takes
// precedence over ID and is typically used to follow a Location header.
func URLOverride(u string) CallOption {
	return func(o *callOptions) { o.urlOverride = u }
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	body    any
	file    *httpclient.FileField
	headers map[string]string
	params  []util.Param
	format  string
}

// WithBody sets the request body. It is encoded with the resource's
// serializer unless a file is attached, in which case it must be a map
// and is sent as form fields.
func WithBody(v any) RequestOption {
	return func(o *requestOptions) { o.body = v }
}

// WithFile attaches a file, sent as multipart/form-data under the field "file".
func WithFile(fileName string, r io.Reader) RequestOption {
	return WithFileField(httpclient.FileField{FieldName: defaultFileField, FileName: fileName, Reader: r})
}

// WithFileField attaches a file with full control over the form field.
func WithFileField(f httpclient.FileField) RequestOption {
	return func(o *requestOptions) {
		if f.FieldName == "" {
			f.FieldName = defaultFileField
		}
		o.file = &f
	}
}

// WithHeaders sets request headers. They override the Accept and
// Content-Type headers set from the serializer.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithHeader sets a single request header.
func WithHeader(key, value string) RequestOption {
	return WithHeaders(map[string]string{key: value})
}

// WithQuery adds query parameters in key order. Slice values expand to
// one parameter per element.
func WithQuery(params map[string]any) RequestOption {
	return func(o *requestOptions) { o.params = append(o.params, util.ParamsFromMap(params)...) }
}

// WithParam adds one query parameter. Parameters keep the order they are added in.
func WithParam(key string, value any) RequestOption {
	return func(o *requestOptions) { o.params = append(o.params, util.Param{Key: key, Value: value}) }
}

// WithFormat overrides the serialization format for this request only.
func WithFormat(name string) RequestOption {
	return func(o *requestOptions) { o.format = name }
}
