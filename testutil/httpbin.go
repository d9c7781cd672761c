package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/nap/component"
)

const maxMemory = 32 << 20

// Echo is the JSON document HTTPBin answers echo routes with.
type Echo struct {
	Method   string              `json:"method"`
	URL      string              `json:"url"`
	Path     string              `json:"path"`
	RawQuery string              `json:"raw_query"`
	Args     map[string][]string `json:"args"`
	Headers  map[string]string   `json:"headers"`
	Data     string              `json:"data"`
	JSON     any                 `json:"json"`
	Form     map[string]string   `json:"form"`
	Files    map[string]string   `json:"files"`
}

// RecordedRequest is a request HTTPBin received.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
}

// HTTPBin is an in-process echo server.
type HTTPBin struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

var _ TestComponent = (*HTTPBin)(nil)

// NewHTTPBin starts an HTTPBin that is stopped when the test ends.
func NewHTTPBin(t testing.TB) *HTTPBin {
	t.Helper()
	bin := &HTTPBin{}
	T(t).Setup(bin)
	return bin
}

// Name returns the component name.
func (b *HTTPBin) Name() string { return "httpbin" }

// Start starts the server.
func (b *HTTPBin) Start(_ context.Context) error {
	if b.server != nil {
		return errors.New("testutil: httpbin already started")
	}
	b.server = httptest.NewServer(b.engine())
	return nil
}

// Stop closes the server.
func (b *HTTPBin) Stop(_ context.Context) error {
	if b.server != nil {
		b.server.Close()
		b.server = nil
	}
	return nil
}

// Health reports whether the server is running.
func (b *HTTPBin) Health(_ context.Context) component.Health {
	status := component.StatusHealthy
	if b.server == nil {
		status = component.StatusUnhealthy
	}
	return component.Health{Name: b.Name(), Status: status}
}

// Reset forgets recorded requests.
func (b *HTTPBin) Reset(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
	return nil
}

// URL returns the server's base URL.
func (b *HTTPBin) URL() string {
	if b.server == nil {
		return ""
	}
	return b.server.URL
}

// Requests returns the requests received since the last Reset.
func (b *HTTPBin) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *HTTPBin) engine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.Recovery(), b.record)

	engine.Any("/anything/*path", echo)
	engine.GET("/get", echo)
	engine.POST("/post", echo)
	engine.PUT("/put", echo)
	engine.PATCH("/patch", echo)
	engine.DELETE("/delete", echo)
	engine.Any("/status/:code", status)
	engine.Any("/respond/:code", respond)
	engine.Any("/redirect-to", redirectTo)

	return engine
}

func (b *HTTPBin) record(c *gin.Context) {
	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Header:   c.Request.Header.Clone(),
	})
	b.mu.Unlock()
	c.Next()
}

func echo(c *gin.Context) {
	r := c.Request
	e := Echo{
		Method:   r.Method,
		URL:      r.URL.String(),
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Args:     map[string][]string(r.URL.Query()),
		Headers:  make(map[string]string, len(r.Header)),
		Form:     map[string]string{},
		Files:    map[string]string{},
	}
	for k := range r.Header {
		e.Headers[k] = r.Header.Get(k)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for k, v := range r.MultipartForm.Value {
			e.Form[k] = v[0]
		}
		for field, headers := range r.MultipartForm.File {
			f, err := headers[0].Open()
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			data, _ := io.ReadAll(f)
			_ = f.Close()
			e.Files[field] = string(data)
		}
	default:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e.Data = string(data)
		if len(data) > 0 {
			var v any
			if json.Unmarshal(data, &v) == nil {
				e.JSON = v
			}
		}
	}

	c.JSON(http.StatusOK, e)
}

func status(c *gin.Context) {
	code, ok := statusParam(c)
	if !ok {
		return
	}
	c.Status(code)
}

func respond(c *gin.Context) {
	code, ok := statusParam(c)
	if !ok {
		return
	}
	contentType := c.Query("content_type")
	if contentType == "" {
		// a nil entry stops net/http from sniffing a type
		c.Writer.Header()["Content-Type"] = nil
		c.Status(code)
		_, _ = c.Writer.WriteString(c.Query("body"))
		return
	}
	c.Data(code, contentType, []byte(c.Query("body")))
}

func redirectTo(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	code := http.StatusFound
	if s := c.Query("status_code"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 300 || n > 399 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid status_code"})
			return
		}
		code = n
	}
	c.Redirect(code, target)
}

func statusParam(c *gin.Context) (int, bool) {
	code, err := strconv.Atoi(strings.TrimSpace(c.Param("code")))
	if err != nil || code < 100 || code > 599 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid status code"})
		return 0, false
	}
	return code, true
}
