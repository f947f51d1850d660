package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fitchallenge/backend/pkg/xcontext"
)

// maxResponseSize bounds the body read from a third-party service.
const maxResponseSize = 4 << 20

type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	Body(body Body) Client
	GET(ctx context.Context, opts ...Opt) (*Response, error)
	POST(ctx context.Context, opts ...Opt) (*Response, error)
}

// Generator creates one Client per call, the path is a format string.
type Generator interface {
	New(path string, args ...any) Client
}

type defaultGenerator struct {
	baseURL string
}

// NewGenerator creates a Generator whose clients call baseURL, for example
// https://foo.myshopify.com. A failed call is never retried.
func NewGenerator(baseURL string) *defaultGenerator {
	return &defaultGenerator{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	return &defaultClient{
		url:     g.baseURL + fmt.Sprintf(path, args...),
		headers: make(http.Header),
	}
}

type Body interface {
	ToReader() (io.Reader, string, error)
}

// Opt changes the request right before it is sent.
type Opt interface {
	Do(*http.Request)
}

type defaultClient struct {
	url     string
	headers http.Header
	query   Parameter
	body    Body
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers.Set(name, value)
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) Body(body Body) Client {
	c.body = body
	return c
}

func (c *defaultClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.call(ctx, http.MethodGet, opts...)
}

func (c *defaultClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.call(ctx, http.MethodPost, opts...)
}

func (c *defaultClient) call(ctx context.Context, method string, opts ...Opt) (*Response, error) {
	url := c.url
	if len(c.query) > 0 {
		url += "?" + c.query.Encode()
	}

	var reader io.Reader
	var contentType string
	if c.body != nil {
		var err error
		if reader, contentType, err = c.body.ToReader(); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header = c.headers.Clone()
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for _, opt := range opts {
		opt.Do(req)
	}

	result, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, c.url, err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(io.LimitReader(result.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", c.url, err)
	}

	response := &Response{
		Code:    result.StatusCode,
		Header:  result.Header,
		RawBody: body,
		Body:    parseBody(body),
	}

	if response.Body == nil {
		// Error pages of the platforms are often html, the status code is
		// enough for the caller.
		xcontext.Logger(ctx).Debugf("Response of %s is not json (status %d)", c.url, result.StatusCode)
	}

	return response, nil
}
