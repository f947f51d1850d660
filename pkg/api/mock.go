package api

import (
	"context"
	"fmt"
)

// MockAPIGenerator returns the same MockClient for every path, the paths are
// recorded in order.
type MockAPIGenerator struct {
	MockClient MockAPIClient

	Paths []string
}

func (m *MockAPIGenerator) New(path string, args ...any) Client {
	m.Paths = append(m.Paths, fmt.Sprintf(path, args...))
	return &m.MockClient
}

type MockAPIClient struct {
	GETFunc  func(ctx context.Context, opts ...Opt) (*Response, error)
	POSTFunc func(ctx context.Context, opts ...Opt) (*Response, error)

	LastHeaders map[string]string
	LastQuery   Parameter
	LastBody    Body
}

func (c *MockAPIClient) Header(name, value string) Client {
	if c.LastHeaders == nil {
		c.LastHeaders = map[string]string{}
	}
	c.LastHeaders[name] = value
	return c
}

func (c *MockAPIClient) Query(query Parameter) Client {
	c.LastQuery = query
	return c
}

func (c *MockAPIClient) Body(body Body) Client {
	c.LastBody = body
	return c
}

func (c *MockAPIClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	if c.GETFunc == nil {
		panic("unexpected GET")
	}
	return c.GETFunc(ctx, opts...)
}

func (c *MockAPIClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	if c.POSTFunc == nil {
		panic("unexpected POST")
	}
	return c.POSTFunc(ctx, opts...)
}
