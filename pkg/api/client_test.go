package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_GET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/customers/search.json", r.URL.Path)
		require.Equal(t, "email:a@b.com", r.URL.Query().Get("query"))
		require.Equal(t, "token", r.Header.Get("X-Shopify-Access-Token"))
		_, _ = w.Write([]byte(`{"customers":[{"id":1,"orders_count":2,"nested":{"x":"y"}}]}`))
	}))
	defer server.Close()

	resp, err := NewGenerator(server.URL).
		New("/customers/%s", "search.json").
		Query(Parameter{"query": "email:a@b.com"}).
		GET(context.Background(), WithHeader("X-Shopify-Access-Token", "token"))
	require.NoError(t, err)
	require.True(t, resp.IsSuccess())

	body := resp.Body.(JSON)
	customers, err := body.GetArray("customers")
	require.NoError(t, err)
	require.Len(t, customers, 1)

	first := JSON(customers[0].(map[string]any))
	count, err := first.GetInt("orders_count")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	nested, err := first.Get("nested.x")
	require.NoError(t, err)
	require.Equal(t, "y", nested)
}

func TestClient_POSTBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		require.Equal(t, `{"code":"abc"}`, string(b))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key", user)
		require.Equal(t, "secret", pass)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	resp, err := NewGenerator(server.URL).New("/token").
		Body(JSON{"code": "abc"}).
		POST(context.Background(), BasicAuth("key", "secret"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, JSON{}, resp.Body)
}

func TestClient_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	resp, err := NewGenerator(server.URL + "/").New("/x").GET(context.Background())
	require.NoError(t, err)
	require.False(t, resp.IsSuccess())
	require.Nil(t, resp.Body)
	require.Equal(t, "<html>bad gateway</html>", string(resp.RawBody))
}

func TestClient_Unreachable(t *testing.T) {
	_, err := NewGenerator("http://127.0.0.1:1").New("/x").GET(context.Background())
	require.Error(t, err)
}

func TestParameter_Encode(t *testing.T) {
	p := Parameter{"timestamp": "1700000000", "folder": "a b", "public_id": "x/y"}
	require.Equal(t, "folder=a%20b&public_id=x%2Fy&timestamp=1700000000", p.Encode())
}
