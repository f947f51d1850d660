package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitchallenge/backend/config"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/logger"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string `json:"name" form:"name"`
}

type echoResponse struct {
	Name string `json:"name"`
	Shop string `json:"shop"`
}

func newTestRouter() *Router {
	return New(nil, config.Configs{Session: config.SessionConfigs{Secret: "secret"}}, logger.NewNopLogger())
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_GETAndPOST(t *testing.T) {
	r := newTestRouter()
	r.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithShop(ctx, "demo.myshopify.com"), nil
	})

	handler := func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		if req.Name == "" {
			return nil, errorx.NewField("name", "Name is required")
		}
		return &echoResponse{Name: req.Name, Shop: xcontext.Shop(ctx)}, nil
	}
	GET(r, "/echo", handler)
	POST(r, "/echo", handler)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo?name=foo", nil))
	resp := decode(t, rec)
	require.Equal(t, int64(0), resp.Code)
	require.Equal(t, map[string]any{"name": "foo", "shop": "demo.myshopify.com"}, resp.Data)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`)))
	resp = decode(t, rec)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
	require.Equal(t, "name", resp.Field)
}

func TestRouter_BranchMiddleware(t *testing.T) {
	r := newTestRouter()
	called := []string{}
	r.AddCloser(func(ctx context.Context) { called = append(called, "closer") })

	protected := r.Branch()
	protected.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "Need authentication")
	})

	handler := func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		called = append(called, "handler")
		return &echoResponse{}, nil
	}
	GET(protected, "/protected", handler)
	GET(r, "/public", handler)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, int64(errorx.Unauthenticated), decode(t, rec).Code)
	require.Equal(t, []string{"closer"}, called)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public", nil))
	require.Equal(t, int64(0), decode(t, rec).Code)
	require.Equal(t, []string{"closer", "handler", "closer"}, called)
}

func TestRouter_UnknownError(t *testing.T) {
	r := newTestRouter()
	POST(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, context.DeadlineExceeded
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fail", nil))
	resp := decode(t, rec)
	require.Equal(t, int64(errorx.Unknown.Code), resp.Code)
	require.Equal(t, errorx.Unknown.Message, resp.Error)
}
