package router

import (
	"context"
	"net/http"
	"time"

	"github.com/fitchallenge/backend/config"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/logger"
	"github.com/fitchallenge/backend/pkg/session"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc is called before (or after) the handler. It may return a new
// context which is passed to the following middlewares and the handler. If it
// returns an error, the remaining middlewares and the handler are skipped.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc is always called at the end of the request, even if the request
// failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	cfg          config.Configs
	logger       logger.Logger
	db           *gorm.DB
	sessionStore *session.Store
	httpClient   *http.Client

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	store := session.NewCookieStore(cfg.Session.Name, &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Env != "local",
		SameSite: http.SameSiteNoneMode,
	}, []byte(cfg.Session.Secret))

	return &Router{
		engine:       engine,
		inner:        engine,
		cfg:          cfg,
		logger:       logger,
		db:           db,
		sessionStore: store,
		httpClient:   &http.Client{Timeout: cfg.ApiServer.OutboundTimeout},
		closers:      []CloserFunc{handleResponse()},
	}
}

// Branch returns a router sharing the same underlying engine, inheriting the
// current middlewares. Middlewares added to the branch don't affect the
// parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

// Group is the same as Branch but all patterns are prefixed by the path.
func (r *Router) Group(path string) *Router {
	branch := r.Branch()
	branch.inner = r.inner.Group(path)
	return branch
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	// The response writer must run last.
	r.closers = append([]CloserFunc{c}, r.closers...)
}

// Raw registers a plain http.Handler, no middleware is applied.
func (r *Router) Raw(method, pattern string, h http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(h))
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) newContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithHTTPClient(ctx, r.httpClient)
	ctx = xcontext.WithHTTPRequest(ctx, c.Request)
	ctx = xcontext.WithHTTPWriter(ctx, c.Writer)
	ctx = xcontext.WithStartTime(ctx, time.Now())
	return ctx
}

func bindRequest[Request any](c *gin.Context, method string, req *Request) error {
	switch method {
	case http.MethodGet:
		return c.ShouldBindQuery(req)
	case http.MethodPost:
		if c.Request.ContentLength == 0 {
			return nil
		}
		return c.ShouldBindJSON(req)
	}

	return errorx.New(errorx.NotImplemented, "Unsupported method %s", method)
}
