package router

import (
	"context"

	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := router.befores
	afters := router.afters
	closers := router.closers

	return func(c *gin.Context) {
		ctx := router.newContext(c)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		var err error
		if ctx, err = runMiddlewares(ctx, befores); err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}

		var req Request
		if err := bindRequest(c, method, &req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}
		ctx = xcontext.WithResponse(ctx, resp)

		if ctx, err = runMiddlewares(ctx, afters); err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}
	}
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, m := range middlewares {
		newCtx, err := m(ctx)
		if err != nil {
			return ctx, err
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, nil
}
