package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/router"
	"github.com/fitchallenge/backend/pkg/xcontext"
)

// Logger writes one line per request. Coded errors are expected outcomes
// (validation, eligibility) and logged as warnings.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		elapsed := time.Since(xcontext.StartTime(ctx))

		err := xcontext.Error(ctx)
		switch code := responseCode(ctx); {
		case err == nil:
			xcontext.Logger(ctx).Infof("%s | %s | %v", req.Method, req.URL.Path, elapsed)
		case code > 0:
			xcontext.Logger(ctx).Warnf("%s | %s | %d | %v | %v", req.Method, req.URL.Path, code, elapsed, err)
		default:
			xcontext.Logger(ctx).Errorf("%s | %s | %v | %v", req.Method, req.URL.Path, elapsed, err)
		}
	}
}

// responseCode returns 0 for a successful request, the errorx code for a
// coded error, and -1 for anything else.
func responseCode(ctx context.Context) int {
	err := xcontext.Error(ctx)
	if err == nil {
		return 0
	}

	var errx errorx.Error
	if errors.As(err, &errx) {
		return int(errx.Code)
	}

	return -1
}
