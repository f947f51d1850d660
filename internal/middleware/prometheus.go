package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/pkg/router"
	"github.com/fitchallenge/backend/pkg/xcontext"
)

// Prometheus counts every request and observes its duration, labeled by the
// response code of the envelope (0 on success).
func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		code := strconv.Itoa(responseCode(ctx))

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(req.Method, req.URL.Path, code).Inc()
		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(req.Method, req.URL.Path, code).
			Observe(time.Since(xcontext.StartTime(ctx)).Seconds())
	}
}
