// Package obs times outbound operations and logs the outcome.
package obs

import (
	"context"
	"log/slog"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Time starts a timer for op and returns a func that logs the elapsed time
// and, if *errp is non-nil, the error. Use it with a named error result:
//
//	defer obs.Time(ctx, logger, "mapbox.Route")(&err)
//
// A nil logger falls back to slog.Default().
func Time(ctx context.Context, logger *slog.Logger, op string) func(errp *error) {
	start := time.Now()
	if logger == nil {
		logger = slog.Default()
	}
	reqID := chimiddleware.GetReqID(ctx)

	return func(errp *error) {
		dur := time.Since(start).Milliseconds()

		if errp != nil && *errp != nil {
			logger.WarnContext(ctx, "op failed", "op", op, "duration_ms", dur, "request_id", reqID, "error", *errp)
			return
		}
		logger.DebugContext(ctx, "op", "op", op, "duration_ms", dur, "request_id", reqID)
	}
}
