package handler

import (
	"context"
	"time"

	"github.com/pkordes/eld-logbook/internal/handler/gen"
)

// healthPingTimeout bounds the database ping of a health check.
const healthPingTimeout = 2 * time.Second

// GetHealth handles GET /healthz. Without a Pinger it only reports that the
// process is up.
func (s *Server) GetHealth(ctx context.Context, _ gen.GetHealthRequestObject) (gen.GetHealthResponseObject, error) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			return gen.GetHealth503JSONResponse{Status: "unavailable"}, nil
		}
	}
	return gen.GetHealth200JSONResponse{Status: "ok"}, nil
}
